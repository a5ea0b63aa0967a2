// Package main provides the API server entry point.
package main

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/httpserver"
	"github.com/whiteakyloff/metis-back-v2/internal/middleware"
)

// SetupServer builds the HTTP server with middleware and all API routes.
func SetupServer(c *Container) *httpserver.Server {
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:            c.Config.Server.Host,
		Port:            c.Config.Server.Port,
		ReadTimeout:     c.Config.Server.ReadTimeout,
		WriteTimeout:    c.Config.Server.WriteTimeout,
		ShutdownTimeout: c.Config.Server.ShutdownTimeout,
	}, c.Logger)

	server.Use(
		middleware.RecoveryWithConfig(middleware.RecoveryConfig{Logger: c.Logger}),
		middleware.Logging(middleware.LoggingConfig{
			Logger:    c.Logger,
			SkipPaths: []string{"/health", "/ready", "/metrics"},
		}),
		middleware.CORS(middleware.DefaultCORSConfig()),
		c.Metrics.Middleware(),
		middleware.Auth(middleware.AuthConfig{
			Logger:         c.Logger,
			TokenValidator: middleware.NewTokenServiceAdapter(c.TokenService),
			SkipPaths: []string{
				"/health",
				"/ready",
				"/metrics",
				"/api/v1/localization",
				"/api/v1/decks/public",
			},
			SkipPrefixes: []string{
				"/api/v1/auth",
			},
		}),
	)

	server.HealthCheck("/health")
	server.Ready("/ready", c.Ready)

	server.RegisterRoutes(func(e *echo.Echo) {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

		api := e.Group("/api/v1")
		c.AuthHandler.RegisterRoutes(api)
		c.DeckHandler.RegisterRoutes(api)
		c.CardHandler.RegisterRoutes(api)
		c.UtilityHandler.RegisterRoutes(api)
	})

	return server
}
