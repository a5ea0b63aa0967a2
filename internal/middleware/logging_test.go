package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/middleware"
)

func TestLogging_GeneratesRequestID(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	mw := middleware.Logging(middleware.LoggingConfig{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/decks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Act
	err := mw(okHandler)(c)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.NotEmpty(t, middleware.GetRequestID(c))
	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "path=/api/v1/decks")
}

func TestLogging_PropagatesIncomingRequestID(t *testing.T) {
	// Arrange
	mw := middleware.Logging(middleware.LoggingConfig{
		Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/decks", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Act
	err := mw(okHandler)(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "req-123", middleware.GetRequestID(c))
}

func TestLogging_SkipsConfiguredPaths(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	mw := middleware.Logging(middleware.LoggingConfig{
		Logger:    slog.New(slog.NewTextHandler(&buf, nil)),
		SkipPaths: []string{"/health"},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Act
	err := mw(okHandler)(c)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestLogging_ErrorsLogAtWarnOrAbove(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	mw := middleware.Logging(middleware.LoggingConfig{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/decks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	}

	// Act
	err := mw(handler)(c)

	// Assert
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=404")
}
