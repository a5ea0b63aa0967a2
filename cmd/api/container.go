// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	authapp "github.com/whiteakyloff/metis-back-v2/internal/application/auth"
	cardapp "github.com/whiteakyloff/metis-back-v2/internal/application/card"
	deckapp "github.com/whiteakyloff/metis-back-v2/internal/application/deck"
	"github.com/whiteakyloff/metis-back-v2/internal/config"
	httphandler "github.com/whiteakyloff/metis-back-v2/internal/handler/http"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/clients"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/localization"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/metrics"
	mongodbinfra "github.com/whiteakyloff/metis-back-v2/internal/infrastructure/mongodb"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/repository/mongodb"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

// Container initialization timeouts.
const (
	containerInitTimeout   = 30 * time.Second
	redisPingTimeout       = 5 * time.Second
	mongoDisconnectTimeout = 10 * time.Second
)

// Container holds all application dependencies and manages their lifecycle.
type Container struct {
	// Configuration
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	MongoDB     *mongo.Client
	MongoDBName string
	Redis       *redis.Client
	Metrics     *metrics.HTTPMetrics

	// Repositories
	UserRepo     *mongodb.MongoUserRepository
	CodeRepo     *mongodb.MongoVerificationCodeRepository
	RecoveryRepo *mongodb.MongoRecoveryRepository
	DeckRepo     *mongodb.MongoDeckRepository
	CardRepo     *mongodb.MongoCardRepository

	// Services
	Hasher              *service.Hasher
	TokenService        *service.TokenService
	MailService         *service.MailService
	LocalizationService *service.LocalizationService
	TranslationService  *service.TranslationService
	VerificationService *service.VerificationService

	// External clients
	Clients      *clients.Registry
	GoogleClient *clients.GoogleClient
	AppleClient  *clients.AppleClient

	// Auth use cases
	RegisterUC        *authapp.RegisterUseCase
	LoginUC           *authapp.LoginUseCase
	ThirdPartyLoginUC *authapp.ThirdPartyLoginUseCase
	RecoverPasswordUC *authapp.RecoverPasswordUseCase

	// Deck use cases
	CreateDeckUC      *deckapp.CreateUseCase
	GetDeckUC         *deckapp.GetUseCase
	UpdateDeckUC      *deckapp.UpdateUseCase
	DeleteDeckUC      *deckapp.DeleteUseCase
	ToggleFavouriteUC *deckapp.ToggleFavouriteUseCase
	ListUserDecksUC   *deckapp.ListUserDecksUseCase
	ListPublicDecksUC *deckapp.ListPublicDecksUseCase
	SearchDecksUC     *deckapp.SearchUseCase

	// Card use cases
	CreateCardUC    *cardapp.CreateUseCase
	GetCardUC       *cardapp.GetUseCase
	UpdateCardUC    *cardapp.UpdateUseCase
	DeleteCardUC    *cardapp.DeleteUseCase
	ListDeckCardsUC *cardapp.ListUseCase
	SearchCardsUC   *cardapp.SearchUseCase

	// HTTP handlers
	AuthHandler    *httphandler.AuthHandler
	DeckHandler    *httphandler.DeckHandler
	CardHandler    *httphandler.CardHandler
	UtilityHandler *httphandler.UtilityHandler
}

// ContainerOption customizes container construction.
type ContainerOption func(*Container)

// WithLogger sets the container logger.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// NewContainer builds the full dependency graph from configuration.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.setupInfrastructure(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.setupRepositories()
	c.setupServices()

	if err := c.setupClients(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.setupUseCases()
	c.setupHTTPHandlers()

	return c, nil
}

// setupInfrastructure connects MongoDB and Redis and ensures indexes.
func (c *Container) setupInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), containerInitTimeout)
	defer cancel()

	client, err := mongodbinfra.Connect(ctx, c.Config.MongoDB.URI)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	c.MongoDB = client
	c.MongoDBName = c.Config.MongoDB.Database

	if indexErr := mongodbinfra.EnsureIndexes(ctx, c.database()); indexErr != nil {
		return fmt.Errorf("failed to ensure indexes: %w", indexErr)
	}

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
		PoolSize: c.Config.Redis.PoolSize,
	})

	pingCtx, pingCancel := context.WithTimeout(ctx, redisPingTimeout)
	defer pingCancel()
	if pingErr := c.Redis.Ping(pingCtx).Err(); pingErr != nil {
		return fmt.Errorf("failed to ping redis: %w", pingErr)
	}

	c.Metrics = metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	c.Logger.Info("infrastructure ready",
		slog.String("mongodb", c.Config.MongoDB.Database),
		slog.String("redis", c.Config.Redis.Addr),
	)
	return nil
}

func (c *Container) database() *mongo.Database {
	return c.MongoDB.Database(c.MongoDBName)
}

// setupRepositories wires the MongoDB repositories.
func (c *Container) setupRepositories() {
	db := c.database()

	c.UserRepo = mongodb.NewMongoUserRepository(
		db.Collection(mongodbinfra.CollectionUsers),
		mongodb.WithUserRepoLogger(c.Logger),
	)
	c.CodeRepo = mongodb.NewMongoVerificationCodeRepository(
		db.Collection(mongodbinfra.CollectionVerificationCodes),
		mongodb.WithVerificationCodeRepoLogger(c.Logger),
	)
	c.RecoveryRepo = mongodb.NewMongoRecoveryRepository(
		db.Collection(mongodbinfra.CollectionRecoveries),
		mongodb.WithRecoveryRepoLogger(c.Logger),
	)
	c.DeckRepo = mongodb.NewMongoDeckRepository(
		db.Collection(mongodbinfra.CollectionDecks),
		mongodb.WithDeckRepoLogger(c.Logger),
	)
	c.CardRepo = mongodb.NewMongoCardRepository(
		db.Collection(mongodbinfra.CollectionCards),
		mongodb.WithCardRepoLogger(c.Logger),
	)
}

// setupServices wires the domain services.
func (c *Container) setupServices() {
	c.Hasher = service.NewHasher(0)
	c.TokenService = service.NewTokenService(c.Config.Auth.JWTSecret, c.Config.Auth.AccessTokenTTL)

	c.MailService = service.NewMailService(service.MailServiceConfig{
		Host:     c.Config.Email.Host,
		Port:     c.Config.Email.Port,
		Username: c.Config.Email.Username,
		Password: c.Config.Email.Password,
		From:     c.Config.Email.From,
		Logger:   c.Logger,
	})

	c.LocalizationService = service.NewLocalizationService(
		localization.NewGitHubSource(localization.GitHubSourceConfig{
			URL:   c.Config.Localization.SourceURL,
			Token: c.Config.Localization.Token,
		}),
		localization.NewRedisCache(localization.RedisCacheConfig{
			Client: c.Redis,
			TTL:    c.Config.Localization.CacheTTL,
		}),
		c.Logger,
	)

	c.VerificationService = service.NewVerificationService(service.VerificationServiceConfig{
		Users:      c.UserRepo,
		Codes:      c.CodeRepo,
		Recoveries: c.RecoveryRepo,
		Mailer:     c.MailService,
		Localizer:  c.LocalizationService,
		Logger:     c.Logger,
	})
}

// setupClients wires the external provider registry. Providers without
// credentials are left unregistered so lookups fail with a clear code.
func (c *Container) setupClients() error {
	c.Clients = clients.NewRegistry()

	if c.Config.Google.ClientID != "" {
		google, err := clients.NewGoogleClient(clients.GoogleClientConfig{
			ClientID:        c.Config.Google.ClientID,
			JWKSURL:         c.Config.Google.JWKSURL,
			Leeway:          c.Config.Google.Leeway,
			RefreshInterval: c.Config.Google.RefreshInterval,
			Logger:          c.Logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create google client: %w", err)
		}
		c.GoogleClient = google
		c.Clients.RegisterAuth(google)
	} else {
		c.Logger.Warn("google client id not configured, google sign-in disabled")
	}

	if c.Config.Apple.ClientID != "" {
		apple, err := clients.NewAppleClient(clients.AppleClientConfig{
			ClientID:        c.Config.Apple.ClientID,
			JWKSURL:         c.Config.Apple.JWKSURL,
			Leeway:          c.Config.Apple.Leeway,
			RefreshInterval: c.Config.Apple.RefreshInterval,
			Logger:          c.Logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create apple client: %w", err)
		}
		c.AppleClient = apple
		c.Clients.RegisterAuth(apple)
	} else {
		c.Logger.Warn("apple client id not configured, apple sign-in disabled")
	}

	if c.Config.Claude.APIKey != "" {
		c.Clients.RegisterTranslation(clients.NewClaudeClient(clients.ClaudeClientConfig{
			APIKey:  c.Config.Claude.APIKey,
			BaseURL: c.Config.Claude.BaseURL,
			Model:   c.Config.Claude.Model,
		}))
	}
	if c.Config.Qwen.APIKey != "" {
		c.Clients.RegisterTranslation(clients.NewQwenClient(clients.QwenClientConfig{
			APIKey:  c.Config.Qwen.APIKey,
			BaseURL: c.Config.Qwen.BaseURL,
			Model:   c.Config.Qwen.Model,
		}))
	}

	c.TranslationService = service.NewTranslationService(c.Clients, c.LocalizationService, c.Logger)

	return nil
}

// setupUseCases wires the application layer.
func (c *Container) setupUseCases() {
	c.RegisterUC = authapp.NewRegisterUseCase(authapp.RegisterUseCaseConfig{
		Users:     c.UserRepo,
		Codes:     c.CodeRepo,
		Issuer:    c.VerificationService,
		Hasher:    c.Hasher,
		Tokens:    c.TokenService,
		Localizer: c.LocalizationService,
		Logger:    c.Logger,
	})
	c.LoginUC = authapp.NewLoginUseCase(authapp.LoginUseCaseConfig{
		Users:     c.UserRepo,
		Hasher:    c.Hasher,
		Tokens:    c.TokenService,
		Localizer: c.LocalizationService,
		Logger:    c.Logger,
	})
	c.ThirdPartyLoginUC = authapp.NewThirdPartyLoginUseCase(authapp.ThirdPartyLoginUseCaseConfig{
		Users:     c.UserRepo,
		Clients:   c.Clients,
		Tokens:    c.TokenService,
		Localizer: c.LocalizationService,
		Logger:    c.Logger,
	})
	c.RecoverPasswordUC = authapp.NewRecoverPasswordUseCase(authapp.RecoverPasswordUseCaseConfig{
		Users:      c.UserRepo,
		Recoveries: c.RecoveryRepo,
		Hasher:     c.Hasher,
		Localizer:  c.LocalizationService,
		Logger:     c.Logger,
	})

	c.CreateDeckUC = deckapp.NewCreateUseCase(c.DeckRepo, c.LocalizationService, c.Logger)
	c.GetDeckUC = deckapp.NewGetUseCase(c.DeckRepo, c.LocalizationService, c.Logger)
	c.UpdateDeckUC = deckapp.NewUpdateUseCase(c.DeckRepo, c.LocalizationService, c.Logger)
	c.DeleteDeckUC = deckapp.NewDeleteUseCase(c.DeckRepo, c.CardRepo, c.LocalizationService, c.Logger)
	c.ToggleFavouriteUC = deckapp.NewToggleFavouriteUseCase(c.DeckRepo, c.LocalizationService, c.Logger)
	c.ListUserDecksUC = deckapp.NewListUserDecksUseCase(c.DeckRepo, c.LocalizationService, c.Logger)
	c.ListPublicDecksUC = deckapp.NewListPublicDecksUseCase(c.DeckRepo, c.LocalizationService, c.Logger)
	c.SearchDecksUC = deckapp.NewSearchUseCase(c.DeckRepo, c.LocalizationService, c.Logger)

	c.CreateCardUC = cardapp.NewCreateUseCase(c.CardRepo, c.DeckRepo, c.LocalizationService, c.Logger)
	c.GetCardUC = cardapp.NewGetUseCase(c.CardRepo, c.DeckRepo, c.LocalizationService, c.Logger)
	c.UpdateCardUC = cardapp.NewUpdateUseCase(c.CardRepo, c.DeckRepo, c.LocalizationService, c.Logger)
	c.DeleteCardUC = cardapp.NewDeleteUseCase(c.CardRepo, c.DeckRepo, c.LocalizationService, c.Logger)
	c.ListDeckCardsUC = cardapp.NewListUseCase(c.CardRepo, c.DeckRepo, c.LocalizationService, c.Logger)
	c.SearchCardsUC = cardapp.NewSearchUseCase(c.CardRepo, c.DeckRepo, c.LocalizationService, c.Logger)
}

// setupHTTPHandlers wires the handler layer.
func (c *Container) setupHTTPHandlers() {
	c.AuthHandler = httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{
		Register:        c.RegisterUC,
		Login:           c.LoginUC,
		ThirdPartyLogin: c.ThirdPartyLoginUC,
		Recover:         c.RecoverPasswordUC,
		Verification:    c.VerificationService,
	})
	c.DeckHandler = httphandler.NewDeckHandler(httphandler.DeckHandlerConfig{
		Create:    c.CreateDeckUC,
		Get:       c.GetDeckUC,
		Update:    c.UpdateDeckUC,
		Delete:    c.DeleteDeckUC,
		Favourite: c.ToggleFavouriteUC,
		ListOwn:   c.ListUserDecksUC,
		ListPub:   c.ListPublicDecksUC,
		Search:    c.SearchDecksUC,
	})
	c.CardHandler = httphandler.NewCardHandler(httphandler.CardHandlerConfig{
		Create: c.CreateCardUC,
		Get:    c.GetCardUC,
		Update: c.UpdateCardUC,
		Delete: c.DeleteCardUC,
		List:   c.ListDeckCardsUC,
		Search: c.SearchCardsUC,
	})
	c.UtilityHandler = httphandler.NewUtilityHandler(c.LocalizationService, c.TranslationService)
}

// Ready reports whether the backing stores answer.
func (c *Container) Ready() bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if c.MongoDB == nil || c.Redis == nil {
		return false
	}
	if err := c.MongoDB.Ping(ctx, nil); err != nil {
		return false
	}
	return c.Redis.Ping(ctx).Err() == nil
}

// Close releases container resources in reverse dependency order.
func (c *Container) Close() error {
	c.Logger.Info("closing container resources...")

	var errs []error

	// Stops the JWKS refresh goroutines.
	if c.GoogleClient != nil {
		if err := c.GoogleClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("google client close: %w", err))
		} else {
			c.Logger.Debug("google client closed")
		}
	}
	if c.AppleClient != nil {
		if err := c.AppleClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("apple client close: %w", err))
		} else {
			c.Logger.Debug("apple client closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		} else {
			c.Logger.Debug("redis connection closed")
		}
	}

	if c.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
		defer cancel()

		if err := c.MongoDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb disconnect: %w", err))
		} else {
			c.Logger.Debug("mongodb connection closed")
		}
	}

	return errors.Join(errs...)
}
