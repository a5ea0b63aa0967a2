// Package clients holds the external provider clients: OAuth identity
// verification and AI translation backends.
package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/whiteakyloff/metis-back-v2/internal/application/auth"
)

// ID token validation errors shared by the identity provider clients.
var (
	ErrInvalidIDToken  = errors.New("invalid id token")
	ErrMissingEmail    = errors.New("id token has no email claim")
	ErrJWKSFetchFailed = errors.New("failed to fetch provider jwks")
)

const (
	googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
	googleIssuer  = "https://accounts.google.com"

	defaultLeeway          = 30 * time.Second
	defaultRefreshInterval = time.Hour
)

// GoogleClient verifies Google ID tokens offline against Google's JWKS.
type GoogleClient struct {
	jwks     keyfunc.Keyfunc
	clientID string
	leeway   time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
}

// GoogleClientConfig contains configuration for GoogleClient.
type GoogleClientConfig struct {
	// ClientID is the expected audience of the ID token.
	ClientID string

	// JWKSURL overrides the Google JWKS endpoint in tests.
	JWKSURL string

	Leeway          time.Duration
	RefreshInterval time.Duration
	Logger          *slog.Logger
}

// NewGoogleClient creates a Google ID token verifier with JWKS caching.
func NewGoogleClient(cfg GoogleClientConfig) (*GoogleClient, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("google client id is required")
	}
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = googleJWKSURL
	}
	if cfg.Leeway == 0 {
		cfg.Leeway = defaultLeeway
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	storage, err := jwkset.NewStorageFromHTTP(cfg.JWKSURL, jwkset.HTTPClientStorageOptions{
		Ctx:             ctx,
		RefreshInterval: cfg.RefreshInterval,
		RefreshErrorHandler: func(_ context.Context, refreshErr error) {
			logger.Error("failed to refresh google jwks", slog.Any("error", refreshErr))
		},
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrJWKSFetchFailed, err)
	}

	jwks, err := keyfunc.New(keyfunc.Options{
		Ctx:     ctx,
		Storage: storage,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrJWKSFetchFailed, err)
	}

	return &GoogleClient{
		jwks:     jwks,
		clientID: cfg.ClientID,
		leeway:   cfg.Leeway,
		logger:   logger,
		cancel:   cancel,
	}, nil
}

// Name identifies the provider in the client registry.
func (c *GoogleClient) Name() string { return "google" }

// VerifyToken validates an ID token and extracts the asserted identity.
func (c *GoogleClient) VerifyToken(_ context.Context, accessToken string) (*auth.ProviderIdentity, error) {
	if accessToken == "" {
		return nil, ErrInvalidIDToken
	}

	token, err := jwt.Parse(accessToken, c.jwks.Keyfunc,
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(googleIssuer),
		jwt.WithAudience(c.clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidIDToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidIDToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}
	username, _ := claims["name"].(string)
	if username == "" {
		username, _ = claims["given_name"].(string)
	}

	return &auth.ProviderIdentity{
		Email:    email,
		Username: username,
	}, nil
}

// Close stops background JWKS refresh.
func (c *GoogleClient) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}
