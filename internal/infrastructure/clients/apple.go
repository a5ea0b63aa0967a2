package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/whiteakyloff/metis-back-v2/internal/application/auth"
)

const (
	appleJWKSURL = "https://appleid.apple.com/auth/keys"
	appleIssuer  = "https://appleid.apple.com"
)

// AppleClient verifies Apple ID tokens offline against Apple's JWKS.
type AppleClient struct {
	jwks     keyfunc.Keyfunc
	clientID string
	leeway   time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
}

// AppleClientConfig contains configuration for AppleClient.
type AppleClientConfig struct {
	// ClientID is the expected audience of the ID token, the app's
	// Apple services identifier.
	ClientID string

	// JWKSURL overrides the Apple JWKS endpoint in tests.
	JWKSURL string

	Leeway          time.Duration
	RefreshInterval time.Duration
	Logger          *slog.Logger
}

// NewAppleClient creates an Apple ID token verifier with JWKS caching.
func NewAppleClient(cfg AppleClientConfig) (*AppleClient, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("apple client id is required")
	}
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = appleJWKSURL
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
			logger.Error("failed to refresh apple jwks", slog.Any("error", refreshErr))
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

	return &AppleClient{
		jwks:     jwks,
		clientID: cfg.ClientID,
		leeway:   cfg.Leeway,
		logger:   logger,
		cancel:   cancel,
	}, nil
}

// Name identifies the provider in the client registry.
func (c *AppleClient) Name() string { return "apple" }

// VerifyToken validates an ID token and extracts the asserted identity.
// Apple ID tokens carry no name claim, so the email local part stands in
// as the username.
func (c *AppleClient) VerifyToken(_ context.Context, accessToken string) (*auth.ProviderIdentity, error) {
	if accessToken == "" {
		return nil, ErrInvalidIDToken
	}

	token, err := jwt.Parse(accessToken, c.jwks.Keyfunc,
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(appleIssuer),
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
	username, _, _ := strings.Cut(email, "@")

	return &auth.ProviderIdentity{
		Email:    email,
		Username: username,
	}, nil
}

// Close stops background JWKS refresh.
func (c *AppleClient) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}
