package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	"github.com/whiteakyloff/metis-back-v2/internal/middleware"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

type validatorStub struct {
	claims *middleware.TokenClaims
	err    error
}

func (s *validatorStub) ValidateToken(_ context.Context, _ string) (*middleware.TokenClaims, error) {
	return s.claims, s.err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, path, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	require.NoError(t, err)
	return rec, c
}

func TestAuth_ValidToken(t *testing.T) {
	// Arrange
	userID := uuid.NewUUID()
	mw := middleware.Auth(middleware.AuthConfig{
		TokenValidator: &validatorStub{claims: &middleware.TokenClaims{
			UserID: userID,
			Email:  "grace@example.com",
		}},
	})

	// Act
	rec, c := doRequest(t, mw, "/api/v1/decks", "Bearer some-token")

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := middleware.GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	gotEmail, ok := middleware.GetEmail(c)
	require.True(t, ok)
	assert.Equal(t, "grace@example.com", gotEmail)
}

func TestAuth_MissingHeader(t *testing.T) {
	mw := middleware.Auth(middleware.AuthConfig{
		TokenValidator: &validatorStub{claims: &middleware.TokenClaims{}},
	})

	rec, _ := doRequest(t, mw, "/api/v1/decks", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuth_MalformedHeader(t *testing.T) {
	mw := middleware.Auth(middleware.AuthConfig{
		TokenValidator: &validatorStub{claims: &middleware.TokenClaims{}},
	})

	rec, _ := doRequest(t, mw, "/api/v1/decks", "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	mw := middleware.Auth(middleware.AuthConfig{
		TokenValidator: &validatorStub{err: middleware.ErrTokenExpired},
	})

	rec, _ := doRequest(t, mw, "/api/v1/decks", "Bearer expired-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuth_SkipPaths(t *testing.T) {
	mw := middleware.Auth(middleware.AuthConfig{
		TokenValidator: &validatorStub{err: middleware.ErrInvalidToken},
		SkipPaths:      []string{"/health"},
		SkipPrefixes:   []string{"/api/v1/auth"},
	})

	tests := []struct {
		name string
		path string
	}{
		{name: "exact skip path", path: "/health"},
		{name: "skip prefix", path: "/api/v1/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doRequest(t, mw, tt.path, "")
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestTokenServiceAdapter(t *testing.T) {
	// Arrange
	tokens := service.NewTokenService("test-secret", time.Hour)
	usr := newVerifiedUser(t, "grace@example.com")

	token, err := tokens.Generate(usr)
	require.NoError(t, err)

	adapter := middleware.NewTokenServiceAdapter(tokens)

	// Act
	claims, err := adapter.ValidateToken(context.Background(), token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, usr.ID(), claims.UserID)
	assert.Equal(t, "grace@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenServiceAdapter_InvalidToken(t *testing.T) {
	adapter := middleware.NewTokenServiceAdapter(service.NewTokenService("test-secret", time.Hour))

	_, err := adapter.ValidateToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, middleware.ErrInvalidToken)
}
