package middleware

import (
	"context"
	"errors"

	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

// TokenServiceAdapter adapts the token service to the TokenValidator
// interface expected by the auth middleware.
type TokenServiceAdapter struct {
	tokens *service.TokenService
}

// NewTokenServiceAdapter creates an adapter around the token service.
func NewTokenServiceAdapter(tokens *service.TokenService) *TokenServiceAdapter {
	return &TokenServiceAdapter{tokens: tokens}
}

// ValidateToken verifies the token and maps service errors to middleware
// errors so respondAuthError can pick the right message.
func (a *TokenServiceAdapter) ValidateToken(_ context.Context, token string) (*TokenClaims, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
