package auth

import (
	"context"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

// UserRepository persists accounts.
// Declared on the consumer side per project guidelines.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Save(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VerificationCodeRepository removes pending verification records during
// registration rollback.
type VerificationCodeRepository interface {
	DeleteByEmail(ctx context.Context, email string) error
}

// RecoveryRepository looks up and updates password recovery grants.
type RecoveryRepository interface {
	FindByEmail(ctx context.Context, email string) (*verification.Recovery, error)
	Save(ctx context.Context, rec *verification.Recovery) error
}

// CodeIssuer creates and emails verification codes.
type CodeIssuer interface {
	CreateVerificationCode(ctx context.Context, email string, purpose verification.Purpose) appcore.Result[service.CodeIssuedResult]
}

// TokenIssuer mints session tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(u *user.User) (string, error)
}

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash *string, password string) bool
}

// AuthClient verifies a provider-issued token and returns the identity it
// carries.
type AuthClient interface {
	Name() string
	VerifyToken(ctx context.Context, accessToken string) (*ProviderIdentity, error)
}

// AuthClients looks up OAuth providers by name.
type AuthClients interface {
	Auth(name string) (AuthClient, bool)
}

// ProviderIdentity is the account identity asserted by an OAuth provider.
type ProviderIdentity struct {
	Email    string
	Username string
}

// Localizer resolves failure codes and messages to user-facing text.
type Localizer interface {
	TextByID(ctx context.Context, id string, params map[string]string) string
}
