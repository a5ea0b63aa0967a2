package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// LoginUseCase authenticates an email+password account and issues a session
// token.
type LoginUseCase struct {
	users     UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	localizer Localizer
	logger    *slog.Logger
}

// LoginUseCaseConfig holds the dependencies for NewLoginUseCase.
type LoginUseCaseConfig struct {
	Users     UserRepository
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Localizer Localizer
	Logger    *slog.Logger
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(cfg LoginUseCaseConfig) *LoginUseCase {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &LoginUseCase{
		users:     cfg.Users,
		hasher:    cfg.Hasher,
		tokens:    cfg.Tokens,
		localizer: cfg.Localizer,
		logger:    cfg.Logger,
	}
}

// Execute authenticates the account.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) appcore.Result[AuthPayload] {
	if err := appcore.ValidateEmail("email", cmd.Email); err != nil {
		return appcore.ValidationFailure[AuthPayload](err)
	}
	if err := appcore.ValidateRequired("password", cmd.Password); err != nil {
		return appcore.ValidationFailure[AuthPayload](err)
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	usr, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return uc.failure(ctx, appcore.CodeUserNotFound)
		}
		return uc.loginFailed(ctx, email, "lookup user", err)
	}

	if !uc.hasher.Compare(usr.PasswordHash(), cmd.Password) {
		return uc.failure(ctx, appcore.CodeWrongPassword)
	}

	token, err := uc.tokens.Generate(usr)
	if err != nil {
		return uc.loginFailed(ctx, email, "issue token", err)
	}

	return appcore.Success(AuthPayload{
		Token: token,
		User:  NewUserView(usr),
	})
}

func (uc *LoginUseCase) failure(ctx context.Context, code string) appcore.Result[AuthPayload] {
	return appcore.Failure[AuthPayload](code, uc.localizer.TextByID(ctx, code, nil))
}

func (uc *LoginUseCase) loginFailed(ctx context.Context, email, operation string, err error) appcore.Result[AuthPayload] {
	uc.logger.ErrorContext(ctx, "login failed",
		slog.String("operation", operation),
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	code := appcore.CodeLoginFailed
	return appcore.Failure[AuthPayload](code, uc.localizer.TextByID(ctx, code, nil))
}
