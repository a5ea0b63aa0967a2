package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
)

// RegisterUseCase creates a new email+password account, issues a verification
// code and returns a session token. Partial state left behind by a failed
// step is rolled back before the failure is reported.
type RegisterUseCase struct {
	users     UserRepository
	codes     VerificationCodeRepository
	issuer    CodeIssuer
	hasher    PasswordHasher
	tokens    TokenIssuer
	localizer Localizer
	logger    *slog.Logger
}

// RegisterUseCaseConfig holds the dependencies for NewRegisterUseCase.
type RegisterUseCaseConfig struct {
	Users     UserRepository
	Codes     VerificationCodeRepository
	Issuer    CodeIssuer
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Localizer Localizer
	Logger    *slog.Logger
}

// NewRegisterUseCase creates a RegisterUseCase.
func NewRegisterUseCase(cfg RegisterUseCaseConfig) *RegisterUseCase {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &RegisterUseCase{
		users:     cfg.Users,
		codes:     cfg.Codes,
		issuer:    cfg.Issuer,
		hasher:    cfg.Hasher,
		tokens:    cfg.Tokens,
		localizer: cfg.Localizer,
		logger:    cfg.Logger,
	}
}

// Execute registers the account.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) appcore.Result[AuthPayload] {
	if err := validateRegisterCommand(cmd); err != nil {
		return appcore.ValidationFailure[AuthPayload](err)
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	_, err := uc.users.FindByEmail(ctx, email)
	if err == nil {
		return uc.failure(ctx, appcore.CodeUserAlreadyExists)
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return uc.registrationFailed(ctx, email, "lookup existing user", err)
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return uc.registrationFailed(ctx, email, "hash password", err)
	}

	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		username = email[:strings.Index(email, "@")]
	}

	usr, err := user.NewUser(email, username, hash)
	if err != nil {
		return appcore.Failure[AuthPayload](appcore.CodeInvalidInput, err.Error())
	}

	if err := uc.users.Save(ctx, usr); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return uc.failure(ctx, appcore.CodeUserAlreadyExists)
		}
		return uc.registrationFailed(ctx, email, "save user", err)
	}

	issued := uc.issuer.CreateVerificationCode(ctx, email, verification.PurposeRegister)
	if issued.IsFailure() {
		uc.rollback(ctx, usr)
		return appcore.MapFailure[struct{}, AuthPayload](
			appcore.Failure[struct{}](issued.Code(), issued.Message()),
		)
	}

	token, err := uc.tokens.Generate(usr)
	if err != nil {
		uc.rollback(ctx, usr)
		return uc.registrationFailed(ctx, email, "issue token", err)
	}

	return appcore.Success(AuthPayload{
		Token:   token,
		Message: issued.Value().Message,
		User:    NewUserView(usr),
	})
}

// rollback removes the account and any verification record left behind after
// a later registration step failed. Rollback errors are logged, not returned;
// the original failure is what the caller needs to see.
func (uc *RegisterUseCase) rollback(ctx context.Context, usr *user.User) {
	if err := uc.users.Delete(ctx, usr.ID()); err != nil {
		uc.logger.ErrorContext(ctx, "registration rollback: delete user failed",
			slog.String("email", usr.Email()),
			slog.String("error", err.Error()),
		)
	}
	if err := uc.codes.DeleteByEmail(ctx, usr.Email()); err != nil && !errors.Is(err, errs.ErrNotFound) {
		uc.logger.ErrorContext(ctx, "registration rollback: delete verification code failed",
			slog.String("email", usr.Email()),
			slog.String("error", err.Error()),
		)
	}
}

func (uc *RegisterUseCase) failure(ctx context.Context, code string) appcore.Result[AuthPayload] {
	return appcore.Failure[AuthPayload](code, uc.localizer.TextByID(ctx, code, nil))
}

func (uc *RegisterUseCase) registrationFailed(ctx context.Context, email, operation string, err error) appcore.Result[AuthPayload] {
	uc.logger.ErrorContext(ctx, "registration failed",
		slog.String("operation", operation),
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	code := appcore.CodeRegistrationFailed
	return appcore.Failure[AuthPayload](code, uc.localizer.TextByID(ctx, code, nil))
}

func validateRegisterCommand(cmd RegisterCommand) error {
	if err := appcore.ValidateEmail("email", cmd.Email); err != nil {
		return err
	}
	if err := appcore.ValidatePassword("password", cmd.Password); err != nil {
		return err
	}
	if cmd.Username != "" {
		if err := appcore.ValidateMaxLength("username", cmd.Username, appcore.MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}
