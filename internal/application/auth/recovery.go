package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// RecoverPasswordUseCase replaces an account password. The caller proves
// ownership with a recovery key issued by a RECOVERY email verification; a
// key grants exactly one password change.
type RecoverPasswordUseCase struct {
	users      UserRepository
	recoveries RecoveryRepository
	hasher     PasswordHasher
	localizer  Localizer
	logger     *slog.Logger
	now        func() time.Time
}

// RecoverPasswordUseCaseConfig holds the dependencies for
// NewRecoverPasswordUseCase.
type RecoverPasswordUseCaseConfig struct {
	Users      UserRepository
	Recoveries RecoveryRepository
	Hasher     PasswordHasher
	Localizer  Localizer
	Logger     *slog.Logger

	// Now overrides the clock in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewRecoverPasswordUseCase creates a RecoverPasswordUseCase.
func NewRecoverPasswordUseCase(cfg RecoverPasswordUseCaseConfig) *RecoverPasswordUseCase {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &RecoverPasswordUseCase{
		users:      cfg.Users,
		recoveries: cfg.Recoveries,
		hasher:     cfg.Hasher,
		localizer:  cfg.Localizer,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
}

// Execute changes the account password.
func (uc *RecoverPasswordUseCase) Execute(ctx context.Context, cmd RecoverPasswordCommand) appcore.Result[RecoveryPayload] {
	if err := appcore.ValidateEmail("email", cmd.Email); err != nil {
		return appcore.ValidationFailure[RecoveryPayload](err)
	}
	if err := appcore.ValidatePassword("password", cmd.Password); err != nil {
		return appcore.ValidationFailure[RecoveryPayload](err)
	}
	if err := appcore.ValidateRequired("recoveryKey", cmd.RecoveryKey); err != nil {
		return appcore.ValidationFailure[RecoveryPayload](err)
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	now := uc.now()

	usr, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return uc.failure(ctx, appcore.CodeUserNotFound)
		}
		return uc.recoveryFailed(ctx, email, "lookup user", err)
	}

	grant, err := uc.recoveries.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return uc.failure(ctx, appcore.CodeRecoveryKeyNotMatch)
		}
		return uc.recoveryFailed(ctx, email, "lookup recovery grant", err)
	}

	// A mismatched, expired or already used key all report the same code so
	// the response does not reveal which grants exist.
	if !grant.Matches(cmd.RecoveryKey, now) {
		return uc.failure(ctx, appcore.CodeRecoveryKeyNotMatch)
	}

	if !usr.HasPassword() {
		return uc.failure(ctx, appcore.CodeThirdPartyAccountCannotRecover)
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return uc.recoveryFailed(ctx, email, "hash password", err)
	}

	updated, err := usr.WithPasswordHash(hash)
	if err != nil {
		return appcore.Failure[RecoveryPayload](appcore.CodeInvalidInput, err.Error())
	}
	if err := uc.users.Save(ctx, updated); err != nil {
		return uc.recoveryFailed(ctx, email, "save user", err)
	}

	if err := uc.recoveries.Save(ctx, grant.Consumed(now)); err != nil {
		return uc.recoveryFailed(ctx, email, "consume recovery grant", err)
	}

	code := appcore.CodePasswordRecoverySuccessful
	return appcore.Success(RecoveryPayload{
		Message: uc.localizer.TextByID(ctx, code, nil),
	})
}

func (uc *RecoverPasswordUseCase) failure(ctx context.Context, code string) appcore.Result[RecoveryPayload] {
	return appcore.Failure[RecoveryPayload](code, uc.localizer.TextByID(ctx, code, nil))
}

func (uc *RecoverPasswordUseCase) recoveryFailed(ctx context.Context, email, operation string, err error) appcore.Result[RecoveryPayload] {
	uc.logger.ErrorContext(ctx, "password recovery failed",
		slog.String("operation", operation),
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	code := appcore.CodeRecoveryFailed
	return appcore.Failure[RecoveryPayload](code, uc.localizer.TextByID(ctx, code, nil))
}
