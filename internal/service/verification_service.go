package service

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
)

// UserStore is the account access the verification service needs.
// Declared on the consumer side per project guidelines.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Save(ctx context.Context, u *user.User) error
}

// CodeStore persists verification code records.
type CodeStore interface {
	FindByEmail(ctx context.Context, email string) (*verification.Code, error)
	Save(ctx context.Context, code *verification.Code) error
	DeleteByEmail(ctx context.Context, email string) error
}

// RecoveryStore persists password recovery grants.
type RecoveryStore interface {
	Save(ctx context.Context, rec *verification.Recovery) error
}

// Mailer delivers verification codes to users.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// Localizer resolves a text ID to a user-facing message, substituting
// {param} placeholders from params.
type Localizer interface {
	TextByID(ctx context.Context, id string, params map[string]string) string
}

// VerifyEmailCommand carries the input of a verification check.
type VerifyEmailCommand struct {
	Email   string
	Code    string
	Purpose verification.Purpose
}

// VerifyEmailResult is the outcome of a successful verification.
// RecoveryKey is set only for RECOVERY verifications.
type VerifyEmailResult struct {
	Message     string `json:"message"`
	RecoveryKey string `json:"recoveryKey,omitempty"`
}

// CodeIssuedResult is the outcome of issuing or renewing a code.
type CodeIssuedResult struct {
	Message string `json:"message"`
}

// VerificationServiceConfig holds the dependencies of VerificationService.
type VerificationServiceConfig struct {
	Users      UserStore
	Codes      CodeStore
	Recoveries RecoveryStore
	Mailer     Mailer
	Localizer  Localizer
	Logger     *slog.Logger

	// Now and GenerateCode are injectable for tests. Defaults are
	// time.Now and a crypto/rand 6-digit generator.
	Now          func() time.Time
	GenerateCode func() string
}

// VerificationService drives the email verification code lifecycle: issuing
// codes, renewing them within the attempt budget, locking exhausted cycles
// until expiry, and consuming codes on a successful check.
type VerificationService struct {
	users      UserStore
	codes      CodeStore
	recoveries RecoveryStore
	mailer     Mailer
	localizer  Localizer
	logger     *slog.Logger

	now          func() time.Time
	generateCode func() string
}

// NewVerificationService creates a VerificationService.
func NewVerificationService(cfg VerificationServiceConfig) *VerificationService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GenerateCode == nil {
		cfg.GenerateCode = GenerateNumericCode
	}

	return &VerificationService{
		users:        cfg.Users,
		codes:        cfg.Codes,
		recoveries:   cfg.Recoveries,
		mailer:       cfg.Mailer,
		localizer:    cfg.Localizer,
		logger:       cfg.Logger,
		now:          cfg.Now,
		generateCode: cfg.GenerateCode,
	}
}

// GenerateNumericCode returns a random 6-digit verification code.
func GenerateNumericCode() string {
	// 100000..999999 so the code never starts with a zero.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}

// CreateVerificationCode issues a verification code for the email, renewing
// the active one when a cycle is already running. A cycle that used up all
// attempts rejects further codes until the active code expires; expiry
// restarts the cycle from attempt one.
func (s *VerificationService) CreateVerificationCode(
	ctx context.Context,
	email string,
	purpose verification.Purpose,
) appcore.Result[CodeIssuedResult] {
	usr, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[CodeIssuedResult](ctx, s, appcore.CodeUserNotFound, nil)
		}
		return internalFailure[CodeIssuedResult](ctx, s, "find user", email, err)
	}

	if purpose == verification.PurposeRegister && usr.EmailVerified() {
		return failure[CodeIssuedResult](ctx, s, appcore.CodeEmailAlreadyVerified, nil)
	}

	now := s.now()

	record, err := s.codes.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return internalFailure[CodeIssuedResult](ctx, s, "find verification record", email, err)
	}

	if record == nil {
		return s.issueFresh(ctx, email, now)
	}

	if record.Attempts() >= verification.MaxAttempts {
		// The expiry check must come first: an expired cycle restarts
		// even when its attempts are exhausted.
		if !record.IsExpired(now) {
			minutes := record.RemainingLockMinutes(now)
			return failure[CodeIssuedResult](ctx, s, appcore.CodeTooManyVerificationAttempts,
				map[string]string{"minutes": strconv.Itoa(minutes)})
		}
		return s.issueFresh(ctx, email, now)
	}

	renewed, err := record.Renewed(s.generateCode(), now)
	if err != nil {
		return internalFailure[CodeIssuedResult](ctx, s, "renew verification code", email, err)
	}
	if saveErr := s.codes.Save(ctx, renewed); saveErr != nil {
		return internalFailure[CodeIssuedResult](ctx, s, "save verification record", email, saveErr)
	}
	if sendErr := s.mailer.SendVerificationCode(ctx, email, *renewed.Value()); sendErr != nil {
		s.logger.ErrorContext(ctx, "failed to send verification email",
			slog.String("email", email),
			slog.String("error", sendErr.Error()),
		)
		return failure[CodeIssuedResult](ctx, s, appcore.CodeVerificationEmailSendingFailed, nil)
	}

	message := s.localizer.TextByID(ctx, appcore.CodeVerificationCodeRecreated,
		map[string]string{"attempts": strconv.Itoa(renewed.AttemptsLeft())})
	return appcore.Success(CodeIssuedResult{Message: message})
}

// issueFresh starts a new verification cycle for the email.
func (s *VerificationService) issueFresh(
	ctx context.Context,
	email string,
	now time.Time,
) appcore.Result[CodeIssuedResult] {
	code, err := verification.NewCode(email, s.generateCode(), now)
	if err != nil {
		return internalFailure[CodeIssuedResult](ctx, s, "create verification code", email, err)
	}
	if saveErr := s.codes.Save(ctx, code); saveErr != nil {
		return internalFailure[CodeIssuedResult](ctx, s, "save verification record", email, saveErr)
	}
	if sendErr := s.mailer.SendVerificationCode(ctx, email, *code.Value()); sendErr != nil {
		s.logger.ErrorContext(ctx, "failed to send verification email",
			slog.String("email", email),
			slog.String("error", sendErr.Error()),
		)
		return failure[CodeIssuedResult](ctx, s, appcore.CodeVerificationEmailSendingFailed, nil)
	}

	message := s.localizer.TextByID(ctx, appcore.CodeVerificationCodeCreated, nil)
	return appcore.Success(CodeIssuedResult{Message: message})
}

// VerifyEmail checks a submitted code. On success the record is deleted,
// the email is marked verified, and for RECOVERY verifications a fresh
// recovery grant is issued.
func (s *VerificationService) VerifyEmail(
	ctx context.Context,
	cmd VerifyEmailCommand,
) appcore.Result[VerifyEmailResult] {
	usr, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[VerifyEmailResult](ctx, s, appcore.CodeUserNotFound, nil)
		}
		return internalFailure[VerifyEmailResult](ctx, s, "find user", cmd.Email, err)
	}

	record, err := s.codes.FindByEmail(ctx, cmd.Email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return internalFailure[VerifyEmailResult](ctx, s, "find verification record", cmd.Email, err)
	}

	if cmd.Purpose == verification.PurposeRegister && usr.EmailVerified() {
		return failure[VerifyEmailResult](ctx, s, appcore.CodeEmailAlreadyVerified, nil)
	}

	if record == nil || record.Value() == nil {
		return failure[VerifyEmailResult](ctx, s, appcore.CodeVerificationNotFound, nil)
	}

	if !record.Matches(cmd.Code) {
		return failure[VerifyEmailResult](ctx, s, appcore.CodeInvalidVerificationCode, nil)
	}

	now := s.now()
	if record.IsExpired(now) {
		return failure[VerifyEmailResult](ctx, s, appcore.CodeVerificationCodeExpired, nil)
	}

	// Two independent writes, no cross-document transaction: a crash
	// between them leaves a consumed record with an unverified email,
	// which the user resolves by requesting a new code.
	if deleteErr := s.codes.DeleteByEmail(ctx, cmd.Email); deleteErr != nil {
		return internalFailure[VerifyEmailResult](ctx, s, "delete verification record", cmd.Email, deleteErr)
	}
	if saveErr := s.users.Save(ctx, usr.WithVerifiedEmail()); saveErr != nil {
		return internalFailure[VerifyEmailResult](ctx, s, "mark email verified", cmd.Email, saveErr)
	}

	message := s.localizer.TextByID(ctx, appcore.CodeEmailVerified, nil)

	if cmd.Purpose == verification.PurposeRecovery {
		grant, grantErr := verification.NewRecovery(cmd.Email, now)
		if grantErr != nil {
			return internalFailure[VerifyEmailResult](ctx, s, "create recovery grant", cmd.Email, grantErr)
		}
		if saveErr := s.recoveries.Save(ctx, grant); saveErr != nil {
			return internalFailure[VerifyEmailResult](ctx, s, "save recovery grant", cmd.Email, saveErr)
		}
		return appcore.Success(VerifyEmailResult{Message: message, RecoveryKey: grant.Key()})
	}

	return appcore.Success(VerifyEmailResult{Message: message})
}

// failure builds a localized failure result for the given code.
// Package-level because Go methods cannot carry type parameters.
func failure[T any](
	ctx context.Context,
	s *VerificationService,
	code string,
	params map[string]string,
) appcore.Result[T] {
	return appcore.Failure[T](code, s.localizer.TextByID(ctx, code, params))
}

// internalFailure logs an unexpected fault and converts it into a generic failure.
func internalFailure[T any](
	ctx context.Context,
	s *VerificationService,
	operation, email string,
	err error,
) appcore.Result[T] {
	s.logger.ErrorContext(ctx, "verification service failure",
		slog.String("operation", operation),
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	return appcore.Failure[T](appcore.CodeInternal, s.localizer.TextByID(ctx, appcore.CodeInternal, nil))
}
