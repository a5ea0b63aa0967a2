package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
)

// ThirdPartyLoginUseCase authenticates an account through an external OAuth
// provider. A first login creates the account with a verified email and no
// password.
type ThirdPartyLoginUseCase struct {
	users     UserRepository
	clients   AuthClients
	tokens    TokenIssuer
	localizer Localizer
	logger    *slog.Logger
}

// ThirdPartyLoginUseCaseConfig holds the dependencies for
// NewThirdPartyLoginUseCase.
type ThirdPartyLoginUseCaseConfig struct {
	Users     UserRepository
	Clients   AuthClients
	Tokens    TokenIssuer
	Localizer Localizer
	Logger    *slog.Logger
}

// NewThirdPartyLoginUseCase creates a ThirdPartyLoginUseCase.
func NewThirdPartyLoginUseCase(cfg ThirdPartyLoginUseCaseConfig) *ThirdPartyLoginUseCase {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ThirdPartyLoginUseCase{
		users:     cfg.Users,
		clients:   cfg.Clients,
		tokens:    cfg.Tokens,
		localizer: cfg.Localizer,
		logger:    cfg.Logger,
	}
}

// Execute verifies the provider token and signs the account in.
func (uc *ThirdPartyLoginUseCase) Execute(ctx context.Context, cmd ThirdPartyLoginCommand) appcore.Result[AuthPayload] {
	if err := appcore.ValidateRequired("client", cmd.Client); err != nil {
		return appcore.ValidationFailure[AuthPayload](err)
	}
	if err := appcore.ValidateRequired("accessToken", cmd.AccessToken); err != nil {
		return appcore.ValidationFailure[AuthPayload](err)
	}

	client, ok := uc.clients.Auth(cmd.Client)
	if !ok {
		return uc.failure(ctx, appcore.CodeAuthClientNotFound)
	}

	identity, err := client.VerifyToken(ctx, cmd.AccessToken)
	if err != nil {
		uc.logger.WarnContext(ctx, "provider token rejected",
			slog.String("client", client.Name()),
			slog.String("error", err.Error()),
		)
		return uc.failure(ctx, appcore.CodeLoginFailed)
	}

	usr, err := uc.users.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrNotFound):
		usr, err = user.NewThirdPartyUser(identity.Email, identity.Username)
		if err != nil {
			return appcore.Failure[AuthPayload](appcore.CodeInvalidInput, err.Error())
		}
		if err := uc.users.Save(ctx, usr); err != nil {
			return uc.loginFailed(ctx, identity.Email, "save user", err)
		}
	default:
		return uc.loginFailed(ctx, identity.Email, "lookup user", err)
	}

	token, err := uc.tokens.Generate(usr)
	if err != nil {
		return uc.loginFailed(ctx, identity.Email, "issue token", err)
	}

	return appcore.Success(AuthPayload{
		Token: token,
		User:  NewUserView(usr),
	})
}

func (uc *ThirdPartyLoginUseCase) failure(ctx context.Context, code string) appcore.Result[AuthPayload] {
	return appcore.Failure[AuthPayload](code, uc.localizer.TextByID(ctx, code, nil))
}

func (uc *ThirdPartyLoginUseCase) loginFailed(ctx context.Context, email, operation string, err error) appcore.Result[AuthPayload] {
	uc.logger.ErrorContext(ctx, "third-party login failed",
		slog.String("operation", operation),
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	code := appcore.CodeLoginFailed
	return appcore.Failure[AuthPayload](code, uc.localizer.TextByID(ctx, code, nil))
}
