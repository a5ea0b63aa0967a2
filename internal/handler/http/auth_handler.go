// Package httphandler contains the HTTP handlers of the API.
package httphandler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	authapp "github.com/whiteakyloff/metis-back-v2/internal/application/auth"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/httpserver"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

// RegisterRequest represents the request to create an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the request to sign in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ThirdPartyLoginRequest represents the request to sign in via a provider.
type ThirdPartyLoginRequest struct {
	AccessToken string `json:"accessToken"`
}

// SendVerificationRequest represents the request to send a verification code.
type SendVerificationRequest struct {
	Email            string `json:"email"`
	VerificationType string `json:"verificationType"`
}

// VerifyEmailRequest represents the request to check a verification code.
type VerifyEmailRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
	VerificationType string `json:"verificationType"`
}

// RecoverPasswordRequest represents the request to set a new password.
type RecoverPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth use case interfaces.
// Declared on the consumer side per project guidelines.
type (
	RegisterExecutor interface {
		Execute(ctx context.Context, cmd authapp.RegisterCommand) appcore.Result[authapp.AuthPayload]
	}

	LoginExecutor interface {
		Execute(ctx context.Context, cmd authapp.LoginCommand) appcore.Result[authapp.AuthPayload]
	}

	ThirdPartyLoginExecutor interface {
		Execute(ctx context.Context, cmd authapp.ThirdPartyLoginCommand) appcore.Result[authapp.AuthPayload]
	}

	RecoverPasswordExecutor interface {
		Execute(ctx context.Context, cmd authapp.RecoverPasswordCommand) appcore.Result[authapp.RecoveryPayload]
	}

	// VerificationFlow is the verification code lifecycle the handler drives.
	VerificationFlow interface {
		CreateVerificationCode(
			ctx context.Context, email string, purpose verification.Purpose,
		) appcore.Result[service.CodeIssuedResult]
		VerifyEmail(
			ctx context.Context, cmd service.VerifyEmailCommand,
		) appcore.Result[service.VerifyEmailResult]
	}
)

// AuthHandler handles account and session HTTP requests.
type AuthHandler struct {
	register        RegisterExecutor
	login           LoginExecutor
	thirdPartyLogin ThirdPartyLoginExecutor
	recover         RecoverPasswordExecutor
	verification    VerificationFlow
}

// AuthHandlerConfig holds the dependencies of AuthHandler.
type AuthHandlerConfig struct {
	Register        RegisterExecutor
	Login           LoginExecutor
	ThirdPartyLogin ThirdPartyLoginExecutor
	Recover         RecoverPasswordExecutor
	Verification    VerificationFlow
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		register:        cfg.Register,
		login:           cfg.Login,
		thirdPartyLogin: cfg.ThirdPartyLogin,
		recover:         cfg.Recover,
		verification:    cfg.Verification,
	}
}

// RegisterRoutes registers auth routes on the group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/login/:client", h.ThirdPartyLogin)
	g.POST("/auth/verification/send", h.SendVerification)
	g.POST("/auth/verification/verify", h.VerifyEmail)
	g.POST("/auth/recovery", h.RecoverPassword)
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	result := h.register.Execute(c.Request().Context(), authapp.RegisterCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	return httpserver.RespondResult(c, result, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	result := h.login.Execute(c.Request().Context(), authapp.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// ThirdPartyLogin handles POST /api/v1/auth/login/:client.
func (h *AuthHandler) ThirdPartyLogin(c echo.Context) error {
	var req ThirdPartyLoginRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	result := h.thirdPartyLogin.Execute(c.Request().Context(), authapp.ThirdPartyLoginCommand{
		Client:      c.Param("client"),
		AccessToken: req.AccessToken,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// SendVerification handles POST /api/v1/auth/verification/send.
func (h *AuthHandler) SendVerification(c echo.Context) error {
	var req SendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	purpose, ok := parsePurpose(req.VerificationType)
	if !ok {
		return respondInvalidPurpose(c)
	}

	result := h.verification.CreateVerificationCode(c.Request().Context(), req.Email, purpose)
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// VerifyEmail handles POST /api/v1/auth/verification/verify.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	purpose, ok := parsePurpose(req.VerificationType)
	if !ok {
		return respondInvalidPurpose(c)
	}

	result := h.verification.VerifyEmail(c.Request().Context(), service.VerifyEmailCommand{
		Email:   req.Email,
		Code:    req.VerificationCode,
		Purpose: purpose,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// RecoverPassword handles POST /api/v1/auth/recovery?recoveryKey=...
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	var req RecoverPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	result := h.recover.Execute(c.Request().Context(), authapp.RecoverPasswordCommand{
		Email:       req.Email,
		Password:    req.Password,
		RecoveryKey: c.QueryParam("recoveryKey"),
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// parsePurpose maps the wire verification type to a domain purpose.
// An empty type defaults to REGISTER.
func parsePurpose(verificationType string) (verification.Purpose, bool) {
	if verificationType == "" {
		return verification.PurposeRegister, true
	}
	purpose := verification.Purpose(verificationType)
	return purpose, purpose.Valid()
}

func respondBadRequest(c echo.Context) error {
	return httpserver.RespondFailure(c, appcore.CodeInvalidInput, "Invalid request body")
}

func respondInvalidPurpose(c echo.Context) error {
	return httpserver.RespondFailure(c, appcore.CodeInvalidInput, "Unknown verification type")
}
