package httphandler_test

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	authapp "github.com/whiteakyloff/metis-back-v2/internal/application/auth"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
	httphandler "github.com/whiteakyloff/metis-back-v2/internal/handler/http"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/httpserver"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

type registerStub struct {
	result appcore.Result[authapp.AuthPayload]
	got    *authapp.RegisterCommand
}

func (s *registerStub) Execute(_ context.Context, cmd authapp.RegisterCommand) appcore.Result[authapp.AuthPayload] {
	s.got = &cmd
	return s.result
}

type loginStub struct {
	result appcore.Result[authapp.AuthPayload]
}

func (s *loginStub) Execute(_ context.Context, _ authapp.LoginCommand) appcore.Result[authapp.AuthPayload] {
	return s.result
}

type thirdPartyLoginStub struct {
	result appcore.Result[authapp.AuthPayload]
	got    *authapp.ThirdPartyLoginCommand
}

func (s *thirdPartyLoginStub) Execute(
	_ context.Context, cmd authapp.ThirdPartyLoginCommand,
) appcore.Result[authapp.AuthPayload] {
	s.got = &cmd
	return s.result
}

type recoverStub struct {
	result appcore.Result[authapp.RecoveryPayload]
	got    *authapp.RecoverPasswordCommand
}

func (s *recoverStub) Execute(
	_ context.Context, cmd authapp.RecoverPasswordCommand,
) appcore.Result[authapp.RecoveryPayload] {
	s.got = &cmd
	return s.result
}

type verificationStub struct {
	issued     appcore.Result[service.CodeIssuedResult]
	verified   appcore.Result[service.VerifyEmailResult]
	gotPurpose verification.Purpose
	gotCmd     *service.VerifyEmailCommand
}

func (s *verificationStub) CreateVerificationCode(
	_ context.Context, _ string, purpose verification.Purpose,
) appcore.Result[service.CodeIssuedResult] {
	s.gotPurpose = purpose
	return s.issued
}

func (s *verificationStub) VerifyEmail(
	_ context.Context, cmd service.VerifyEmailCommand,
) appcore.Result[service.VerifyEmailResult] {
	s.gotCmd = &cmd
	return s.verified
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(stdhttp.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.Response {
	t.Helper()
	var resp httpserver.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		// Arrange
		register := &registerStub{result: appcore.Success(authapp.AuthPayload{Token: "jwt-token"})}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Register: register})

		c, rec := postJSON(t, "/api/v1/auth/register",
			`{"email": "grace@example.com", "username": "grace", "password": "secret123"}`)

		// Act
		err := handler.Register(c)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusCreated, rec.Code)
		assert.True(t, decodeResponse(t, rec).Success)

		require.NotNil(t, register.got)
		assert.Equal(t, "grace@example.com", register.got.Email)
		assert.Equal(t, "grace", register.got.Username)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		register := &registerStub{
			result: appcore.Failure[authapp.AuthPayload](appcore.CodeUserAlreadyExists, "User already exists"),
		}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Register: register})

		c, rec := postJSON(t, "/api/v1/auth/register",
			`{"email": "grace@example.com", "password": "secret123"}`)

		err := handler.Register(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusConflict, rec.Code)

		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appcore.CodeUserAlreadyExists, resp.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Register: &registerStub{}})

		c, rec := postJSON(t, "/api/v1/auth/register", `{not json`)

		err := handler.Register(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		login := &loginStub{result: appcore.Success(authapp.AuthPayload{Token: "jwt-token"})}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Login: login})

		c, rec := postJSON(t, "/api/v1/auth/login",
			`{"email": "grace@example.com", "password": "secret123"}`)

		err := handler.Login(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusOK, rec.Code)
	})

	t.Run("wrong password maps to unauthorized", func(t *testing.T) {
		login := &loginStub{
			result: appcore.Failure[authapp.AuthPayload](appcore.CodeWrongPassword, "Wrong password"),
		}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Login: login})

		c, rec := postJSON(t, "/api/v1/auth/login",
			`{"email": "grace@example.com", "password": "wrong"}`)

		err := handler.Login(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_ThirdPartyLogin(t *testing.T) {
	// Arrange
	stub := &thirdPartyLoginStub{result: appcore.Success(authapp.AuthPayload{Token: "jwt-token"})}
	handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{ThirdPartyLogin: stub})

	c, rec := postJSON(t, "/api/v1/auth/login/google", `{"accessToken": "provider-token"}`)
	c.SetParamNames("client")
	c.SetParamValues("google")

	// Act
	err := handler.ThirdPartyLogin(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	require.NotNil(t, stub.got)
	assert.Equal(t, "google", stub.got.Client)
	assert.Equal(t, "provider-token", stub.got.AccessToken)
}

func TestAuthHandler_SendVerification(t *testing.T) {
	t.Run("recovery purpose", func(t *testing.T) {
		stub := &verificationStub{issued: appcore.Success(service.CodeIssuedResult{Message: "code sent"})}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Verification: stub})

		c, rec := postJSON(t, "/api/v1/auth/verification/send",
			`{"email": "grace@example.com", "verificationType": "RECOVERY"}`)

		err := handler.SendVerification(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusOK, rec.Code)
		assert.Equal(t, verification.PurposeRecovery, stub.gotPurpose)
	})

	t.Run("missing type defaults to register", func(t *testing.T) {
		stub := &verificationStub{issued: appcore.Success(service.CodeIssuedResult{Message: "code sent"})}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Verification: stub})

		c, rec := postJSON(t, "/api/v1/auth/verification/send", `{"email": "grace@example.com"}`)

		err := handler.SendVerification(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusOK, rec.Code)
		assert.Equal(t, verification.PurposeRegister, stub.gotPurpose)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Verification: &verificationStub{}})

		c, rec := postJSON(t, "/api/v1/auth/verification/send",
			`{"email": "grace@example.com", "verificationType": "SOMETHING"}`)

		err := handler.SendVerification(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})

	t.Run("attempt ceiling maps to too many requests", func(t *testing.T) {
		stub := &verificationStub{
			issued: appcore.Failure[service.CodeIssuedResult](
				appcore.CodeTooManyVerificationAttempts, "Try again in 7 minutes"),
		}
		handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Verification: stub})

		c, rec := postJSON(t, "/api/v1/auth/verification/send",
			`{"email": "grace@example.com", "verificationType": "REGISTER"}`)

		err := handler.SendVerification(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusTooManyRequests, rec.Code)
	})
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	// Arrange
	stub := &verificationStub{
		verified: appcore.Success(service.VerifyEmailResult{Message: "verified", RecoveryKey: "key-1"}),
	}
	handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Verification: stub})

	c, rec := postJSON(t, "/api/v1/auth/verification/verify",
		`{"email": "grace@example.com", "verificationCode": "123456", "verificationType": "RECOVERY"}`)

	// Act
	err := handler.VerifyEmail(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	require.NotNil(t, stub.gotCmd)
	assert.Equal(t, "123456", stub.gotCmd.Code)
	assert.Equal(t, verification.PurposeRecovery, stub.gotCmd.Purpose)
	assert.Contains(t, rec.Body.String(), "key-1")
}

func TestAuthHandler_RecoverPassword(t *testing.T) {
	// Arrange
	stub := &recoverStub{result: appcore.Success(authapp.RecoveryPayload{Message: "password changed"})}
	handler := httphandler.NewAuthHandler(httphandler.AuthHandlerConfig{Recover: stub})

	c, rec := postJSON(t, "/api/v1/auth/recovery?recoveryKey=key-1",
		`{"email": "grace@example.com", "password": "newsecret1"}`)

	// Act
	err := handler.RecoverPassword(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	require.NotNil(t, stub.got)
	assert.Equal(t, "key-1", stub.got.RecoveryKey)
	assert.Equal(t, "grace@example.com", stub.got.Email)
}
