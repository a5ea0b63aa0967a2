package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

// Response represents a standard API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error represents an error in the API response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON sends a successful JSON response.
func RespondJSON(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{
		Success: true,
		Data:    data,
	})
}

// RespondOK sends a 200 OK response with data.
func RespondOK(c echo.Context, data any) error {
	return RespondJSON(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data.
func RespondCreated(c echo.Context, data any) error {
	return RespondJSON(c, http.StatusCreated, data)
}

// RespondNoContent sends a 204 No Content response.
func RespondNoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// RespondFailure sends the error envelope for a failed use case result,
// mapping the failure code to an HTTP status.
func RespondFailure(c echo.Context, code, message string) error {
	return c.JSON(StatusForCode(code), Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// RespondResult writes a use case result: the payload on success with the
// given status, the mapped error envelope on failure.
func RespondResult[T any](c echo.Context, result appcore.Result[T], successStatus int) error {
	if result.IsFailure() {
		return RespondFailure(c, result.Code(), result.Message())
	}
	return RespondJSON(c, successStatus, result.Value())
}

// StatusForCode maps a use case failure code to an HTTP status.
func StatusForCode(code string) int {
	switch code {
	case appcore.CodeUserNotFound,
		appcore.CodeVerificationNotFound,
		appcore.CodeDeckNotFound,
		appcore.CodeCardNotFound,
		appcore.CodeAuthClientNotFound,
		appcore.CodeTranslationClientNotFound:
		return http.StatusNotFound

	case appcore.CodeUserAlreadyExists,
		appcore.CodeEmailAlreadyVerified:
		return http.StatusConflict

	case appcore.CodeInvalidInput,
		appcore.CodeInvalidVerificationCode,
		appcore.CodeVerificationCodeExpired,
		appcore.CodeThirdPartyAccountCannotRecover:
		return http.StatusBadRequest

	case appcore.CodeWrongPassword,
		appcore.CodeRecoveryKeyNotMatch:
		return http.StatusUnauthorized

	case appcore.CodeNotAuthorized:
		return http.StatusForbidden

	case appcore.CodeTooManyVerificationAttempts:
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}
