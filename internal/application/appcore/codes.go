package appcore

// Failure and success codes shared across use cases. The codes double as
// localization text IDs: the localizer resolves a code to the user-facing
// message in the requested language.
const (
	// Account lookup and registration.
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	CodeRegistrationFailed = "REGISTRATION_FAILED"

	// Login.
	CodeLoginFailed        = "LOGIN_FAILED"
	CodeWrongPassword      = "WRONG_PASSWORD"
	CodeAuthClientNotFound = "AUTH_CLIENT_NOT_FOUND"

	// Email verification.
	CodeEmailAlreadyVerified           = "EMAIL_ALREADY_VERIFIED"
	CodeTooManyVerificationAttempts    = "TOO_MANY_VERIFICATION_ATTEMPTS"
	CodeVerificationCodeCreated        = "VERIFICATION_CODE_CREATED"
	CodeVerificationCodeRecreated      = "VERIFICATION_CODE_RECREATED"
	CodeVerificationNotFound           = "VERIFICATION_NOT_FOUND"
	CodeInvalidVerificationCode        = "INVALID_VERIFICATION_CODE"
	CodeVerificationCodeExpired        = "VERIFICATION_CODE_EXPIRED"
	CodeEmailVerified                  = "EMAIL_VERIFIED"
	CodeVerificationEmailSendingFailed = "VERIFICATION_EMAIL_SENDING_FAILED"

	// Password recovery.
	CodeRecoveryFailed                 = "RECOVERY_FAILED"
	CodeRecoveryKeyNotMatch            = "RECOVERY_KEY_NOT_MATCH"
	CodeThirdPartyAccountCannotRecover = "THIRD_PARTY_ACCOUNT_CANNOT_RECOVER"
	CodePasswordRecoverySuccessful     = "PASSWORD_RECOVERY_SUCCESSFUL"

	// Flashcards.
	CodeDeckNotFound  = "DECK_NOT_FOUND"
	CodeCardNotFound  = "CARD_NOT_FOUND"
	CodeNotAuthorized = "NOT_AUTHORIZED"
	CodeDeckFailed    = "DECK_OPERATION_FAILED"
	CodeCardFailed    = "CARD_OPERATION_FAILED"

	// Translation.
	CodeTranslationClientNotFound = "TRANSLATION_CLIENT_NOT_FOUND"
	CodeTranslationFailed         = "TRANSLATION_FAILED"

	// Generic validation failure.
	CodeInvalidInput = "INVALID_INPUT"

	// CodeInternal covers unexpected faults that were logged and swallowed
	// at the use-case boundary.
	CodeInternal = "INTERNAL_ERROR"
)
