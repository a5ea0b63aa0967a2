package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/application/auth"
)

func newRegisterUseCase(users *userRepoStub, codes *codeRepoStub, issuer *codeIssuerStub, tokens *tokenStub) *auth.RegisterUseCase {
	return auth.NewRegisterUseCase(auth.RegisterUseCaseConfig{
		Users:     users,
		Codes:     codes,
		Issuer:    issuer,
		Hasher:    &hasherStub{},
		Tokens:    tokens,
		Localizer: localizerStub{},
	})
}

func TestRegisterUseCase_Execute_CreatesAccount(t *testing.T) {
	// Arrange
	users := newUserRepoStub()
	issuer := &codeIssuerStub{}
	uc := newRegisterUseCase(users, &codeRepoStub{}, issuer, &tokenStub{})

	cmd := auth.RegisterCommand{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct-horse",
	}

	// Act
	result := uc.Execute(context.Background(), cmd)

	// Assert
	require.True(t, result.IsSuccess())
	payload := result.Value()
	assert.Equal(t, "token-ada@example.com", payload.Token)
	assert.Equal(t, "code sent", payload.Message)
	assert.Equal(t, "ada", payload.User.Username)
	assert.False(t, payload.User.EmailVerified)
	assert.Equal(t, []string{"ada@example.com"}, issuer.issued)

	saved, ok := users.users["ada@example.com"]
	require.True(t, ok)
	assert.False(t, saved.EmailVerified())
}

func TestRegisterUseCase_Execute_DefaultsUsernameToLocalPart(t *testing.T) {
	// Arrange
	uc := newRegisterUseCase(newUserRepoStub(), &codeRepoStub{}, &codeIssuerStub{}, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.RegisterCommand{
		Email:    "Grace@Example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsSuccess())
	assert.Equal(t, "grace", result.Value().User.Username)
	assert.Equal(t, "grace@example.com", result.Value().User.Email)
}

func TestRegisterUseCase_Execute_RejectsExistingEmail(t *testing.T) {
	// Arrange
	existing := mustUser("ada@example.com", "ada", "pw-original")
	uc := newRegisterUseCase(newUserRepoStub(existing), &codeRepoStub{}, &codeIssuerStub{}, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.RegisterCommand{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeUserAlreadyExists, result.Code())
}

func TestRegisterUseCase_Execute_RejectsInvalidInput(t *testing.T) {
	uc := newRegisterUseCase(newUserRepoStub(), &codeRepoStub{}, &codeIssuerStub{}, &tokenStub{})

	tests := []struct {
		name string
		cmd  auth.RegisterCommand
	}{
		{name: "missing email", cmd: auth.RegisterCommand{Password: "correct-horse"}},
		{name: "malformed email", cmd: auth.RegisterCommand{Email: "not-an-email", Password: "correct-horse"}},
		{name: "short password", cmd: auth.RegisterCommand{Email: "ada@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := uc.Execute(context.Background(), tt.cmd)

			require.True(t, result.IsFailure())
			assert.Equal(t, appcore.CodeInvalidInput, result.Code())
		})
	}
}

func TestRegisterUseCase_Execute_RollsBackOnCodeIssuanceFailure(t *testing.T) {
	// Arrange
	users := newUserRepoStub()
	codes := &codeRepoStub{}
	issuer := &codeIssuerStub{failCode: appcore.CodeVerificationEmailSendingFailed}
	uc := newRegisterUseCase(users, codes, issuer, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.RegisterCommand{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeVerificationEmailSendingFailed, result.Code())
	assert.Empty(t, users.users, "account must not survive a failed registration")
	assert.Equal(t, []string{"ada@example.com"}, codes.deleted)
}

func TestRegisterUseCase_Execute_RollsBackOnTokenFailure(t *testing.T) {
	// Arrange
	users := newUserRepoStub()
	codes := &codeRepoStub{}
	uc := newRegisterUseCase(users, codes, &codeIssuerStub{}, &tokenStub{err: errBoom})

	// Act
	result := uc.Execute(context.Background(), auth.RegisterCommand{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeRegistrationFailed, result.Code())
	assert.Empty(t, users.users)
	assert.Equal(t, []string{"ada@example.com"}, codes.deleted)
}
