package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/application/auth"
)

func newLoginUseCase(users *userRepoStub, tokens *tokenStub) *auth.LoginUseCase {
	return auth.NewLoginUseCase(auth.LoginUseCaseConfig{
		Users:     users,
		Hasher:    &hasherStub{},
		Tokens:    tokens,
		Localizer: localizerStub{},
	})
}

func TestLoginUseCase_Execute_IssuesToken(t *testing.T) {
	// Arrange
	users := newUserRepoStub(mustUser("ada@example.com", "ada", "correct-horse"))
	uc := newLoginUseCase(users, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.LoginCommand{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsSuccess())
	assert.Equal(t, "token-ada@example.com", result.Value().Token)
	assert.Equal(t, "ada", result.Value().User.Username)
}

func TestLoginUseCase_Execute_UnknownEmail(t *testing.T) {
	// Arrange
	uc := newLoginUseCase(newUserRepoStub(), &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.LoginCommand{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeUserNotFound, result.Code())
}

func TestLoginUseCase_Execute_WrongPassword(t *testing.T) {
	// Arrange
	users := newUserRepoStub(mustUser("ada@example.com", "ada", "correct-horse"))
	uc := newLoginUseCase(users, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.LoginCommand{
		Email:    "ada@example.com",
		Password: "wrong-guess",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeWrongPassword, result.Code())
}

func TestLoginUseCase_Execute_ThirdPartyAccountHasNoPassword(t *testing.T) {
	// Arrange
	users := newUserRepoStub()
	thirdParty := mustThirdPartyUser("oauth@example.com", "oauth")
	users.users[thirdParty.Email()] = thirdParty
	uc := newLoginUseCase(users, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.LoginCommand{
		Email:    "oauth@example.com",
		Password: "anything-at-all",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeWrongPassword, result.Code())
}

func TestLoginUseCase_Execute_RepositoryFault(t *testing.T) {
	// Arrange
	users := newUserRepoStub()
	users.findErr = errBoom
	uc := newLoginUseCase(users, &tokenStub{})

	// Act
	result := uc.Execute(context.Background(), auth.LoginCommand{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	// Assert
	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeLoginFailed, result.Code())
}
