package middleware_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
)

func newVerifiedUser(t *testing.T, email string) *user.User {
	t.Helper()
	usr, err := user.NewUser(email, "grace", "hashed-password")
	require.NoError(t, err)
	return usr
}
