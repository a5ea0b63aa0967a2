package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

func TestHasher_HashAndCompare(t *testing.T) {
	hasher := service.NewHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, hasher.Compare(&hash, "correct horse battery staple"))
	assert.False(t, hasher.Compare(&hash, "wrong password"))
}

func TestHasher_Compare_NoHash(t *testing.T) {
	// Third-party accounts carry no password hash and must never match.
	hasher := service.NewHasher(bcrypt.MinCost)
	empty := ""

	assert.False(t, hasher.Compare(nil, "anything"))
	assert.False(t, hasher.Compare(&empty, "anything"))
}

func TestNewHasher_DefaultCost(t *testing.T) {
	hasher := service.NewHasher(0)

	hash, err := hasher.Hash("password")

	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
