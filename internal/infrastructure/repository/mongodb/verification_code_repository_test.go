package mongodb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
	mongodbinfra "github.com/whiteakyloff/metis-back-v2/internal/infrastructure/mongodb"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/repository/mongodb"
)

func setupVerificationCodeRepository(t *testing.T) *mongodb.MongoVerificationCodeRepository {
	t.Helper()

	return mongodb.NewMongoVerificationCodeRepository(
		setupTestCollection(t, mongodbinfra.CollectionVerificationCodes),
	)
}

func TestMongoVerificationCodeRepository_SaveAndFindByEmail(t *testing.T) {
	// Arrange
	repo := setupVerificationCodeRepository(t)
	ctx := context.Background()
	now := time.Now()
	code, err := verification.NewCode("verify@example.com", "483920", now)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Save(ctx, code))
	loaded, err := repo.FindByEmail(ctx, "verify@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "verify@example.com", loaded.Email())
	assert.True(t, loaded.Matches("483920"))
	assert.Equal(t, 1, loaded.Attempts())
	require.NotNil(t, loaded.ExpiresAt())
	assert.WithinDuration(t, now.Add(verification.CodeTTL), *loaded.ExpiresAt(), time.Second)
}

func TestMongoVerificationCodeRepository_FindByEmail_NotFound(t *testing.T) {
	repo := setupVerificationCodeRepository(t)

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")

	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMongoVerificationCodeRepository_Upsert(t *testing.T) {
	// Saving a renewed code for the same email keeps a single pending
	// record with the incremented attempt count.
	repo := setupVerificationCodeRepository(t)
	ctx := context.Background()
	first, err := verification.NewCode("resend@example.com", "111111", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	renewed, err := first.Renewed("222222", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, renewed))

	loaded, err := repo.FindByEmail(ctx, "resend@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Attempts())
	assert.True(t, loaded.Matches("222222"))
	assert.False(t, loaded.Matches("111111"))
}

func TestMongoVerificationCodeRepository_UniqueEmailIndex(t *testing.T) {
	// The unique index on email backs the single-pending-record rule even
	// for writes that bypass the repository's upsert.
	collection := setupTestCollection(t, mongodbinfra.CollectionVerificationCodes)
	ctx := context.Background()
	now := time.Now()

	doc := bson.M{
		"email":           "pending@example.com",
		"code":            "111111",
		"attempts_count":  1,
		"code_expires_at": now.Add(verification.CodeTTL),
		"created_at":      now,
		"updated_at":      now,
	}
	_, err := collection.InsertOne(ctx, doc)
	require.NoError(t, err)

	doc["code"] = "222222"
	_, err = collection.InsertOne(ctx, doc)

	require.Error(t, err)
	assert.True(t, mongodriver.IsDuplicateKeyError(err))
	assert.ErrorIs(t, mongodb.HandleMongoError(err, "verification code"), errs.ErrAlreadyExists)
}

func TestMongoVerificationCodeRepository_DeleteByEmail(t *testing.T) {
	repo := setupVerificationCodeRepository(t)
	ctx := context.Background()
	code, err := verification.NewCode("done@example.com", "654321", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, code))

	require.NoError(t, repo.DeleteByEmail(ctx, "done@example.com"))

	_, err = repo.FindByEmail(ctx, "done@example.com")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMongoVerificationCodeRepository_DeleteByEmail_NotFound(t *testing.T) {
	repo := setupVerificationCodeRepository(t)

	err := repo.DeleteByEmail(context.Background(), "missing@example.com")

	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMongoVerificationCodeRepository_InputValidation(t *testing.T) {
	repo := setupVerificationCodeRepository(t)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	assert.ErrorIs(t, repo.Save(ctx, nil), errs.ErrInvalidInput)
	assert.ErrorIs(t, repo.DeleteByEmail(ctx, ""), errs.ErrInvalidInput)
}
