// Package mongodb implements the application layer repositories on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	userdomain "github.com/whiteakyloff/metis-back-v2/internal/domain/user"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// MongoUserRepository implements auth.UserRepository and the stores the
// verification service needs.
type MongoUserRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// UserRepoOption configures MongoUserRepository.
type UserRepoOption func(*MongoUserRepository)

// WithUserRepoLogger sets the logger for the user repository.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *MongoUserRepository) {
		r.logger = logger
	}
}

// NewMongoUserRepository creates a new MongoDB user repository.
func NewMongoUserRepository(collection *mongo.Collection, opts ...UserRepoOption) *MongoUserRepository {
	r := &MongoUserRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByID finds a user by ID.
func (r *MongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": id.String()}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find user by ID",
				slog.String("user_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return r.documentToUser(&doc)
}

// FindByEmail finds a user by email.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"email": email}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}

	return r.documentToUser(&doc)
}

// Save upserts a user keyed by its ID.
func (r *MongoUserRepository) Save(ctx context.Context, user *userdomain.User) error {
	if user == nil || user.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := r.userToDocument(user)
	filter := bson.M{"user_id": user.ID().String()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save user",
			slog.String("user_id", user.ID().String()),
			slog.String("email", user.Email()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "user")
}

// Delete removes a user.
func (r *MongoUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id.IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": id.String()}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete user",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "user")
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// userDocument is the MongoDB document shape for a user.
type userDocument struct {
	UserID        string    `bson:"user_id"`
	Email         string    `bson:"email"`
	Username      string    `bson:"username"`
	PasswordHash  *string   `bson:"password_hash,omitempty"`
	EmailVerified bool      `bson:"email_verified"`
	AuthMethod    string    `bson:"auth_method"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (r *MongoUserRepository) userToDocument(user *userdomain.User) userDocument {
	return userDocument{
		UserID:        user.ID().String(),
		Email:         user.Email(),
		Username:      user.Username(),
		PasswordHash:  user.PasswordHash(),
		EmailVerified: user.EmailVerified(),
		AuthMethod:    string(user.AuthMethod()),
		CreatedAt:     user.CreatedAt(),
		UpdatedAt:     user.UpdatedAt(),
	}
}

func (r *MongoUserRepository) documentToUser(doc *userDocument) (*userdomain.User, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.UserID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return userdomain.Reconstruct(
		id,
		doc.Email,
		doc.Username,
		doc.PasswordHash,
		doc.EmailVerified,
		userdomain.AuthMethod(doc.AuthMethod),
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
