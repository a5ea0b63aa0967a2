package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
)

// MongoVerificationCodeRepository implements service.CodeStore. The email is
// the document key, so an address never has more than one pending code.
type MongoVerificationCodeRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// VerificationCodeRepoOption configures MongoVerificationCodeRepository.
type VerificationCodeRepoOption func(*MongoVerificationCodeRepository)

// WithVerificationCodeRepoLogger sets the logger for the repository.
func WithVerificationCodeRepoLogger(logger *slog.Logger) VerificationCodeRepoOption {
	return func(r *MongoVerificationCodeRepository) {
		r.logger = logger
	}
}

// NewMongoVerificationCodeRepository creates a new MongoDB verification code
// repository.
func NewMongoVerificationCodeRepository(collection *mongo.Collection, opts ...VerificationCodeRepoOption) *MongoVerificationCodeRepository {
	r := &MongoVerificationCodeRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByEmail finds the pending verification record for an email.
func (r *MongoVerificationCodeRepository) FindByEmail(ctx context.Context, email string) (*verification.Code, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"email": email}
	var doc verificationCodeDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "verification code")
	}

	return r.documentToCode(&doc), nil
}

// Save upserts the verification record keyed by email.
func (r *MongoVerificationCodeRepository) Save(ctx context.Context, code *verification.Code) error {
	if code == nil || code.Email() == "" {
		return errs.ErrInvalidInput
	}

	doc := r.codeToDocument(code)
	filter := bson.M{"email": code.Email()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save verification code",
			slog.String("email", code.Email()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "verification code")
}

// DeleteByEmail removes the verification record for an email.
func (r *MongoVerificationCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	if email == "" {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"email": email}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete verification code",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "verification code")
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// verificationCodeDocument is the MongoDB document shape for a verification
// record.
type verificationCodeDocument struct {
	Email         string     `bson:"email"`
	Code          *string    `bson:"code,omitempty"`
	AttemptsCount int        `bson:"attempts_count"`
	CodeExpiresAt *time.Time `bson:"code_expires_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

func (r *MongoVerificationCodeRepository) codeToDocument(code *verification.Code) verificationCodeDocument {
	return verificationCodeDocument{
		Email:         code.Email(),
		Code:          code.Value(),
		AttemptsCount: code.Attempts(),
		CodeExpiresAt: code.ExpiresAt(),
		CreatedAt:     code.CreatedAt(),
		UpdatedAt:     code.UpdatedAt(),
	}
}

func (r *MongoVerificationCodeRepository) documentToCode(doc *verificationCodeDocument) *verification.Code {
	return verification.Reconstruct(
		doc.Email,
		doc.Code,
		doc.AttemptsCount,
		doc.CodeExpiresAt,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
}
