package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/verification"
)

// MongoRecoveryRepository implements auth.RecoveryRepository and
// service.RecoveryStore.
type MongoRecoveryRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// RecoveryRepoOption configures MongoRecoveryRepository.
type RecoveryRepoOption func(*MongoRecoveryRepository)

// WithRecoveryRepoLogger sets the logger for the repository.
func WithRecoveryRepoLogger(logger *slog.Logger) RecoveryRepoOption {
	return func(r *MongoRecoveryRepository) {
		r.logger = logger
	}
}

// NewMongoRecoveryRepository creates a new MongoDB recovery repository.
func NewMongoRecoveryRepository(collection *mongo.Collection, opts ...RecoveryRepoOption) *MongoRecoveryRepository {
	r := &MongoRecoveryRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByEmail returns the most recent recovery grant for an email. Validity
// of the grant (expiry, used flag, key match) is decided in the domain.
func (r *MongoRecoveryRepository) FindByEmail(ctx context.Context, email string) (*verification.Recovery, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"email": email}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc recoveryDocument
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "recovery grant")
	}

	return r.documentToRecovery(&doc), nil
}

// Save upserts a recovery grant keyed by its recovery key.
func (r *MongoRecoveryRepository) Save(ctx context.Context, rec *verification.Recovery) error {
	if rec == nil || rec.Key() == "" {
		return errs.ErrInvalidInput
	}

	doc := r.recoveryToDocument(rec)
	filter := bson.M{"recovery_key": rec.Key()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save recovery grant",
			slog.String("email", rec.Email()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "recovery grant")
}

// recoveryDocument is the MongoDB document shape for a recovery grant.
type recoveryDocument struct {
	Email       string    `bson:"email"`
	RecoveryKey string    `bson:"recovery_key"`
	ExpiresAt   time.Time `bson:"expires_at"`
	Used        bool      `bson:"used"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (r *MongoRecoveryRepository) recoveryToDocument(rec *verification.Recovery) recoveryDocument {
	return recoveryDocument{
		Email:       rec.Email(),
		RecoveryKey: rec.Key(),
		ExpiresAt:   rec.ExpiresAt(),
		Used:        rec.Used(),
		CreatedAt:   rec.CreatedAt(),
		UpdatedAt:   rec.UpdatedAt(),
	}
}

func (r *MongoRecoveryRepository) documentToRecovery(doc *recoveryDocument) *verification.Recovery {
	return verification.ReconstructRecovery(
		doc.Email,
		doc.RecoveryKey,
		doc.ExpiresAt,
		doc.Used,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
}
