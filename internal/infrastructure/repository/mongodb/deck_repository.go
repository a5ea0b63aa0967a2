package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	deckapp "github.com/whiteakyloff/metis-back-v2/internal/application/deck"
	deckdomain "github.com/whiteakyloff/metis-back-v2/internal/domain/deck"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// MongoDeckRepository implements deck.Repository.
type MongoDeckRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// DeckRepoOption configures MongoDeckRepository.
type DeckRepoOption func(*MongoDeckRepository)

// WithDeckRepoLogger sets the logger for the repository.
func WithDeckRepoLogger(logger *slog.Logger) DeckRepoOption {
	return func(r *MongoDeckRepository) {
		r.logger = logger
	}
}

// NewMongoDeckRepository creates a new MongoDB deck repository.
func NewMongoDeckRepository(collection *mongo.Collection, opts ...DeckRepoOption) *MongoDeckRepository {
	r := &MongoDeckRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByID finds a deck by ID.
func (r *MongoDeckRepository) FindByID(ctx context.Context, id uuid.UUID) (*deckdomain.Deck, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"deck_id": id.String()}
	var doc deckDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "deck")
	}

	return r.documentToDeck(&doc)
}

// FindByOwner lists a user's decks, newest first.
func (r *MongoDeckRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*deckdomain.Deck, error) {
	if ownerID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"owner_id": ownerID.String()}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	return r.findDecks(ctx, filter, opts)
}

// FindPublic lists public decks, optionally narrowed by language.
func (r *MongoDeckRepository) FindPublic(ctx context.Context, f deckapp.PublicDecksFilter) ([]*deckdomain.Deck, error) {
	filter := bson.M{"is_public": true}
	if f.Language != "" {
		filter["language"] = f.Language
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(f.Limit)).
		SetSkip(int64(f.Offset))

	return r.findDecks(ctx, filter, opts)
}

// Search finds decks by name among the user's own decks and public ones.
func (r *MongoDeckRepository) Search(ctx context.Context, f deckapp.SearchFilter) ([]*deckdomain.Deck, error) {
	if f.UserID.IsZero() || f.Term == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{
		"$text": bson.M{"$search": f.Term},
		"$or": []bson.M{
			{"owner_id": f.UserID.String()},
			{"is_public": true},
		},
	}

	return r.findDecks(ctx, filter, options.Find())
}

// Save upserts a deck keyed by its ID.
func (r *MongoDeckRepository) Save(ctx context.Context, d *deckdomain.Deck) error {
	if d == nil || d.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := r.deckToDocument(d)
	filter := bson.M{"deck_id": d.ID().String()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save deck",
			slog.String("deck_id", d.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "deck")
}

// Delete removes a deck.
func (r *MongoDeckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id.IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"deck_id": id.String()}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete deck",
			slog.String("deck_id", id.String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "deck")
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDeckRepository) findDecks(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]*deckdomain.Deck, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, HandleMongoError(err, "decks")
	}
	defer cursor.Close(ctx)

	var decks []*deckdomain.Deck
	for cursor.Next(ctx) {
		var doc deckDocument
		if decodeErr := cursor.Decode(&doc); decodeErr != nil {
			return nil, HandleMongoError(decodeErr, "decks")
		}
		d, convErr := r.documentToDeck(&doc)
		if convErr != nil {
			return nil, convErr
		}
		decks = append(decks, d)
	}

	if cursorErr := cursor.Err(); cursorErr != nil {
		return nil, HandleMongoError(cursorErr, "decks")
	}

	return decks, nil
}

// deckDocument is the MongoDB document shape for a deck.
type deckDocument struct {
	DeckID    string    `bson:"deck_id"`
	Name      string    `bson:"name"`
	Language  string    `bson:"language"`
	OwnerID   string    `bson:"owner_id"`
	IsPublic  bool      `bson:"is_public"`
	Favourite bool      `bson:"favourite"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *MongoDeckRepository) deckToDocument(d *deckdomain.Deck) deckDocument {
	return deckDocument{
		DeckID:    d.ID().String(),
		Name:      d.Name(),
		Language:  d.Language(),
		OwnerID:   d.OwnerID().String(),
		IsPublic:  d.IsPublic(),
		Favourite: d.Favourite(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
}

func (r *MongoDeckRepository) documentToDeck(doc *deckDocument) (*deckdomain.Deck, error) {
	id, err := uuid.ParseUUID(doc.DeckID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	ownerID, err := uuid.ParseUUID(doc.OwnerID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return deckdomain.Reconstruct(
		id,
		doc.Name,
		doc.Language,
		ownerID,
		doc.IsPublic,
		doc.Favourite,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
