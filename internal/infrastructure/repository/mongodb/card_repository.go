package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	cardapp "github.com/whiteakyloff/metis-back-v2/internal/application/card"
	carddomain "github.com/whiteakyloff/metis-back-v2/internal/domain/card"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// MongoCardRepository implements card.Repository and the card cascade used
// by deck deletion.
type MongoCardRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// CardRepoOption configures MongoCardRepository.
type CardRepoOption func(*MongoCardRepository)

// WithCardRepoLogger sets the logger for the repository.
func WithCardRepoLogger(logger *slog.Logger) CardRepoOption {
	return func(r *MongoCardRepository) {
		r.logger = logger
	}
}

// NewMongoCardRepository creates a new MongoDB card repository.
func NewMongoCardRepository(collection *mongo.Collection, opts ...CardRepoOption) *MongoCardRepository {
	r := &MongoCardRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByID finds a card by ID.
func (r *MongoCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*carddomain.Card, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"card_id": id.String()}
	var doc cardDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "card")
	}

	return r.documentToCard(&doc)
}

// FindByDeck lists a deck's cards in insertion order.
func (r *MongoCardRepository) FindByDeck(ctx context.Context, deckID uuid.UUID) ([]*carddomain.Card, error) {
	if deckID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"deck_id": deckID.String()}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	return r.findCards(ctx, filter, opts)
}

// Search finds cards in a deck by original or translated word.
func (r *MongoCardRepository) Search(ctx context.Context, f cardapp.SearchFilter) ([]*carddomain.Card, error) {
	if f.DeckID.IsZero() || f.Term == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{
		"deck_id": f.DeckID.String(),
		"$text":   bson.M{"$search": f.Term},
	}

	return r.findCards(ctx, filter, options.Find())
}

// Save upserts a card keyed by its ID.
func (r *MongoCardRepository) Save(ctx context.Context, c *carddomain.Card) error {
	if c == nil || c.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := r.cardToDocument(c)
	filter := bson.M{"card_id": c.ID().String()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save card",
			slog.String("card_id", c.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "card")
}

// Delete removes a card.
func (r *MongoCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id.IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"card_id": id.String()}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete card",
			slog.String("card_id", id.String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "card")
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// DeleteByDeck removes all cards of a deck. Deleting zero cards is not an
// error, an empty deck is a legal state.
func (r *MongoCardRepository) DeleteByDeck(ctx context.Context, deckID uuid.UUID) error {
	if deckID.IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"deck_id": deckID.String()}
	_, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete deck cards",
			slog.String("deck_id", deckID.String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "cards")
}

func (r *MongoCardRepository) findCards(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]*carddomain.Card, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, HandleMongoError(err, "cards")
	}
	defer cursor.Close(ctx)

	var cards []*carddomain.Card
	for cursor.Next(ctx) {
		var doc cardDocument
		if decodeErr := cursor.Decode(&doc); decodeErr != nil {
			return nil, HandleMongoError(decodeErr, "cards")
		}
		c, convErr := r.documentToCard(&doc)
		if convErr != nil {
			return nil, convErr
		}
		cards = append(cards, c)
	}

	if cursorErr := cursor.Err(); cursorErr != nil {
		return nil, HandleMongoError(cursorErr, "cards")
	}

	return cards, nil
}

// cardDocument is the MongoDB document shape for a card.
type cardDocument struct {
	CardID         string    `bson:"card_id"`
	DeckID         string    `bson:"deck_id"`
	OriginalWord   string    `bson:"original_word"`
	TranslatedWord string    `bson:"translated_word"`
	Transcription  string    `bson:"transcription,omitempty"`
	Note           *string   `bson:"note,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (r *MongoCardRepository) cardToDocument(c *carddomain.Card) cardDocument {
	return cardDocument{
		CardID:         c.ID().String(),
		DeckID:         c.DeckID().String(),
		OriginalWord:   c.OriginalWord(),
		TranslatedWord: c.TranslatedWord(),
		Transcription:  c.Transcription(),
		Note:           c.Note(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func (r *MongoCardRepository) documentToCard(doc *cardDocument) (*carddomain.Card, error) {
	id, err := uuid.ParseUUID(doc.CardID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	deckID, err := uuid.ParseUUID(doc.DeckID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return carddomain.Reconstruct(
		id,
		deckID,
		doc.OriginalWord,
		doc.TranslatedWord,
		doc.Transcription,
		doc.Note,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
