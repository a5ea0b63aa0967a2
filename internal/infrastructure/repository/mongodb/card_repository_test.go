package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cardapp "github.com/whiteakyloff/metis-back-v2/internal/application/card"
	carddomain "github.com/whiteakyloff/metis-back-v2/internal/domain/card"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	mongodbinfra "github.com/whiteakyloff/metis-back-v2/internal/infrastructure/mongodb"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/repository/mongodb"
)

func setupCardRepository(t *testing.T) *mongodb.MongoCardRepository {
	t.Helper()

	return mongodb.NewMongoCardRepository(setupTestCollection(t, mongodbinfra.CollectionCards))
}

func newTestCard(t *testing.T, deckID uuid.UUID, original, translated string) *carddomain.Card {
	t.Helper()

	c, err := carddomain.NewCard(deckID, original, translated, "", nil)
	require.NoError(t, err)

	return c
}

func TestMongoCardRepository_SaveAndFindByID(t *testing.T) {
	// Arrange
	repo := setupCardRepository(t)
	ctx := context.Background()
	note := "irregular plural"
	c, err := carddomain.NewCard(uuid.NewUUID(), "pez", "fish", "[peθ]", &note)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Save(ctx, c))
	loaded, err := repo.FindByID(ctx, c.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pez", loaded.OriginalWord())
	assert.Equal(t, "fish", loaded.TranslatedWord())
	assert.Equal(t, "[peθ]", loaded.Transcription())
	require.NotNil(t, loaded.Note())
	assert.Equal(t, note, *loaded.Note())
}

func TestMongoCardRepository_FindByDeck(t *testing.T) {
	// Listing returns the deck's cards only, in insertion order.
	repo := setupCardRepository(t)
	ctx := context.Background()
	deckID := uuid.NewUUID()

	require.NoError(t, repo.Save(ctx, newTestCard(t, deckID, "uno", "one")))
	require.NoError(t, repo.Save(ctx, newTestCard(t, deckID, "dos", "two")))
	require.NoError(t, repo.Save(ctx, newTestCard(t, uuid.NewUUID(), "tres", "three")))

	cards, err := repo.FindByDeck(ctx, deckID)

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "uno", cards[0].OriginalWord())
	assert.Equal(t, "dos", cards[1].OriginalWord())
}

func TestMongoCardRepository_FindByDeck_Empty(t *testing.T) {
	repo := setupCardRepository(t)

	cards, err := repo.FindByDeck(context.Background(), uuid.NewUUID())

	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestMongoCardRepository_Search(t *testing.T) {
	// The text index covers both the original and the translated word,
	// scoped to one deck.
	repo := setupCardRepository(t)
	ctx := context.Background()
	deckID := uuid.NewUUID()

	require.NoError(t, repo.Save(ctx, newTestCard(t, deckID, "perro", "dog")))
	require.NoError(t, repo.Save(ctx, newTestCard(t, deckID, "gato", "cat")))
	require.NoError(t, repo.Save(ctx, newTestCard(t, uuid.NewUUID(), "perro", "dog")))

	byOriginal, err := repo.Search(ctx, cardapp.SearchFilter{DeckID: deckID, Term: "perro"})
	require.NoError(t, err)
	require.Len(t, byOriginal, 1)
	assert.Equal(t, "dog", byOriginal[0].TranslatedWord())

	byTranslation, err := repo.Search(ctx, cardapp.SearchFilter{DeckID: deckID, Term: "cat"})
	require.NoError(t, err)
	require.Len(t, byTranslation, 1)
	assert.Equal(t, "gato", byTranslation[0].OriginalWord())
}

func TestMongoCardRepository_SaveIsUpsert(t *testing.T) {
	repo := setupCardRepository(t)
	ctx := context.Background()
	c := newTestCard(t, uuid.NewUUID(), "casa", "hose")
	require.NoError(t, repo.Save(ctx, c))

	fixed, err := c.WithContent("casa", "house", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fixed))

	loaded, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "house", loaded.TranslatedWord())
}

func TestMongoCardRepository_Delete(t *testing.T) {
	repo := setupCardRepository(t)
	ctx := context.Background()
	c := newTestCard(t, uuid.NewUUID(), "adios", "goodbye")
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID()))

	_, err := repo.FindByID(ctx, c.ID())
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID()), errs.ErrNotFound)
}

func TestMongoCardRepository_DeleteByDeck(t *testing.T) {
	// The cascade used by deck deletion removes every card of the deck
	// and leaves other decks alone.
	repo := setupCardRepository(t)
	ctx := context.Background()
	deckID := uuid.NewUUID()
	otherDeckID := uuid.NewUUID()

	require.NoError(t, repo.Save(ctx, newTestCard(t, deckID, "uno", "one")))
	require.NoError(t, repo.Save(ctx, newTestCard(t, deckID, "dos", "two")))
	require.NoError(t, repo.Save(ctx, newTestCard(t, otherDeckID, "tres", "three")))

	require.NoError(t, repo.DeleteByDeck(ctx, deckID))

	gone, err := repo.FindByDeck(ctx, deckID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := repo.FindByDeck(ctx, otherDeckID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestMongoCardRepository_DeleteByDeck_EmptyDeck(t *testing.T) {
	// Removing zero cards is not an error.
	repo := setupCardRepository(t)

	assert.NoError(t, repo.DeleteByDeck(context.Background(), uuid.NewUUID()))
}

func TestMongoCardRepository_InputValidation(t *testing.T) {
	repo := setupCardRepository(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.UUID(""))
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = repo.Search(ctx, cardapp.SearchFilter{Term: "perro"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	assert.ErrorIs(t, repo.Save(ctx, nil), errs.ErrInvalidInput)
	assert.ErrorIs(t, repo.DeleteByDeck(ctx, uuid.UUID("")), errs.ErrInvalidInput)
}
