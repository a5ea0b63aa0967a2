package httphandler_test

import (
	"context"
	stdhttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	cardapp "github.com/whiteakyloff/metis-back-v2/internal/application/card"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	httphandler "github.com/whiteakyloff/metis-back-v2/internal/handler/http"
)

type cardCreatorStub struct {
	result appcore.Result[cardapp.View]
	got    *cardapp.CreateCardCommand
}

func (s *cardCreatorStub) Execute(_ context.Context, cmd cardapp.CreateCardCommand) appcore.Result[cardapp.View] {
	s.got = &cmd
	return s.result
}

type cardSearcherStub struct {
	result appcore.Result[[]cardapp.View]
	got    *cardapp.SearchCardsQuery
}

func (s *cardSearcherStub) Execute(_ context.Context, query cardapp.SearchCardsQuery) appcore.Result[[]cardapp.View] {
	s.got = &query
	return s.result
}

func TestCardHandler_Create(t *testing.T) {
	t.Run("successful create", func(t *testing.T) {
		// Arrange
		userID := uuid.NewUUID()
		deckID := uuid.NewUUID()
		stub := &cardCreatorStub{result: appcore.Success(cardapp.View{OriginalWord: "dog"})}
		handler := httphandler.NewCardHandler(httphandler.CardHandlerConfig{Create: stub})

		c, rec := authedContext(t, stdhttp.MethodPost, "/api/v1/decks/"+deckID.String()+"/cards",
			`{"originalWord": "dog", "translatedWord": "perro", "transcription": "ˈpero", "note": "common pet"}`,
			userID)
		c.SetParamNames("id")
		c.SetParamValues(deckID.String())

		// Act
		err := handler.Create(c)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusCreated, rec.Code)

		require.NotNil(t, stub.got)
		assert.Equal(t, deckID, stub.got.DeckID)
		assert.Equal(t, userID, stub.got.UserID)
		assert.Equal(t, "dog", stub.got.OriginalWord)
		assert.Equal(t, "perro", stub.got.TranslatedWord)
		require.NotNil(t, stub.got.Note)
		assert.Equal(t, "common pet", *stub.got.Note)
	})

	t.Run("foreign deck maps to forbidden", func(t *testing.T) {
		deckID := uuid.NewUUID()
		stub := &cardCreatorStub{
			result: appcore.Failure[cardapp.View](appcore.CodeNotAuthorized, "Not authorized"),
		}
		handler := httphandler.NewCardHandler(httphandler.CardHandlerConfig{Create: stub})

		c, rec := authedContext(t, stdhttp.MethodPost, "/api/v1/decks/"+deckID.String()+"/cards",
			`{"originalWord": "dog", "translatedWord": "perro"}`, uuid.NewUUID())
		c.SetParamNames("id")
		c.SetParamValues(deckID.String())

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	})

	t.Run("invalid deck id", func(t *testing.T) {
		handler := httphandler.NewCardHandler(httphandler.CardHandlerConfig{Create: &cardCreatorStub{}})

		c, rec := authedContext(t, stdhttp.MethodPost, "/api/v1/decks/nope/cards",
			`{"originalWord": "dog"}`, uuid.NewUUID())
		c.SetParamNames("id")
		c.SetParamValues("nope")

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})
}

func TestCardHandler_Search(t *testing.T) {
	// Arrange
	userID := uuid.NewUUID()
	deckID := uuid.NewUUID()
	stub := &cardSearcherStub{result: appcore.Success([]cardapp.View{})}
	handler := httphandler.NewCardHandler(httphandler.CardHandlerConfig{Search: stub})

	c, rec := authedContext(t, stdhttp.MethodGet,
		"/api/v1/decks/"+deckID.String()+"/cards/search?query=dog", "", userID)
	c.SetParamNames("id")
	c.SetParamValues(deckID.String())

	// Act
	err := handler.Search(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	require.NotNil(t, stub.got)
	assert.Equal(t, deckID, stub.got.DeckID)
	assert.Equal(t, "dog", stub.got.Term)
}
