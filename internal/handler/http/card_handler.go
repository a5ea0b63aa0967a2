package httphandler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	cardapp "github.com/whiteakyloff/metis-back-v2/internal/application/card"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/httpserver"
	"github.com/whiteakyloff/metis-back-v2/internal/middleware"
)

// CardRequest represents the request to create or update a card.
type CardRequest struct {
	OriginalWord   string  `json:"originalWord"`
	TranslatedWord string  `json:"translatedWord"`
	Transcription  string  `json:"transcription"`
	Note           *string `json:"note"`
}

// Card use case interfaces.
// Declared on the consumer side per project guidelines.
type (
	CardCreator interface {
		Execute(ctx context.Context, cmd cardapp.CreateCardCommand) appcore.Result[cardapp.View]
	}

	CardGetter interface {
		Execute(ctx context.Context, query cardapp.GetCardQuery) appcore.Result[cardapp.View]
	}

	CardUpdater interface {
		Execute(ctx context.Context, cmd cardapp.UpdateCardCommand) appcore.Result[cardapp.View]
	}

	CardDeleter interface {
		Execute(ctx context.Context, cmd cardapp.DeleteCardCommand) appcore.Result[struct{}]
	}

	DeckCardLister interface {
		Execute(ctx context.Context, query cardapp.ListDeckCardsQuery) appcore.Result[[]cardapp.View]
	}

	CardSearcher interface {
		Execute(ctx context.Context, query cardapp.SearchCardsQuery) appcore.Result[[]cardapp.View]
	}
)

// CardHandler handles card HTTP requests.
type CardHandler struct {
	create CardCreator
	get    CardGetter
	update CardUpdater
	delete CardDeleter
	list   DeckCardLister
	search CardSearcher
}

// CardHandlerConfig holds the dependencies of CardHandler.
type CardHandlerConfig struct {
	Create CardCreator
	Get    CardGetter
	Update CardUpdater
	Delete CardDeleter
	List   DeckCardLister
	Search CardSearcher
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cfg CardHandlerConfig) *CardHandler {
	return &CardHandler{
		create: cfg.Create,
		get:    cfg.Get,
		update: cfg.Update,
		delete: cfg.Delete,
		list:   cfg.List,
		search: cfg.Search,
	}
}

// RegisterRoutes registers card routes on the group.
func (h *CardHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/decks/:id/cards", h.Create)
	g.GET("/decks/:id/cards", h.List)
	g.GET("/decks/:id/cards/search", h.Search)
	g.GET("/cards/:id", h.Get)
	g.PUT("/cards/:id", h.Update)
	g.DELETE("/cards/:id", h.Delete)
}

// Create handles POST /api/v1/decks/:id/cards.
func (h *CardHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	var req CardRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return respondBadRequest(c)
	}

	result := h.create.Execute(c.Request().Context(), cardapp.CreateCardCommand{
		DeckID:         deckID,
		UserID:         userID,
		OriginalWord:   req.OriginalWord,
		TranslatedWord: req.TranslatedWord,
		Transcription:  req.Transcription,
		Note:           req.Note,
	})
	return httpserver.RespondResult(c, result, http.StatusCreated)
}

// Get handles GET /api/v1/cards/:id.
func (h *CardHandler) Get(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	cardID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "card")
	}

	result := h.get.Execute(c.Request().Context(), cardapp.GetCardQuery{
		CardID: cardID,
		UserID: userID,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// Update handles PUT /api/v1/cards/:id.
func (h *CardHandler) Update(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	cardID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "card")
	}

	var req CardRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return respondBadRequest(c)
	}

	result := h.update.Execute(c.Request().Context(), cardapp.UpdateCardCommand{
		CardID:         cardID,
		UserID:         userID,
		OriginalWord:   req.OriginalWord,
		TranslatedWord: req.TranslatedWord,
		Transcription:  req.Transcription,
		Note:           req.Note,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// Delete handles DELETE /api/v1/cards/:id.
func (h *CardHandler) Delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	cardID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "card")
	}

	result := h.delete.Execute(c.Request().Context(), cardapp.DeleteCardCommand{
		CardID: cardID,
		UserID: userID,
	})
	if result.IsFailure() {
		return httpserver.RespondFailure(c, result.Code(), result.Message())
	}
	return httpserver.RespondNoContent(c)
}

// List handles GET /api/v1/decks/:id/cards.
func (h *CardHandler) List(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	result := h.list.Execute(c.Request().Context(), cardapp.ListDeckCardsQuery{
		DeckID: deckID,
		UserID: userID,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// Search handles GET /api/v1/decks/:id/cards/search?query=...
func (h *CardHandler) Search(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	result := h.search.Execute(c.Request().Context(), cardapp.SearchCardsQuery{
		DeckID: deckID,
		UserID: userID,
		Term:   c.QueryParam("query"),
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}
