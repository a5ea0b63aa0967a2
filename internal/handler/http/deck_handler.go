package httphandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	deckapp "github.com/whiteakyloff/metis-back-v2/internal/application/deck"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/httpserver"
	"github.com/whiteakyloff/metis-back-v2/internal/middleware"
)

// DeckRequest represents the request to create or update a deck.
type DeckRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	IsPublic bool   `json:"isPublic"`
}

// Deck use case interfaces.
// Declared on the consumer side per project guidelines.
type (
	DeckCreator interface {
		Execute(ctx context.Context, cmd deckapp.CreateDeckCommand) appcore.Result[deckapp.View]
	}

	DeckGetter interface {
		Execute(ctx context.Context, query deckapp.GetDeckQuery) appcore.Result[deckapp.View]
	}

	DeckUpdater interface {
		Execute(ctx context.Context, cmd deckapp.UpdateDeckCommand) appcore.Result[deckapp.View]
	}

	DeckDeleter interface {
		Execute(ctx context.Context, cmd deckapp.DeleteDeckCommand) appcore.Result[struct{}]
	}

	FavouriteToggler interface {
		Execute(ctx context.Context, cmd deckapp.ToggleFavouriteCommand) appcore.Result[deckapp.View]
	}

	UserDeckLister interface {
		Execute(ctx context.Context, query deckapp.ListUserDecksQuery) appcore.Result[[]deckapp.View]
	}

	PublicDeckLister interface {
		Execute(ctx context.Context, query deckapp.ListPublicDecksQuery) appcore.Result[[]deckapp.View]
	}

	DeckSearcher interface {
		Execute(ctx context.Context, query deckapp.SearchDecksQuery) appcore.Result[[]deckapp.View]
	}
)

// DeckHandler handles deck HTTP requests.
type DeckHandler struct {
	create    DeckCreator
	get       DeckGetter
	update    DeckUpdater
	delete    DeckDeleter
	favourite FavouriteToggler
	listOwn   UserDeckLister
	listPub   PublicDeckLister
	search    DeckSearcher
}

// DeckHandlerConfig holds the dependencies of DeckHandler.
type DeckHandlerConfig struct {
	Create    DeckCreator
	Get       DeckGetter
	Update    DeckUpdater
	Delete    DeckDeleter
	Favourite FavouriteToggler
	ListOwn   UserDeckLister
	ListPub   PublicDeckLister
	Search    DeckSearcher
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(cfg DeckHandlerConfig) *DeckHandler {
	return &DeckHandler{
		create:    cfg.Create,
		get:       cfg.Get,
		update:    cfg.Update,
		delete:    cfg.Delete,
		favourite: cfg.Favourite,
		listOwn:   cfg.ListOwn,
		listPub:   cfg.ListPub,
		search:    cfg.Search,
	}
}

// RegisterRoutes registers deck routes on the group.
func (h *DeckHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/decks", h.Create)
	g.GET("/decks", h.List)
	g.GET("/decks/public", h.ListPublic)
	g.GET("/decks/search", h.Search)
	g.GET("/decks/:id", h.Get)
	g.PUT("/decks/:id", h.Update)
	g.DELETE("/decks/:id", h.Delete)
	g.PUT("/decks/:id/favourite", h.ToggleFavourite)
}

// Create handles POST /api/v1/decks.
func (h *DeckHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	var req DeckRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	result := h.create.Execute(c.Request().Context(), deckapp.CreateDeckCommand{
		OwnerID:  userID,
		Name:     req.Name,
		Language: req.Language,
		IsPublic: req.IsPublic,
	})
	return httpserver.RespondResult(c, result, http.StatusCreated)
}

// Get handles GET /api/v1/decks/:id.
func (h *DeckHandler) Get(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	result := h.get.Execute(c.Request().Context(), deckapp.GetDeckQuery{
		DeckID: deckID,
		UserID: userID,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// Update handles PUT /api/v1/decks/:id.
func (h *DeckHandler) Update(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	var req DeckRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return respondBadRequest(c)
	}

	result := h.update.Execute(c.Request().Context(), deckapp.UpdateDeckCommand{
		DeckID:   deckID,
		UserID:   userID,
		Name:     req.Name,
		Language: req.Language,
		IsPublic: req.IsPublic,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// Delete handles DELETE /api/v1/decks/:id.
func (h *DeckHandler) Delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	result := h.delete.Execute(c.Request().Context(), deckapp.DeleteDeckCommand{
		DeckID: deckID,
		UserID: userID,
	})
	if result.IsFailure() {
		return httpserver.RespondFailure(c, result.Code(), result.Message())
	}
	return httpserver.RespondNoContent(c)
}

// ToggleFavourite handles PUT /api/v1/decks/:id/favourite.
func (h *DeckHandler) ToggleFavourite(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	deckID, err := uuid.ParseUUID(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "deck")
	}

	result := h.favourite.Execute(c.Request().Context(), deckapp.ToggleFavouriteCommand{
		DeckID: deckID,
		UserID: userID,
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// List handles GET /api/v1/decks.
func (h *DeckHandler) List(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	result := h.listOwn.Execute(c.Request().Context(), deckapp.ListUserDecksQuery{UserID: userID})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// ListPublic handles GET /api/v1/decks/public.
func (h *DeckHandler) ListPublic(c echo.Context) error {
	query := deckapp.ListPublicDecksQuery{
		Language: c.QueryParam("language"),
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		query.Limit = limit
	}
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		query.Offset = offset
	}

	result := h.listPub.Execute(c.Request().Context(), query)
	return httpserver.RespondResult(c, result, http.StatusOK)
}

// Search handles GET /api/v1/decks/search?query=...
func (h *DeckHandler) Search(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	result := h.search.Execute(c.Request().Context(), deckapp.SearchDecksQuery{
		UserID: userID,
		Term:   c.QueryParam("query"),
	})
	return httpserver.RespondResult(c, result, http.StatusOK)
}

func respondUnauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, httpserver.Response{
		Success: false,
		Error: &httpserver.Error{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		},
	})
}

func respondInvalidID(c echo.Context, resource string) error {
	return httpserver.RespondFailure(c, appcore.CodeInvalidInput, "Invalid "+resource+" ID")
}
