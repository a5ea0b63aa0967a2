package card

import (
	"context"
	"log/slog"
	"strings"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

// ListUseCase lists all cards in a deck the user may see.
type ListUseCase struct {
	cards     Repository
	decks     DeckReader
	localizer Localizer
	logger    *slog.Logger
}

// NewListUseCase creates a ListUseCase.
func NewListUseCase(cards Repository, decks DeckReader, localizer Localizer, logger *slog.Logger) *ListUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListUseCase{cards: cards, decks: decks, localizer: localizer, logger: logger}
}

// Execute lists the deck's cards.
func (uc *ListUseCase) Execute(ctx context.Context, query ListDeckCardsQuery) appcore.Result[[]View] {
	if err := appcore.ValidateUUID("deckId", query.DeckID); err != nil {
		return appcore.ValidationFailure[[]View](err)
	}

	d, failed := resolveDeck[[]View](ctx, uc.decks, uc.logger, uc.localizer, "list cards", query.DeckID)
	if failed != nil {
		return *failed
	}
	if !d.AccessibleBy(query.UserID) {
		return failure[[]View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	cards, err := uc.cards.FindByDeck(ctx, query.DeckID)
	if err != nil {
		return fault[[]View](ctx, uc.logger, uc.localizer, "list cards", err)
	}

	return appcore.Success(NewViews(cards))
}

// SearchUseCase finds cards in a deck by original or translated word.
type SearchUseCase struct {
	cards     Repository
	decks     DeckReader
	localizer Localizer
	logger    *slog.Logger
}

// NewSearchUseCase creates a SearchUseCase.
func NewSearchUseCase(cards Repository, decks DeckReader, localizer Localizer, logger *slog.Logger) *SearchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchUseCase{cards: cards, decks: decks, localizer: localizer, logger: logger}
}

// Execute searches the deck's cards.
func (uc *SearchUseCase) Execute(ctx context.Context, query SearchCardsQuery) appcore.Result[[]View] {
	if err := appcore.ValidateUUID("deckId", query.DeckID); err != nil {
		return appcore.ValidationFailure[[]View](err)
	}
	term := strings.TrimSpace(query.Term)
	if err := appcore.ValidateRequired("term", term); err != nil {
		return appcore.ValidationFailure[[]View](err)
	}

	d, failed := resolveDeck[[]View](ctx, uc.decks, uc.logger, uc.localizer, "search cards", query.DeckID)
	if failed != nil {
		return *failed
	}
	if !d.AccessibleBy(query.UserID) {
		return failure[[]View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	cards, err := uc.cards.Search(ctx, SearchFilter{DeckID: query.DeckID, Term: term})
	if err != nil {
		return fault[[]View](ctx, uc.logger, uc.localizer, "search cards", err)
	}

	return appcore.Success(NewViews(cards))
}
