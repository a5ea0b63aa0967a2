package card

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// GetUseCase fetches one card. Visibility follows the card's deck: the owner
// always, anyone for a public deck.
type GetUseCase struct {
	cards     Repository
	decks     DeckReader
	localizer Localizer
	logger    *slog.Logger
}

// NewGetUseCase creates a GetUseCase.
func NewGetUseCase(cards Repository, decks DeckReader, localizer Localizer, logger *slog.Logger) *GetUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetUseCase{cards: cards, decks: decks, localizer: localizer, logger: logger}
}

// Execute fetches the card.
func (uc *GetUseCase) Execute(ctx context.Context, query GetCardQuery) appcore.Result[View] {
	if err := appcore.ValidateUUID("cardId", query.CardID); err != nil {
		return appcore.ValidationFailure[View](err)
	}

	c, err := uc.cards.FindByID(ctx, query.CardID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[View](ctx, uc.localizer, appcore.CodeCardNotFound)
		}
		return fault[View](ctx, uc.logger, uc.localizer, "get card", err)
	}

	d, failed := resolveDeck[View](ctx, uc.decks, uc.logger, uc.localizer, "get card", c.DeckID())
	if failed != nil {
		return *failed
	}
	if !d.AccessibleBy(query.UserID) {
		return failure[View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	return appcore.Success(NewView(c))
}
