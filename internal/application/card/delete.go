package card

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// DeleteUseCase removes a card. Only the deck owner may delete its cards.
type DeleteUseCase struct {
	cards     Repository
	decks     DeckReader
	localizer Localizer
	logger    *slog.Logger
}

// NewDeleteUseCase creates a DeleteUseCase.
func NewDeleteUseCase(cards Repository, decks DeckReader, localizer Localizer, logger *slog.Logger) *DeleteUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteUseCase{cards: cards, decks: decks, localizer: localizer, logger: logger}
}

// Execute deletes the card.
func (uc *DeleteUseCase) Execute(ctx context.Context, cmd DeleteCardCommand) appcore.Result[struct{}] {
	if err := appcore.ValidateUUID("cardId", cmd.CardID); err != nil {
		return appcore.ValidationFailure[struct{}](err)
	}

	c, err := uc.cards.FindByID(ctx, cmd.CardID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[struct{}](ctx, uc.localizer, appcore.CodeCardNotFound)
		}
		return fault[struct{}](ctx, uc.logger, uc.localizer, "delete card", err)
	}

	d, failed := resolveDeck[struct{}](ctx, uc.decks, uc.logger, uc.localizer, "delete card", c.DeckID())
	if failed != nil {
		return *failed
	}
	if !d.IsOwnedBy(cmd.UserID) {
		return failure[struct{}](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	if err := uc.cards.Delete(ctx, cmd.CardID); err != nil {
		return fault[struct{}](ctx, uc.logger, uc.localizer, "delete card", err)
	}

	return appcore.Success(struct{}{})
}
