package deck

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// DeleteUseCase removes a deck and all its cards. Only the owner may delete
// a deck.
type DeleteUseCase struct {
	decks     Repository
	cards     CardRemover
	localizer Localizer
	logger    *slog.Logger
}

// NewDeleteUseCase creates a DeleteUseCase.
func NewDeleteUseCase(decks Repository, cards CardRemover, localizer Localizer, logger *slog.Logger) *DeleteUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteUseCase{decks: decks, cards: cards, localizer: localizer, logger: logger}
}

// Execute deletes the deck and cascades to its cards.
func (uc *DeleteUseCase) Execute(ctx context.Context, cmd DeleteDeckCommand) appcore.Result[struct{}] {
	if err := appcore.ValidateUUID("deckId", cmd.DeckID); err != nil {
		return appcore.ValidationFailure[struct{}](err)
	}

	d, err := uc.decks.FindByID(ctx, cmd.DeckID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[struct{}](ctx, uc.localizer, appcore.CodeDeckNotFound)
		}
		return fault[struct{}](ctx, uc.logger, uc.localizer, "delete deck", err)
	}

	if !d.IsOwnedBy(cmd.UserID) {
		return failure[struct{}](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	// Cards go first so a failure cannot orphan them behind a deleted deck.
	if err := uc.cards.DeleteByDeck(ctx, cmd.DeckID); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return fault[struct{}](ctx, uc.logger, uc.localizer, "delete deck cards", err)
	}

	if err := uc.decks.Delete(ctx, cmd.DeckID); err != nil {
		return fault[struct{}](ctx, uc.logger, uc.localizer, "delete deck", err)
	}

	return appcore.Success(struct{}{})
}
