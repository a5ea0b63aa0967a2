package deck

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// ToggleFavouriteUseCase flips the favourite flag on a deck for its owner.
type ToggleFavouriteUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewToggleFavouriteUseCase creates a ToggleFavouriteUseCase.
func NewToggleFavouriteUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *ToggleFavouriteUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToggleFavouriteUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute toggles the favourite flag.
func (uc *ToggleFavouriteUseCase) Execute(ctx context.Context, cmd ToggleFavouriteCommand) appcore.Result[View] {
	if err := appcore.ValidateUUID("deckId", cmd.DeckID); err != nil {
		return appcore.ValidationFailure[View](err)
	}

	d, err := uc.decks.FindByID(ctx, cmd.DeckID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[View](ctx, uc.localizer, appcore.CodeDeckNotFound)
		}
		return fault[View](ctx, uc.logger, uc.localizer, "toggle favourite", err)
	}

	if !d.IsOwnedBy(cmd.UserID) {
		return failure[View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	updated := d.WithFavourite(!d.Favourite())
	if err := uc.decks.Save(ctx, updated); err != nil {
		return fault[View](ctx, uc.logger, uc.localizer, "toggle favourite", err)
	}

	return appcore.Success(NewView(updated))
}
