package deck

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// UpdateUseCase changes a deck's details and visibility. Only the owner may
// update a deck.
type UpdateUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewUpdateUseCase creates an UpdateUseCase.
func NewUpdateUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *UpdateUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute updates the deck.
func (uc *UpdateUseCase) Execute(ctx context.Context, cmd UpdateDeckCommand) appcore.Result[View] {
	if err := appcore.ValidateUUID("deckId", cmd.DeckID); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateRequired("name", cmd.Name); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateMaxLength("name", cmd.Name, appcore.MaxNameLength); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateRequired("language", cmd.Language); err != nil {
		return appcore.ValidationFailure[View](err)
	}

	d, err := uc.decks.FindByID(ctx, cmd.DeckID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[View](ctx, uc.localizer, appcore.CodeDeckNotFound)
		}
		return fault[View](ctx, uc.logger, uc.localizer, "update deck", err)
	}

	if !d.IsOwnedBy(cmd.UserID) {
		return failure[View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	updated, err := d.WithDetails(cmd.Name, cmd.Language)
	if err != nil {
		return appcore.Failure[View](appcore.CodeInvalidInput, err.Error())
	}
	updated = updated.WithVisibility(cmd.IsPublic)

	if err := uc.decks.Save(ctx, updated); err != nil {
		return fault[View](ctx, uc.logger, uc.localizer, "update deck", err)
	}

	return appcore.Success(NewView(updated))
}
