package deck

import (
	"context"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	domaindeck "github.com/whiteakyloff/metis-back-v2/internal/domain/deck"
)

// CreateUseCase creates a new deck. Decks start private unless the command
// asks for a public one.
type CreateUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewCreateUseCase creates a CreateUseCase.
func NewCreateUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *CreateUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute creates the deck.
func (uc *CreateUseCase) Execute(ctx context.Context, cmd CreateDeckCommand) appcore.Result[View] {
	if err := appcore.ValidateUUID("ownerId", cmd.OwnerID); err != nil {
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

	d, err := domaindeck.NewDeck(cmd.Name, cmd.Language, cmd.OwnerID)
	if err != nil {
		return appcore.Failure[View](appcore.CodeInvalidInput, err.Error())
	}
	if cmd.IsPublic {
		d = d.WithVisibility(true)
	}

	if err := uc.decks.Save(ctx, d); err != nil {
		return fault[View](ctx, uc.logger, uc.localizer, "create deck", err)
	}

	return appcore.Success(NewView(d))
}
