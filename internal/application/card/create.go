package card

import (
	"context"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	domaincard "github.com/whiteakyloff/metis-back-v2/internal/domain/card"
)

// CreateUseCase adds a card to a deck. Only the deck owner may add cards.
type CreateUseCase struct {
	cards     Repository
	decks     DeckReader
	localizer Localizer
	logger    *slog.Logger
}

// NewCreateUseCase creates a CreateUseCase.
func NewCreateUseCase(cards Repository, decks DeckReader, localizer Localizer, logger *slog.Logger) *CreateUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateUseCase{cards: cards, decks: decks, localizer: localizer, logger: logger}
}

// Execute creates the card.
func (uc *CreateUseCase) Execute(ctx context.Context, cmd CreateCardCommand) appcore.Result[View] {
	if err := appcore.ValidateUUID("deckId", cmd.DeckID); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateRequired("originalWord", cmd.OriginalWord); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateRequired("translatedWord", cmd.TranslatedWord); err != nil {
		return appcore.ValidationFailure[View](err)
	}

	d, failed := resolveDeck[View](ctx, uc.decks, uc.logger, uc.localizer, "create card", cmd.DeckID)
	if failed != nil {
		return *failed
	}
	if !d.IsOwnedBy(cmd.UserID) {
		return failure[View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	c, err := domaincard.NewCard(cmd.DeckID, cmd.OriginalWord, cmd.TranslatedWord, cmd.Transcription, cmd.Note)
	if err != nil {
		return appcore.Failure[View](appcore.CodeInvalidInput, err.Error())
	}

	if err := uc.cards.Save(ctx, c); err != nil {
		return fault[View](ctx, uc.logger, uc.localizer, "create card", err)
	}

	return appcore.Success(NewView(c))
}
