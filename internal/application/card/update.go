package card

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// UpdateUseCase changes a card's content. Only the deck owner may update its
// cards.
type UpdateUseCase struct {
	cards     Repository
	decks     DeckReader
	localizer Localizer
	logger    *slog.Logger
}

// NewUpdateUseCase creates an UpdateUseCase.
func NewUpdateUseCase(cards Repository, decks DeckReader, localizer Localizer, logger *slog.Logger) *UpdateUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateUseCase{cards: cards, decks: decks, localizer: localizer, logger: logger}
}

// Execute updates the card.
func (uc *UpdateUseCase) Execute(ctx context.Context, cmd UpdateCardCommand) appcore.Result[View] {
	if err := appcore.ValidateUUID("cardId", cmd.CardID); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateRequired("originalWord", cmd.OriginalWord); err != nil {
		return appcore.ValidationFailure[View](err)
	}
	if err := appcore.ValidateRequired("translatedWord", cmd.TranslatedWord); err != nil {
		return appcore.ValidationFailure[View](err)
	}

	c, err := uc.cards.FindByID(ctx, cmd.CardID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[View](ctx, uc.localizer, appcore.CodeCardNotFound)
		}
		return fault[View](ctx, uc.logger, uc.localizer, "update card", err)
	}

	d, failed := resolveDeck[View](ctx, uc.decks, uc.logger, uc.localizer, "update card", c.DeckID())
	if failed != nil {
		return *failed
	}
	if !d.IsOwnedBy(cmd.UserID) {
		return failure[View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	updated, err := c.WithContent(cmd.OriginalWord, cmd.TranslatedWord, cmd.Transcription)
	if err != nil {
		return appcore.Failure[View](appcore.CodeInvalidInput, err.Error())
	}
	updated = updated.WithNote(cmd.Note)

	if err := uc.cards.Save(ctx, updated); err != nil {
		return fault[View](ctx, uc.logger, uc.localizer, "update card", err)
	}

	return appcore.Success(NewView(updated))
}
