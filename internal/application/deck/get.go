package deck

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// GetUseCase fetches one deck the user may see. Private decks are visible to
// their owner only.
type GetUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewGetUseCase creates a GetUseCase.
func NewGetUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *GetUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute fetches the deck.
func (uc *GetUseCase) Execute(ctx context.Context, query GetDeckQuery) appcore.Result[View] {
	if err := appcore.ValidateUUID("deckId", query.DeckID); err != nil {
		return appcore.ValidationFailure[View](err)
	}

	d, err := uc.decks.FindByID(ctx, query.DeckID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failure[View](ctx, uc.localizer, appcore.CodeDeckNotFound)
		}
		return fault[View](ctx, uc.logger, uc.localizer, "get deck", err)
	}

	if !d.AccessibleBy(query.UserID) {
		return failure[View](ctx, uc.localizer, appcore.CodeNotAuthorized)
	}

	return appcore.Success(NewView(d))
}
