package card

import (
	"context"
	"errors"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	domaindeck "github.com/whiteakyloff/metis-back-v2/internal/domain/deck"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
	"github.com/whiteakyloff/metis-back-v2/internal/domain/uuid"
)

// failure resolves a failure code to a localized result.
// Package-level because Go methods cannot carry type parameters.
func failure[T any](ctx context.Context, localizer Localizer, code string) appcore.Result[T] {
	return appcore.Failure[T](code, localizer.TextByID(ctx, code, nil))
}

// fault logs an unexpected repository error and reports the generic card
// failure code.
func fault[T any](ctx context.Context, logger *slog.Logger, localizer Localizer, operation string, err error) appcore.Result[T] {
	logger.ErrorContext(ctx, "card operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return failure[T](ctx, localizer, appcore.CodeCardFailed)
}

// resolveDeck loads the deck a card operation targets. A missing deck and an
// unexpected fault map to different failure codes, so callers get a single
// error path.
func resolveDeck[T any](
	ctx context.Context,
	decks DeckReader,
	logger *slog.Logger,
	localizer Localizer,
	operation string,
	deckID uuid.UUID,
) (*domaindeck.Deck, *appcore.Result[T]) {
	d, err := decks.FindByID(ctx, deckID)
	if err != nil {
		var res appcore.Result[T]
		if errors.Is(err, errs.ErrNotFound) {
			res = failure[T](ctx, localizer, appcore.CodeDeckNotFound)
		} else {
			res = fault[T](ctx, logger, localizer, operation, err)
		}
		return nil, &res
	}
	return d, nil
}
