package deck

import (
	"context"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

const defaultPublicDecksLimit = 50

// ListUserDecksUseCase lists all decks owned by the user.
type ListUserDecksUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewListUserDecksUseCase creates a ListUserDecksUseCase.
func NewListUserDecksUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *ListUserDecksUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListUserDecksUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute lists the user's decks.
func (uc *ListUserDecksUseCase) Execute(ctx context.Context, query ListUserDecksQuery) appcore.Result[[]View] {
	if err := appcore.ValidateUUID("userId", query.UserID); err != nil {
		return appcore.ValidationFailure[[]View](err)
	}

	decks, err := uc.decks.FindByOwner(ctx, query.UserID)
	if err != nil {
		return fault[[]View](ctx, uc.logger, uc.localizer, "list user decks", err)
	}

	return appcore.Success(NewViews(decks))
}

// ListPublicDecksUseCase lists public decks for browsing.
type ListPublicDecksUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewListPublicDecksUseCase creates a ListPublicDecksUseCase.
func NewListPublicDecksUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *ListPublicDecksUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListPublicDecksUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute lists public decks.
func (uc *ListPublicDecksUseCase) Execute(ctx context.Context, query ListPublicDecksQuery) appcore.Result[[]View] {
	limit := query.Limit
	if limit <= 0 || limit > defaultPublicDecksLimit {
		limit = defaultPublicDecksLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	decks, err := uc.decks.FindPublic(ctx, PublicDecksFilter{
		Language: query.Language,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return fault[[]View](ctx, uc.logger, uc.localizer, "list public decks", err)
	}

	return appcore.Success(NewViews(decks))
}
