package deck

import (
	"context"
	"log/slog"
	"strings"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

// SearchUseCase finds decks by name among those visible to the user.
type SearchUseCase struct {
	decks     Repository
	localizer Localizer
	logger    *slog.Logger
}

// NewSearchUseCase creates a SearchUseCase.
func NewSearchUseCase(decks Repository, localizer Localizer, logger *slog.Logger) *SearchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchUseCase{decks: decks, localizer: localizer, logger: logger}
}

// Execute searches visible decks.
func (uc *SearchUseCase) Execute(ctx context.Context, query SearchDecksQuery) appcore.Result[[]View] {
	if err := appcore.ValidateUUID("userId", query.UserID); err != nil {
		return appcore.ValidationFailure[[]View](err)
	}
	term := strings.TrimSpace(query.Term)
	if err := appcore.ValidateRequired("term", term); err != nil {
		return appcore.ValidationFailure[[]View](err)
	}

	decks, err := uc.decks.Search(ctx, SearchFilter{UserID: query.UserID, Term: term})
	if err != nil {
		return fault[[]View](ctx, uc.logger, uc.localizer, "search decks", err)
	}

	return appcore.Success(NewViews(decks))
}
