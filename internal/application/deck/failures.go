package deck

import (
	"context"
	"log/slog"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

// failure resolves a failure code to a localized result.
// Package-level because Go methods cannot carry type parameters.
func failure[T any](ctx context.Context, localizer Localizer, code string) appcore.Result[T] {
	return appcore.Failure[T](code, localizer.TextByID(ctx, code, nil))
}

// fault logs an unexpected repository error and reports the generic deck
// failure code.
func fault[T any](ctx context.Context, logger *slog.Logger, localizer Localizer, operation string, err error) appcore.Result[T] {
	logger.ErrorContext(ctx, "deck operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return failure[T](ctx, localizer, appcore.CodeDeckFailed)
}
