package service

import (
	"context"
	"log/slog"
	"strings"
)

// TextSource fetches the raw localization text map from its origin.
// Declared on the consumer side per project guidelines.
type TextSource interface {
	FetchTexts(ctx context.Context) (map[string]string, error)
}

// TextCache stores a fetched text map between requests.
type TextCache interface {
	Get(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, texts map[string]string) error
}

// LocalizationService resolves text IDs to user-facing messages. Texts are
// fetched from the source and cached; a missing text falls back to the ID
// itself so a stale catalog never breaks a response.
type LocalizationService struct {
	source TextSource
	cache  TextCache
	logger *slog.Logger
}

// NewLocalizationService creates a LocalizationService.
func NewLocalizationService(source TextSource, cache TextCache, logger *slog.Logger) *LocalizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalizationService{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// TextByID returns the message for the ID with {param} placeholders
// substituted. Unknown IDs resolve to the ID itself.
func (s *LocalizationService) TextByID(ctx context.Context, id string, params map[string]string) string {
	texts, err := s.Texts(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "localization texts unavailable",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return id
	}

	text, ok := texts[id]
	if !ok {
		return id
	}

	for key, value := range params {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	return text
}

// Texts returns the full text map, serving from cache when possible.
func (s *LocalizationService) Texts(ctx context.Context) (map[string]string, error) {
	if cached, err := s.cache.Get(ctx); err == nil && len(cached) > 0 {
		return cached, nil
	}

	texts, err := s.source.FetchTexts(ctx)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, texts); cacheErr != nil {
		s.logger.WarnContext(ctx, "failed to cache localization texts",
			slog.String("error", cacheErr.Error()),
		)
	}

	return texts, nil
}
