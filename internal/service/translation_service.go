package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
)

// TranslationClient is a single AI translation backend.
type TranslationClient interface {
	Name() string
	Translate(ctx context.Context, word, targetLanguage string) (string, error)
}

// TranslationClients looks up translation backends by name.
type TranslationClients interface {
	Translation(name string) (TranslationClient, bool)
}

// Translation is a structured translation of a single word.
type Translation struct {
	Word          string `json:"word"`
	Translated    string `json:"translated"`
	Transcription string `json:"transcription"`
}

// TranslationService routes word translations to a named AI client and
// parses the "word: transcription" reply shape the clients are prompted for.
type TranslationService struct {
	clients   TranslationClients
	localizer Localizer
	logger    *slog.Logger
}

// NewTranslationService creates a TranslationService.
func NewTranslationService(clients TranslationClients, localizer Localizer, logger *slog.Logger) *TranslationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslationService{
		clients:   clients,
		localizer: localizer,
		logger:    logger,
	}
}

// Translate translates a word into the target language using the named client.
func (s *TranslationService) Translate(
	ctx context.Context,
	clientName, word, targetLanguage string,
) appcore.Result[Translation] {
	client, ok := s.clients.Translation(clientName)
	if !ok {
		code := appcore.CodeTranslationClientNotFound
		return appcore.Failure[Translation](code, s.localizer.TextByID(ctx, code, nil))
	}

	reply, err := client.Translate(ctx, word, targetLanguage)
	if err != nil {
		s.logger.ErrorContext(ctx, "translation request failed",
			slog.String("client", client.Name()),
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		code := appcore.CodeTranslationFailed
		return appcore.Failure[Translation](code, s.localizer.TextByID(ctx, code, nil))
	}

	translated, transcription := parseTranslationReply(reply)
	if translated == "" {
		s.logger.WarnContext(ctx, "unparseable translation reply",
			slog.String("client", client.Name()),
			slog.String("reply", reply),
		)
		code := appcore.CodeTranslationFailed
		return appcore.Failure[Translation](code, s.localizer.TextByID(ctx, code, nil))
	}

	return appcore.Success(Translation{
		Word:          word,
		Translated:    translated,
		Transcription: transcription,
	})
}

// parseTranslationReply splits the "word: transcription" reply shape.
// The transcription part is optional.
func parseTranslationReply(reply string) (translated, transcription string) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ""
	}

	parts := strings.SplitN(reply, ":", 2)
	translated = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		transcription = strings.TrimSpace(parts[1])
	}
	return translated, transcription
}

// String renders the translation for logs.
func (t Translation) String() string {
	if t.Transcription == "" {
		return t.Translated
	}
	return t.Translated + " [" + t.Transcription + "]"
}
