package httphandler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/whiteakyloff/metis-back-v2/internal/application/appcore"
	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/httpserver"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

// TranslateRequest represents the request to translate a word.
type TranslateRequest struct {
	Word     string `json:"word"`
	Language string `json:"language"`
	Client   string `json:"client"`
}

// Utility service interfaces.
// Declared on the consumer side per project guidelines.
type (
	TextCatalog interface {
		Texts(ctx context.Context) (map[string]string, error)
	}

	Translator interface {
		Translate(ctx context.Context, clientName, word, targetLanguage string) appcore.Result[service.Translation]
	}
)

// DefaultTranslationClient is used when the request names no client.
const DefaultTranslationClient = "claude"

// UtilityHandler handles localization and translation HTTP requests.
type UtilityHandler struct {
	texts      TextCatalog
	translator Translator
}

// NewUtilityHandler creates a new UtilityHandler.
func NewUtilityHandler(texts TextCatalog, translator Translator) *UtilityHandler {
	return &UtilityHandler{
		texts:      texts,
		translator: translator,
	}
}

// RegisterRoutes registers utility routes on the group.
func (h *UtilityHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/localization", h.Localization)
	g.POST("/translate", h.Translate)
}

// Localization handles GET /api/v1/localization.
func (h *UtilityHandler) Localization(c echo.Context) error {
	texts, err := h.texts.Texts(c.Request().Context())
	if err != nil {
		return httpserver.RespondFailure(c, appcore.CodeInternal, "Localization texts unavailable")
	}
	return httpserver.RespondOK(c, texts)
}

// Translate handles POST /api/v1/translate.
func (h *UtilityHandler) Translate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c)
	}

	if req.Word == "" || req.Language == "" {
		return httpserver.RespondFailure(c, appcore.CodeInvalidInput, "word and language are required")
	}

	clientName := req.Client
	if clientName == "" {
		clientName = DefaultTranslationClient
	}

	result := h.translator.Translate(c.Request().Context(), clientName, req.Word, req.Language)
	return httpserver.RespondResult(c, result, http.StatusOK)
}
