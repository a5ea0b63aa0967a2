package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultClaudeBaseURL = "https://api.anthropic.com"
	defaultClaudeModel   = "claude-3-5-haiku-latest"
	claudeAPIVersion     = "2023-06-01"

	translateRequestTimeout = 30 * time.Second
	translateMaxTokens      = 256
)

// translatePrompt asks for the reply shape the translation service parses.
const translatePrompt = "Translate the word %q into %s. " +
	"Reply with only the translation followed by a colon and the phonetic transcription, " +
	"for example: perro: ˈpero"

// ClaudeClient translates words through the Anthropic messages API.
type ClaudeClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// ClaudeClientConfig contains configuration for ClaudeClient.
type ClaudeClientConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClaudeClient creates a Claude translation client.
func NewClaudeClient(cfg ClaudeClientConfig) *ClaudeClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultClaudeBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultClaudeModel
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: translateRequestTimeout}
	}

	return &ClaudeClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  client,
	}
}

// Name identifies the backend in the client registry.
func (c *ClaudeClient) Name() string { return "claude" }

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate asks the model for a translation of a single word.
func (c *ClaudeClient) Translate(ctx context.Context, word, targetLanguage string) (string, error) {
	payload := claudeRequest{
		Model:     c.model,
		MaxTokens: translateMaxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: fmt.Sprintf(translatePrompt, word, targetLanguage)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode claude request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read claude response: %w", err)
	}

	var parsed claudeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode claude response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("claude returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("claude returned status %d", resp.StatusCode)
	}

	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("claude response has no content")
	}

	return parsed.Content[0].Text, nil
}
