package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultQwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode"
	defaultQwenModel   = "qwen-turbo"
)

// QwenClient translates words through an OpenAI-compatible chat completions
// API.
type QwenClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// QwenClientConfig contains configuration for QwenClient.
type QwenClientConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewQwenClient creates a Qwen translation client.
func NewQwenClient(cfg QwenClientConfig) *QwenClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultQwenBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultQwenModel
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: translateRequestTimeout}
	}

	return &QwenClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  client,
	}
}

// Name identifies the backend in the client registry.
func (c *QwenClient) Name() string { return "qwen" }

type qwenRequest struct {
	Model    string        `json:"model"`
	Messages []qwenMessage `json:"messages"`
}

type qwenMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type qwenResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate asks the model for a translation of a single word.
func (c *QwenClient) Translate(ctx context.Context, word, targetLanguage string) (string, error) {
	payload := qwenRequest{
		Model: c.model,
		Messages: []qwenMessage{
			{Role: "user", Content: fmt.Sprintf(translatePrompt, word, targetLanguage)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode qwen request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build qwen request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("qwen request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read qwen response: %w", err)
	}

	var parsed qwenResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode qwen response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("qwen returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("qwen returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("qwen response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
