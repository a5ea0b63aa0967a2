package localization

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const fetchTimeout = 10 * time.Second

// GitHubSource fetches the localization text catalog from a raw file in a
// GitHub repository.
type GitHubSource struct {
	url    string
	token  string
	client *http.Client
}

// GitHubSourceConfig contains configuration for GitHubSource.
type GitHubSourceConfig struct {
	// URL is the raw content URL of the catalog JSON file.
	URL string

	// Token authorizes access to a private repository. Empty for public.
	Token string

	// HTTPClient overrides the client in tests.
	HTTPClient *http.Client
}

// NewGitHubSource creates a new GitHub-backed text source.
func NewGitHubSource(cfg GitHubSourceConfig) *GitHubSource {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	return &GitHubSource{
		url:    cfg.URL,
		token:  cfg.Token,
		client: client,
	}
}

// FetchTexts downloads and decodes the text catalog.
func (s *GitHubSource) FetchTexts(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch text catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text catalog fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read text catalog: %w", err)
	}

	var texts map[string]string
	if err := json.Unmarshal(body, &texts); err != nil {
		return nil, fmt.Errorf("failed to decode text catalog: %w", err)
	}

	return texts, nil
}
