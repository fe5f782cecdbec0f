package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpTranslationClient calls an external machine translation API. The wire
// shape follows the common batch-translate contract: texts in, translations
// out, index-aligned.
type httpTranslationClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPTranslationClient creates a TranslationClient backed by an HTTP API.
func NewHTTPTranslationClient(endpoint, apiKey string) TranslationClient {
	return &httpTranslationClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type translateRequest struct {
	Texts        []string `json:"texts"`
	SourceLocale string   `json:"source_locale"`
	TargetLocale string   `json:"target_locale"`
}

type translateResponse struct {
	Translations []string `json:"translations"`
}

func (c *httpTranslationClient) Translate(ctx context.Context, texts []string, sourceLocale, targetLocale string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(translateRequest{
		Texts:        texts,
		SourceLocale: sourceLocale,
		TargetLocale: targetLocale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translate request returned %d: %s", resp.StatusCode, payload)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode translate response: %w", err)
	}

	return result.Translations, nil
}
