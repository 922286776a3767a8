// Package udparse talks to the dependency-parsing service (a UDPipe-style
// HTTP server) that backs the grammatical lemma-extraction path.
package udparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/heartmarshall/wordlens/internal/provider"
)

const defaultTimeout = 10 * time.Second

// Languages the parsing service has a model for. Current policy: German only.
var parserLanguages = map[string]bool{
	"de": true,
}

// Supported reports whether a dependency parse is available for the language.
func Supported(langCode string) bool {
	return parserLanguages[langCode]
}

// Supports reports whether the client can parse the language.
func (c *Client) Supports(langCode string) bool {
	return Supported(langCode)
}

// Client is the HTTP adapter for the parsing service. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	warmOnce sync.Once
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "udparse"),
	}
}

type parseRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type parseResponse struct {
	Sentences []struct {
		Tokens []provider.Token `json:"tokens"`
	} `json:"sentences"`
}

// Parse runs the sentence through the dependency parser and returns its
// sentences of tokens. A single attempt, no retries: parser failure makes the
// caller fall back to the LLM path instead.
func (c *Client) Parse(ctx context.Context, text, langCode string) (*provider.ParseResult, error) {
	if !Supported(langCode) {
		return nil, fmt.Errorf("udparse: no model for language %q", langCode)
	}

	payload, err := json.Marshal(parseRequest{Text: text, Lang: langCode})
	if err != nil {
		return nil, fmt.Errorf("udparse: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("udparse: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("udparse: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("udparse: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("udparse: read body: %w", err)
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("udparse: decode json: %w", err)
	}

	result := &provider.ParseResult{Sentences: make([][]provider.Token, 0, len(parsed.Sentences))}
	for _, s := range parsed.Sentences {
		result.Sentences = append(result.Sentences, s.Tokens)
	}

	c.log.DebugContext(ctx, "parsed text",
		slog.String("lang", langCode),
		slog.Int("sentences", len(result.Sentences)),
	)

	return result, nil
}

// Preload warms the parsing service ahead of first traffic so the first
// lookup does not pay the model cold-start. Subsequent calls are no-ops.
func (c *Client) Preload(ctx context.Context) {
	c.warmOnce.Do(func() {
		start := time.Now()
		if _, err := c.Parse(ctx, "Guten Morgen.", "de"); err != nil {
			c.log.WarnContext(ctx, "parser preload failed", slog.String("error", err.Error()))
			return
		}
		c.log.InfoContext(ctx, "parser preloaded", slog.Duration("took", time.Since(start)))
	})
}
