// Package dictapi fetches raw dictionary entries for a lemma from the
// external dictionary service and extracts per-entry metadata (gender,
// phonetics, grammatical forms).
package dictapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/provider"
)

const (
	defaultTimeout = 5 * time.Second
	maxAttempts    = 3
)

// Client fetches dictionary entries over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "dictapi"),
	}
}

// Fetch returns the raw entries for a word in the given language.
//
// It returns (nil, nil) for unsupported languages, for words the dictionary
// does not know (HTTP 404), and when transient failures exhaust all retry
// attempts; none of these are errors for the caller. The error return is
// reserved for contract-level failures such as a cancelled context.
func (c *Client) Fetch(ctx context.Context, word, language string) (*provider.DictionaryResult, error) {
	code := domain.LanguageCode(language)
	if code == "" {
		c.log.DebugContext(ctx, "unsupported language", slog.String("language", language))
		return nil, nil
	}

	// The dictionary indexes base verb forms, not reflexive forms.
	query := domain.StripReflexive(word, code)

	reqURL := fmt.Sprintf("%s/%s/%s", c.baseURL, code, url.PathEscape(query))
	c.log.DebugContext(ctx, "dictionary request",
		slog.String("word", query),
		slog.String("lang", code),
	)

	body, notFound, err := c.getWithRetry(ctx, reqURL, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.WarnContext(ctx, "dictionary request failed, giving up",
			slog.String("word", query),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if notFound {
		c.log.DebugContext(ctx, "word not in dictionary", slog.String("word", query))
		return nil, nil
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.WarnContext(ctx, "dictionary response not valid JSON",
			slog.String("word", query),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	c.log.DebugContext(ctx, "dictionary response",
		slog.String("word", query),
		slog.Int("entries", len(resp.Entries)),
	)

	return &provider.DictionaryResult{Word: query, Entries: resp.Entries}, nil
}

// getWithRetry issues the GET with up to maxAttempts attempts, backing off
// 1s, 2s between them (4s cap). 404 is terminal, not retried.
func (c *Client) getWithRetry(ctx context.Context, reqURL, word string) (body []byte, notFound bool, err error) {
	backoff := time.Second

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if reqErr != nil {
			return nil, false, fmt.Errorf("dictapi: create request: %w", reqErr)
		}

		resp, doErr := c.httpClient.Do(req)
		if doErr == nil {
			switch {
			case resp.StatusCode == http.StatusNotFound:
				resp.Body.Close()
				return nil, true, nil
			case resp.StatusCode == http.StatusOK:
				b, readErr := io.ReadAll(resp.Body)
				resp.Body.Close()
				if readErr == nil {
					return b, false, nil
				}
				err = fmt.Errorf("dictapi: read body: %w", readErr)
			case resp.StatusCode >= 500:
				resp.Body.Close()
				err = fmt.Errorf("dictapi: status %d", resp.StatusCode)
			default:
				resp.Body.Close()
				return nil, false, fmt.Errorf("dictapi: unexpected status %d", resp.StatusCode)
			}
		} else {
			err = doErr
		}

		if attempt == maxAttempts || ctx.Err() != nil {
			break
		}

		c.log.WarnContext(ctx, "dictionary retry",
			slog.String("word", word),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
		if backoff *= 2; backoff > 4*time.Second {
			backoff = 4 * time.Second
		}
	}

	return nil, false, err
}
