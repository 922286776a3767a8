// Package anthropic adapts the Anthropic SDK to the llm.Client capability.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
)

// Client implements llm.Client against the Anthropic messages API.
type Client struct {
	api   anthropic.Client
	model string
	cost  llm.CostEstimator
	log   *slog.Logger
}

// NewClient creates a Client for the given API key and model.
func NewClient(apiKey, model string, cost llm.CostEstimator, logger *slog.Logger) *Client {
	return &Client{
		api: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
		model: model,
		cost:  cost,
		log:   logger.With("adapter", "anthropic", "model", model),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	// Anthropic takes the system prompt as a separate field.
	for _, m := range req.Messages {
		if m.Role == llm.RoleSystem {
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
			continue
		}
		params.Messages = append(params.Messages,
			anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: completion: %w", err)
	}
	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("anthropic: empty response")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}

	usage := &domain.TokenUsage{
		Model:            c.model,
		Provider:         "anthropic",
		PromptTokens:     int(msg.Usage.InputTokens),
		CompletionTokens: int(msg.Usage.OutputTokens),
		TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
	}
	if c.cost != nil {
		usage.EstimatedCost = c.cost.EstimateCost(c.model, usage.PromptTokens, usage.CompletionTokens)
	}

	c.log.DebugContext(ctx, "completion done",
		slog.Int("prompt_tokens", usage.PromptTokens),
		slog.Int("completion_tokens", usage.CompletionTokens),
		slog.Duration("took", time.Since(start)),
	)

	return &llm.CompletionResult{
		Content: sb.String(),
		Usage:   usage,
	}, nil
}
