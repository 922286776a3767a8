// Package openai adapts the official OpenAI SDK to the llm.Client capability.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
)

// Client implements llm.Client against the OpenAI chat completions API.
type Client struct {
	api   openai.Client
	model string
	cost  llm.CostEstimator
	log   *slog.Logger
}

// NewClient creates a Client for the given API key and model. Automatic SDK
// retries are disabled; the pipeline owns its own fallback behavior.
func NewClient(apiKey, model string, cost llm.CostEstimator, logger *slog.Logger) *Client {
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
		model: model,
		cost:  cost,
		log:   logger.With("adapter", "openai", "model", model),
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

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case llm.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices")
	}

	usage := &domain.TokenUsage{
		Model:            c.model,
		Provider:         "openai",
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
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
		Content: resp.Choices[0].Message.Content,
		Usage:   usage,
	}, nil
}
