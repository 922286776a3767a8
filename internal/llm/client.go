// Package llm defines the language-model capability the lookup pipeline is
// polymorphic over. Adapters for concrete providers live under
// internal/adapter/llm; tests use in-package fakes.
package llm

import (
	"context"
	"time"

	"github.com/heartmarshall/wordlens/internal/domain"
)

// Message is one chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionRequest carries one model call. Timeout bounds the whole call;
// adapters must not retry on their own.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// CompletionResult is the model's reply plus the usage it consumed. Usage may
// be nil when the provider did not report it.
type CompletionResult struct {
	Content string
	Usage   *domain.TokenUsage
}

// Client is the injected language-model capability. Implementations talk to
// exactly one provider/model pair and fail fast: a single attempt, an error on
// anything other than a well-formed reply.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
	// Model returns the model identifier reported in usage stats.
	Model() string
}
