package sense

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
	"github.com/heartmarshall/wordlens/internal/provider"
)

type fakeModel struct {
	completeFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error)
	calls        int
}

func (f *fakeModel) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	f.calls++
	return f.completeFunc(ctx, req)
}

func (f *fakeModel) Model() string { return "fake-model" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func replyModel(reply string) *fakeModel {
	return &fakeModel{
		completeFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
			return &llm.CompletionResult{
				Content: reply,
				Usage:   &domain.TokenUsage{Model: "fake-model", TotalTokens: 30},
			}, nil
		},
	}
}

func bankEntries() []provider.Entry {
	return []provider.Entry{
		{
			PartOfSpeech: "noun",
			Senses: []provider.Sense{
				{Definition: "a financial institution", Examples: []json.RawMessage{
					json.RawMessage(`"She works at a bank."`),
				}},
				{Definition: "the land alongside a river", Examples: []json.RawMessage{
					json.RawMessage(`{"text": "We sat on the river bank."}`),
				}},
			},
		},
		{
			PartOfSpeech: "verb",
			Senses: []provider.Sense{
				{Definition: "to tilt an aircraft"},
			},
		},
	}
}

func TestSelect_EmptyEntries(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger())
	model := replyModel("0.0")

	sel, usage := svc.Select(context.Background(), "a sentence", "word", nil, model)

	assert.Equal(t, domain.SenseSelection{SubsenseIdx: -1}, sel)
	assert.Nil(t, usage)
	assert.Equal(t, 0, model.calls)
}

func TestSelect_SingleSenseSkipsModel(t *testing.T) {
	t.Parallel()

	entries := []provider.Entry{
		{
			PartOfSpeech: "verb",
			Senses:       []provider.Sense{{Definition: "to rise from bed"}},
		},
	}
	svc := NewService(testLogger())
	model := replyModel("0.0")

	sel, usage := svc.Select(context.Background(), "Er steht früh auf", "aufstehen", entries, model)

	assert.Equal(t, 0, model.calls, "unambiguous entries must not cost a model call")
	assert.Nil(t, usage)
	assert.Equal(t, 0, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, -1, sel.SubsenseIdx)
	assert.Equal(t, "to rise from bed", sel.Definition)
}

func TestSelect_PicksIndexedSense(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger())
	model := replyModel("0.1")

	sel, usage := svc.Select(context.Background(), "We sat on the bank of the river", "bank", bankEntries(), model)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, 0, sel.EntryIdx)
	assert.Equal(t, 1, sel.SenseIdx)
	assert.Equal(t, "the land alongside a river", sel.Definition)
	assert.Equal(t, []string{"We sat on the river bank."}, sel.Examples)
	require.NotNil(t, usage)
	assert.Equal(t, 30, usage.TotalTokens)
}

func TestSelect_ToleratesPreambleText(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger())
	model := replyModel("The best match here is sense 1.0, the verb reading.")

	sel, _ := svc.Select(context.Background(), "The plane banked left", "bank", bankEntries(), model)

	assert.Equal(t, 1, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, "to tilt an aircraft", sel.Definition)
}

func TestSelect_ClampsOutOfRangeIndices(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger())
	model := replyModel("7.9.4")

	sel, _ := svc.Select(context.Background(), "sentence", "bank", bankEntries(), model)

	// Hallucinated indices degrade to the nearest valid selection.
	assert.Equal(t, 1, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, -1, sel.SubsenseIdx)
	assert.Equal(t, "to tilt an aircraft", sel.Definition)
}

func TestSelect_NoIndexInReply(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger())
	model := replyModel("the first one, probably")

	sel, _ := svc.Select(context.Background(), "sentence", "bank", bankEntries(), model)

	assert.Equal(t, 0, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, "a financial institution", sel.Definition)
}

func TestSelect_ModelErrorFallsBackToFirstSense(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger())
	model := &fakeModel{
		completeFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
			return nil, fmt.Errorf("model unavailable")
		},
	}

	sel, usage := svc.Select(context.Background(), "sentence", "bank", bankEntries(), model)

	assert.Equal(t, 0, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, "a financial institution", sel.Definition)
	assert.Nil(t, usage)
}

func TestSelect_Subsense(t *testing.T) {
	t.Parallel()

	entries := []provider.Entry{
		{
			PartOfSpeech: "noun",
			Senses: []provider.Sense{
				{
					Definition: "a motion picture",
					Examples: []json.RawMessage{
						json.RawMessage(`"We watched a film."`),
					},
					Subsenses: []provider.Sense{
						{Definition: "a thin layer covering a surface"},
						{Definition: "photographic material"},
					},
				},
				{Definition: "to record moving images"},
			},
		},
	}
	svc := NewService(testLogger())
	model := replyModel("0.0.1")

	sel, _ := svc.Select(context.Background(), "The film in the camera", "film", entries, model)

	assert.Equal(t, 0, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, 1, sel.SubsenseIdx)
	assert.Equal(t, "photographic material", sel.Definition)
	// Examples always come from the parent sense.
	assert.Equal(t, []string{"We watched a film."}, sel.Examples)
}

func TestSelect_ClampIsIdempotent(t *testing.T) {
	t.Parallel()

	entries := bankEntries()
	first := clampSelection(entries, 7, 9, 4)
	second := clampSelection(entries, first.EntryIdx, first.SenseIdx, first.SubsenseIdx)

	assert.Equal(t, first, second)
}

func TestFirst(t *testing.T) {
	t.Parallel()

	sel := First(bankEntries())
	assert.Equal(t, 0, sel.EntryIdx)
	assert.Equal(t, 0, sel.SenseIdx)
	assert.Equal(t, -1, sel.SubsenseIdx)
	assert.Equal(t, "a financial institution", sel.Definition)

	empty := First(nil)
	assert.Equal(t, domain.SenseSelection{SubsenseIdx: -1}, empty)
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := buildPrompt("We sat on the bank", "bank", bankEntries())

	assert.Contains(t, prompt, "0.0: a financial institution")
	assert.Contains(t, prompt, "0.1: the land alongside a river")
	assert.Contains(t, prompt, "1.0: to tilt an aircraft")
	assert.Contains(t, prompt, `"bank"`)
}

func TestBuildPrompt_CapsSenses(t *testing.T) {
	t.Parallel()

	senses := make([]provider.Sense, 10)
	for i := range senses {
		senses[i] = provider.Sense{Definition: fmt.Sprintf("meaning %d", i)}
	}
	entries := []provider.Entry{{PartOfSpeech: "noun", Senses: senses}}

	prompt := buildPrompt("s", "w", entries)

	assert.Contains(t, prompt, "0.5: meaning 5")
	assert.NotContains(t, prompt, "meaning 6")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("ü", 200)
	got := truncate(long, 160)
	assert.Equal(t, 161, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))

	short := "short definition"
	assert.Equal(t, short, truncate(short, 160))
}
