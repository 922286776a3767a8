// Package sense picks the dictionary sense that matches how a word is used
// in its sentence. Unambiguous words short-circuit without a model call;
// everything the model answers is clamped into bounds, so selection can never
// return an out-of-range reference.
package sense

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
	"github.com/heartmarshall/wordlens/internal/provider"
)

const (
	selectTimeout = 15 * time.Second

	// maxSensesPerEntry bounds the prompt size for words with long sense
	// inventories.
	maxSensesPerEntry = 6

	// maxDefinitionLen truncates definitions in the prompt for compactness.
	maxDefinitionLen = 160

	// maxExamples caps how many usage examples accompany the selection.
	maxExamples = 3
)

// indexPattern finds the first dotted sense index anywhere in the model's
// free-text reply, tolerating reasoning preambles like "I think it is 0.1".
var indexPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Service is the sense selector.
type Service struct {
	log *slog.Logger
}

// NewService creates the selector.
func NewService(logger *slog.Logger) *Service {
	return &Service{log: logger.With("service", "sense")}
}

// Select picks the sense of entries matching the word's usage in sentence.
// The returned usage is nil when no model call was made (the trivial case and
// every failure path). Selection never fails: the worst case is the first
// sense of the first entry.
func (s *Service) Select(ctx context.Context, sentence, word string, entries []provider.Entry, model llm.Client) (domain.SenseSelection, *domain.TokenUsage) {
	if len(entries) == 0 {
		return domain.SenseSelection{SubsenseIdx: -1}, nil
	}

	// Exactly one sense and no subsenses: no call, by contract. This keeps
	// cost at zero for the common unambiguous word.
	senses, subsenses := provider.SenseCount(entries)
	if len(entries) == 1 && senses == 1 && subsenses == 0 {
		sel := clampSelection(entries, 0, 0, -1)
		return sel, nil
	}

	result, err := model.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(sentence, word, entries)},
		},
		Temperature: 0,
		MaxTokens:   32,
		Timeout:     selectTimeout,
	})
	if err != nil {
		s.log.WarnContext(ctx, "sense selection call failed, using first sense",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return clampSelection(entries, 0, 0, -1), nil
	}

	entryIdx, senseIdx, subIdx := parseIndex(result.Content)
	sel := clampSelection(entries, entryIdx, senseIdx, subIdx)

	s.log.DebugContext(ctx, "sense selected",
		slog.String("word", word),
		slog.Int("entry", sel.EntryIdx),
		slog.Int("sense", sel.SenseIdx),
		slog.Int("subsense", sel.SubsenseIdx),
	)

	return sel, result.Usage
}

// First returns the default selection (first sense of the first entry)
// without any model call. Callers use it when the entries are unambiguous
// enough that selection would be a waste.
func First(entries []provider.Entry) domain.SenseSelection {
	if len(entries) == 0 {
		return domain.SenseSelection{SubsenseIdx: -1}
	}
	return clampSelection(entries, 0, 0, -1)
}

// parseIndex extracts (entry, sense, subsense) from the reply. No match at
// all yields the (0, 0, -1) default; a missing subsense tag yields -1.
func parseIndex(reply string) (entryIdx, senseIdx, subIdx int) {
	m := indexPattern.FindStringSubmatch(reply)
	if m == nil {
		return 0, 0, -1
	}
	entryIdx, _ = strconv.Atoi(m[1])
	senseIdx, _ = strconv.Atoi(m[2])
	subIdx = -1
	if m[3] != "" {
		subIdx, _ = strconv.Atoi(m[3])
	}
	return entryIdx, senseIdx, subIdx
}

// clampSelection clamps each index level independently into bounds and
// resolves the definition and examples. A hallucinated index degrades to the
// nearest valid one instead of crashing the caller.
func clampSelection(entries []provider.Entry, entryIdx, senseIdx, subIdx int) domain.SenseSelection {
	entryIdx = clamp(entryIdx, len(entries))

	entry := entries[entryIdx]
	if len(entry.Senses) == 0 {
		return domain.SenseSelection{EntryIdx: entryIdx, SenseIdx: 0, SubsenseIdx: -1}
	}
	senseIdx = clamp(senseIdx, len(entry.Senses))

	sel := domain.SenseSelection{
		EntryIdx:    entryIdx,
		SenseIdx:    senseIdx,
		SubsenseIdx: -1,
	}

	chosen := entry.Senses[senseIdx]
	if subIdx >= 0 && len(chosen.Subsenses) > 0 {
		sel.SubsenseIdx = clamp(subIdx, len(chosen.Subsenses))
		sel.Definition = chosen.Subsenses[sel.SubsenseIdx].Definition
	} else {
		sel.Definition = chosen.Definition
	}

	// Only the parent sense's examples are surfaced; subsenses rarely carry
	// their own.
	sel.Examples = extractExamples(chosen)

	return sel
}

func clamp(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

// extractExamples takes up to maxExamples items from the sense, skipping
// anything that decodes to an empty string.
func extractExamples(s provider.Sense) []string {
	var out []string
	for _, raw := range s.Examples {
		if text := provider.ExampleText(raw); text != "" {
			out = append(out, text)
			if len(out) == maxExamples {
				break
			}
		}
	}
	return out
}

// buildPrompt enumerates every entry, sense and subsense with dotted indices
// and asks for one back.
func buildPrompt(sentence, word string, entries []provider.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The word %q is used in the sentence: %q\n\n", word, sentence)
	b.WriteString("Pick the dictionary sense that matches this usage.\n\n")

	for i, entry := range entries {
		pos := entry.PartOfSpeech
		if pos == "" {
			pos = "unknown"
		}
		fmt.Fprintf(&b, "Entry %d (%s):\n", i, pos)

		for j, sn := range entry.Senses {
			if j == maxSensesPerEntry {
				break
			}
			fmt.Fprintf(&b, "  %d.%d: %s\n", i, j, truncate(sn.Definition, maxDefinitionLen))
			for k, sub := range sn.Subsenses {
				fmt.Fprintf(&b, "    %d.%d.%d: %s\n", i, j, k, truncate(sub.Definition, maxDefinitionLen))
			}
		}
	}

	b.WriteString("\nAnswer with ONLY the index of the matching sense, e.g. \"1.0\" or \"0.2.1\".")
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
