package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/wordlens/internal/adapter/provider/dictapi"
	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
	"github.com/heartmarshall/wordlens/internal/provider"
	"github.com/heartmarshall/wordlens/internal/service/sense"
)

const fullTimeout = 30 * time.Second

// fallbackDefinition replaces the definition when the full-model fallback
// returns unparseable JSON, so malformed model output never reaches the
// product surface.
const fallbackDefinition = "No definition available."

// Lookup resolves the clicked word to its dictionary data. It never returns
// an error for lookup failures, only for contract violations (empty word or
// sentence).
func (s *Service) Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
	req.Word = domain.NormalizeText(req.Word)
	req.Sentence = domain.NormalizeText(req.Sentence)
	if req.Word == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	if req.Sentence == "" {
		return nil, domain.NewValidationError("sentence", "required")
	}

	langCode := s.resolveLanguage(ctx, req)

	// Stage 1: cheap lemma + level extraction. A nil extraction means the
	// reduced path could not produce a parseable answer; skip straight to
	// the full-model fallback.
	extraction, extractUsage, err := s.extractor.Extract(ctx, req.Word, req.Sentence, langCode, s.model)
	if err != nil {
		return nil, err
	}
	if extraction == nil {
		s.log.InfoContext(ctx, "reduced extraction failed, using full model fallback",
			slog.String("word", req.Word),
			slog.String("lang", langCode),
		)
		return s.fullModelLookup(ctx, req, langCode)
	}

	total := domain.TokenUsage{}.Add(extractUsage)

	// Stage 2: dictionary augmentation, best-effort.
	dictResult := s.fetchEntries(ctx, extraction.Lemma, langCode)

	result := &domain.LookupResult{
		Lemma:        extraction.Lemma,
		RelatedWords: extraction.RelatedWords,
		Level:        extraction.Level,
		Source:       domain.LookupSourceHybrid,
	}

	if dictResult != nil && len(dictResult.Entries) > 0 {
		entries := dictResult.Entries

		// Stage 3: sense selection. A model call is only worth making when
		// there is something to disambiguate.
		var selection domain.SenseSelection
		senses, subsenses := provider.SenseCount(entries)
		if senses >= 2 || subsenses > 0 {
			var selectUsage *domain.TokenUsage
			selection, selectUsage = s.selector.Select(ctx, req.Sentence, req.Word, entries, s.model)
			total = total.Add(selectUsage)
		} else {
			selection = sense.First(entries)
		}

		entry := entries[selection.EntryIdx]
		result.Definition = selection.Definition
		result.Examples = selection.Examples
		result.PartOfSpeech = entry.PartOfSpeech
		result.Gender = dictapi.Gender(entry, langCode)
		result.Phonetics = dictapi.Phonetics(entry, langCode)
		result.Conjugations = dictapi.Forms(entry)
	}

	if total != (domain.TokenUsage{}) {
		result.Usage = &total
	}

	s.log.InfoContext(ctx, "lookup done",
		slog.String("word", req.Word),
		slog.String("lemma", result.Lemma),
		slog.String("lang", langCode),
		slog.String("source", string(result.Source)),
		slog.Int("total_tokens", total.TotalTokens),
	)

	return result, nil
}

// fullAnswer is the JSON shape the fallback prompt asks for.
type fullAnswer struct {
	Lemma        string            `json:"lemma"`
	Definition   string            `json:"definition"`
	PartOfSpeech string            `json:"pos"`
	Gender       string            `json:"gender"`
	Level        string            `json:"level"`
	Conjugations map[string]string `json:"conjugations"`
}

// fullModelLookup is the fallback path: one expensive structured call for the
// complete answer. Unparseable JSON replaces the definition with a fixed
// sentinel; fields that did decode are still used.
func (s *Service) fullModelLookup(ctx context.Context, req domain.LookupRequest, langCode string) (*domain.LookupResult, error) {
	result := &domain.LookupResult{
		Lemma:        req.Word,
		RelatedWords: []string{req.Word},
		Source:       domain.LookupSourceLLM,
	}

	completion, err := s.model.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a precise multilingual dictionary. Answer with a single JSON object and nothing else."},
			{Role: llm.RoleUser, Content: buildFullPrompt(req.Word, req.Sentence, langCode)},
		},
		Temperature: 0.2,
		MaxTokens:   512,
		Timeout:     fullTimeout,
	})
	if err != nil {
		// Worst case: echo the clicked word with an empty definition.
		s.log.WarnContext(ctx, "full model fallback failed",
			slog.String("word", req.Word),
			slog.String("error", err.Error()),
		)
		return result, nil
	}

	if completion.Usage != nil {
		usage := *completion.Usage
		result.Usage = &usage
	}

	var answer fullAnswer
	parsed := false
	if jsonStr, jerr := extractJSON(completion.Content); jerr == nil {
		// Unmarshal fills fields it managed to decode even when it returns
		// an error partway through.
		parsed = json.Unmarshal([]byte(jsonStr), &answer) == nil
	}

	if answer.Lemma != "" {
		result.Lemma = answer.Lemma
	}
	result.PartOfSpeech = answer.PartOfSpeech
	result.Gender = answer.Gender
	if level := domain.CEFRLevel(strings.ToUpper(answer.Level)); level.IsValid() {
		result.Level = level
	}
	if len(answer.Conjugations) > 0 {
		result.Conjugations = &domain.WordForms{
			Present:    answer.Conjugations["present"],
			Past:       answer.Conjugations["past"],
			Participle: answer.Conjugations["participle"],
			Auxiliary:  answer.Conjugations["auxiliary"],
		}
	}

	if parsed {
		result.Definition = answer.Definition
	} else {
		result.Definition = fallbackDefinition
	}

	return result, nil
}

func buildFullPrompt(word, sentence, langCode string) string {
	return fmt.Sprintf(`Analyze the word %q as used in the sentence %q (language code %q).

Answer with ONLY this JSON object, no markdown:
{
  "lemma": "<dictionary base form, including separable prefixes and reflexive pronouns>",
  "definition": "<one concise definition matching this usage>",
  "pos": "<part of speech>",
  "gender": "<definite article for nouns in gendered languages, else empty>",
  "level": "<A1|A2|B1|B2|C1|C2>",
  "conjugations": {"present": "", "past": "", "participle": "", "auxiliary": ""}
}`, word, sentence, langCode)
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
