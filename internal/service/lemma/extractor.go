// Package lemma resolves a clicked word inside a sentence to its dictionary
// base form. Languages with a dependency parser get a deterministic
// tree-walking reconstruction (separable prefixes, reflexive pronouns);
// everything else goes through one constrained model call.
package lemma

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
	"github.com/heartmarshall/wordlens/internal/provider"
)

const (
	reducedTimeout = 20 * time.Second
	cefrTimeout    = 15 * time.Second
)

type parserClient interface {
	Parse(ctx context.Context, text, langCode string) (*provider.ParseResult, error)
	Supports(langCode string) bool
}

// Service is the lemma extractor. The parser is optional; without it every
// language takes the model path.
type Service struct {
	log    *slog.Logger
	parser parserClient
}

// NewService creates the extractor. parser may be nil.
func NewService(logger *slog.Logger, parser parserClient) *Service {
	return &Service{
		log:    logger.With("service", "lemma"),
		parser: parser,
	}
}

// Extract resolves word inside sentence to a lemma, the surface tokens that
// compose it, and an estimated CEFR level. The returned usage covers every
// model call made, including a failed CEFR estimate.
//
// A nil extraction with a nil error means the model path failed to produce a
// parseable answer; the caller decides how to degrade.
func (s *Service) Extract(ctx context.Context, word, sentence, langCode string, model llm.Client) (*domain.LemmaExtraction, *domain.TokenUsage, error) {
	if model == nil {
		return nil, nil, fmt.Errorf("lemma: model capability is required")
	}

	if s.parser != nil && s.parser.Supports(langCode) {
		extraction, err := s.parserPath(ctx, word, sentence, langCode)
		if err == nil {
			level, usage := s.estimateCEFR(ctx, word, sentence, extraction.Lemma, model)
			extraction.Level = level
			return extraction, usage, nil
		}
		s.log.DebugContext(ctx, "parser path failed, falling back to model",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
	}

	return s.modelPath(ctx, word, sentence, langCode, model)
}

// parserPath reconstructs the lemma from the dependency parse.
func (s *Service) parserPath(ctx context.Context, word, sentence, langCode string) (*domain.LemmaExtraction, error) {
	parsed, err := s.parser.Parse(ctx, sentence, langCode)
	if err != nil {
		return nil, err
	}

	for _, tokens := range parsed.Sentences {
		a := newArena(tokens)
		clicked, ok := a.findToken(word)
		if !ok {
			continue
		}
		return reconstruct(a, clicked, langCode), nil
	}

	return nil, fmt.Errorf("lemma: token %q not found in parse", word)
}

// reconstruct walks the tree from the clicked token and composes the lemma.
// Separable-prefix and reflexive transformations are independent flags and
// compose; related tokens come back sorted by sentence position.
func reconstruct(a *arena, clicked provider.Token, langCode string) *domain.LemmaExtraction {
	related := []provider.Token{clicked}

	// Clicking a detached prefix or a reflexive pronoun resolves the same
	// lemma as clicking the verb itself: re-root at the head.
	target := clicked
	if target.Deprel == "compound:prt" || isReflexivePronoun(target) {
		if head, ok := a.head(target); ok {
			target = head
			related = append(related, target)
		}
	}

	// Articles echo their surface form: the dictionary lemma ("der" for
	// "dem") would lose the case information users expect to see.
	if target.UPOS == "DET" {
		return finish(strings.ToLower(target.Text), related, clicked)
	}

	// Past participle used as an adjective keeps the surface form; reducing
	// to the verb infinitive would change the meaning being looked up.
	if participleAdjective(target) {
		return finish(target.Text, related, clicked)
	}

	base := target.Lemma

	if prefix, ok := a.childWithDeprel(target.ID, "compound:prt"); ok {
		base = strings.ToLower(prefix.Text) + base
		related = append(related, prefix)
	}

	refl, ok := a.reflexiveChild(target.ID)
	if !ok {
		// The pronoun can attach to the verb's own head (auxiliary or
		// modal constructions).
		if head, headOK := a.head(target); headOK && (head.UPOS == "VERB" || head.UPOS == "AUX") {
			refl, ok = a.reflexiveChild(head.ID)
		}
	}
	if ok {
		if marker := domain.ReflexiveMarker(langCode); marker != "" {
			base = marker + " " + base
		}
		related = append(related, refl)
	}

	return finish(base, related, clicked)
}

// participleAdjective detects adjectival use of a verbal participle: the
// parser lemma still looks like an infinitive but the tag marks an adjective.
func participleAdjective(t provider.Token) bool {
	if t.UPOS != "ADJ" {
		return false
	}
	return strings.HasSuffix(t.Lemma, "en") || strings.HasSuffix(t.Lemma, "ern") || strings.HasSuffix(t.Lemma, "eln")
}

// finish deduplicates the related tokens, sorts them by token ID and renders
// the extraction. The clicked token is always present.
func finish(lemmaStr string, related []provider.Token, clicked provider.Token) *domain.LemmaExtraction {
	seen := map[int]bool{}
	unique := related[:0]
	for _, t := range related {
		if !seen[t.ID] {
			seen[t.ID] = true
			unique = append(unique, t)
		}
	}
	slices.SortFunc(unique, func(a, b provider.Token) int { return a.ID - b.ID })

	words := make([]string, len(unique))
	for i, t := range unique {
		words[i] = t.Text
	}
	if len(words) == 0 {
		words = []string{clicked.Text}
	}

	return &domain.LemmaExtraction{Lemma: lemmaStr, RelatedWords: words}
}

// reducedAnswer is the strict JSON shape the reduced model prompt asks for.
type reducedAnswer struct {
	Lemma        string   `json:"lemma"`
	RelatedWords []string `json:"related_words"`
	Level        string   `json:"level"`
}

// modelPath asks the model for lemma, related words and level in one shot.
// A reply that does not parse as JSON is a hard failure: (nil, nil, nil).
func (s *Service) modelPath(ctx context.Context, word, sentence, langCode string, model llm.Client) (*domain.LemmaExtraction, *domain.TokenUsage, error) {
	result, err := model.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a precise lexicographer. Answer with a single JSON object and nothing else."},
			{Role: llm.RoleUser, Content: buildReducedPrompt(word, sentence, langCode)},
		},
		Temperature: 0.1,
		MaxTokens:   256,
		Timeout:     reducedTimeout,
	})
	if err != nil {
		s.log.WarnContext(ctx, "reduced extraction call failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, nil, nil
	}

	var answer reducedAnswer
	if jsonStr, jerr := extractJSON(result.Content); jerr != nil || json.Unmarshal([]byte(jsonStr), &answer) != nil || answer.Lemma == "" {
		s.log.DebugContext(ctx, "reduced extraction reply not parseable", slog.String("word", word))
		return nil, nil, nil
	}

	relatedWords := answer.RelatedWords
	if !slices.Contains(relatedWords, word) {
		relatedWords = append([]string{word}, relatedWords...)
	}

	extraction := &domain.LemmaExtraction{
		Lemma:        answer.Lemma,
		RelatedWords: relatedWords,
	}
	if level := domain.CEFRLevel(strings.ToUpper(answer.Level)); level.IsValid() {
		extraction.Level = level
	}

	return extraction, result.Usage, nil
}

// estimateCEFR asks the model for a {"level": "A1".."C2"} object. A reply
// that does not parse costs its tokens but not the lookup: level comes back
// empty while the usage still counts.
func (s *Service) estimateCEFR(ctx context.Context, word, sentence, lemmaStr string, model llm.Client) (domain.CEFRLevel, *domain.TokenUsage) {
	result, err := model.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCEFRPrompt(word, sentence, lemmaStr)},
		},
		Temperature: 0,
		MaxTokens:   16,
		Timeout:     cefrTimeout,
	})
	if err != nil {
		s.log.DebugContext(ctx, "cefr estimate call failed",
			slog.String("lemma", lemmaStr),
			slog.String("error", err.Error()),
		)
		return "", nil
	}

	var answer struct {
		Level string `json:"level"`
	}
	jsonStr, jerr := extractJSON(result.Content)
	if jerr != nil || json.Unmarshal([]byte(jsonStr), &answer) != nil {
		return "", result.Usage
	}

	level := domain.CEFRLevel(strings.ToUpper(strings.TrimSpace(answer.Level)))
	if !level.IsValid() {
		return "", result.Usage
	}
	return level, result.Usage
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
