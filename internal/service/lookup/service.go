// Package lookup composes the hybrid pipeline: reduced lemma extraction,
// dictionary fetch, sense selection, and a full-model fallback when the cheap
// path fails. A lookup always returns a result; the worst case is the clicked
// word echoed back with an empty definition.
package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/llm"
	"github.com/heartmarshall/wordlens/internal/provider"
)

type lemmaExtractor interface {
	Extract(ctx context.Context, word, sentence, langCode string, model llm.Client) (*domain.LemmaExtraction, *domain.TokenUsage, error)
}

type senseSelector interface {
	Select(ctx context.Context, sentence, word string, entries []provider.Entry, model llm.Client) (domain.SenseSelection, *domain.TokenUsage)
}

type dictionaryClient interface {
	Fetch(ctx context.Context, word, language string) (*provider.DictionaryResult, error)
}

// Service is the hybrid lookup orchestrator.
type Service struct {
	log       *slog.Logger
	extractor lemmaExtractor
	selector  senseSelector
	dict      dictionaryClient
	model     llm.Client

	cache    *entryCache
	detector *languageDetector
}

// NewService creates the orchestrator. All collaborators are required except
// dict, which may be nil to run in model-only mode.
func NewService(
	logger *slog.Logger,
	extractor lemmaExtractor,
	selector senseSelector,
	dict dictionaryClient,
	model llm.Client,
) (*Service, error) {
	if extractor == nil || selector == nil {
		return nil, fmt.Errorf("lookup: extractor and selector are required")
	}
	if model == nil {
		return nil, fmt.Errorf("lookup: model capability is required")
	}
	return &Service{
		log:       logger.With("service", "lookup"),
		extractor: extractor,
		selector:  selector,
		dict:      dict,
		model:     model,
		cache:     newEntryCache(),
		detector:  newLanguageDetector(),
	}, nil
}

// resolveLanguage returns the ISO code for the request language, detecting it
// from the sentence when the request leaves it empty.
func (s *Service) resolveLanguage(ctx context.Context, req domain.LookupRequest) string {
	if req.Language != "" {
		if code := domain.LanguageCode(req.Language); code != "" {
			return code
		}
		s.log.DebugContext(ctx, "unsupported request language, detecting instead",
			slog.String("language", req.Language),
		)
	}
	code := s.detector.detect(req.Sentence)
	s.log.DebugContext(ctx, "language detected", slog.String("lang", code))
	return code
}

// fetchEntries reads through the process-wide cache in front of the
// dictionary client. A nil return means the dictionary has nothing for the
// lemma, which is not an error.
func (s *Service) fetchEntries(ctx context.Context, lemmaStr, langCode string) *provider.DictionaryResult {
	if s.dict == nil {
		return nil
	}

	if cached, ok := s.cache.get(langCode, lemmaStr); ok {
		s.cache.logStats(s.log)
		return cached
	}

	result, err := s.dict.Fetch(ctx, lemmaStr, langCode)
	if err != nil {
		// Contract-level failure (cancelled context); treat as not found.
		s.log.DebugContext(ctx, "dictionary fetch aborted", slog.String("error", err.Error()))
		return nil
	}

	s.cache.put(langCode, lemmaStr, result)
	return result
}
