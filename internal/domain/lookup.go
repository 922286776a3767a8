package domain

// CEFRLevel is a Common European Framework proficiency tier.
type CEFRLevel string

const (
	CEFRLevelA1 CEFRLevel = "A1"
	CEFRLevelA2 CEFRLevel = "A2"
	CEFRLevelB1 CEFRLevel = "B1"
	CEFRLevelB2 CEFRLevel = "B2"
	CEFRLevelC1 CEFRLevel = "C1"
	CEFRLevelC2 CEFRLevel = "C2"
)

func (l CEFRLevel) String() string { return string(l) }

func (l CEFRLevel) IsValid() bool {
	switch l {
	case CEFRLevelA1, CEFRLevelA2, CEFRLevelB1, CEFRLevelB2, CEFRLevelC1, CEFRLevelC2:
		return true
	}
	return false
}

// LookupSource records which pipeline path produced a LookupResult.
type LookupSource string

const (
	// LookupSourceHybrid means the reduced LLM extraction plus the dictionary
	// API produced the answer.
	LookupSourceHybrid LookupSource = "hybrid"
	// LookupSourceLLM means the single full-LLM fallback call produced it.
	LookupSourceLLM LookupSource = "llm"
)

// LookupRequest is the orchestrator's public input: the word the user clicked,
// the sentence it appeared in, and the sentence language. Language may be
// empty, in which case it is detected from the sentence.
type LookupRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
	Language string `json:"language"`
}

// LookupResult is the orchestrator's public output. All fields except Lemma,
// RelatedWords and Source are best-effort and may be empty.
type LookupResult struct {
	Lemma        string       `json:"lemma"`
	Definition   string       `json:"definition"`
	RelatedWords []string     `json:"related_words"`
	PartOfSpeech string       `json:"pos,omitempty"`
	Gender       string       `json:"gender,omitempty"`
	Phonetics    string       `json:"phonetics,omitempty"`
	Conjugations *WordForms   `json:"conjugations,omitempty"`
	Level        CEFRLevel    `json:"level,omitempty"`
	Examples     []string     `json:"examples,omitempty"`
	Source       LookupSource `json:"source"`
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// WordForms holds the grammatical forms extracted for one dictionary entry.
// Verb entries fill the conjugation fields, other parts of speech fill the
// declension fields; unused fields stay empty.
type WordForms struct {
	Present    string `json:"present,omitempty"`
	Past       string `json:"past,omitempty"`
	Participle string `json:"participle,omitempty"`
	Auxiliary  string `json:"auxiliary,omitempty"`
	Genitive   string `json:"genitive,omitempty"`
	Plural     string `json:"plural,omitempty"`
	Feminine   string `json:"feminine,omitempty"`
}

// IsZero reports whether no form was recognized.
func (f WordForms) IsZero() bool { return f == WordForms{} }

// LemmaExtraction is the result of resolving a clicked word to its dictionary
// base form. RelatedWords holds the surface tokens that compose the lemma,
// sorted by their position in the sentence; it always contains at least the
// clicked word itself.
type LemmaExtraction struct {
	Lemma        string
	RelatedWords []string
	Level        CEFRLevel
}

// SenseSelection points at one sense within a list of dictionary entries.
// SubsenseIdx is -1 when the selection is a top-level sense. Indices are
// always in bounds for the entry list the selection was made against.
type SenseSelection struct {
	EntryIdx    int
	SenseIdx    int
	SubsenseIdx int
	Definition  string
	Examples    []string
}

// TokenUsage aggregates token counts and estimated cost across the model
// calls of one lookup. Model and Provider identify the first call that
// contributed usage; later calls only add counts.
type TokenUsage struct {
	Model            string  `json:"model"`
	Provider         string  `json:"provider,omitempty"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedCost    float64 `json:"estimated_cost"`
}

// Add returns the sum of u and other. Counts and cost are summed; Model and
// Provider are taken from u unless u is empty, in which case other's are kept.
// A nil other is a no-op, so stages that made no model call fold in cleanly.
func (u TokenUsage) Add(other *TokenUsage) TokenUsage {
	if other == nil {
		return u
	}
	sum := TokenUsage{
		Model:            u.Model,
		Provider:         u.Provider,
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
		EstimatedCost:    u.EstimatedCost + other.EstimatedCost,
	}
	if sum.Model == "" {
		sum.Model = other.Model
		sum.Provider = other.Provider
	}
	return sum
}
