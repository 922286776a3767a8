package provider

import "encoding/json"

// DictionaryResult is the raw entry list a dictionary provider returned for
// one lookup word. Entries pass through the pipeline unmodified; per-entry
// metadata extraction happens lazily on the single entry picked by sense
// selection.
type DictionaryResult struct {
	Word    string
	Entries []Entry
}

// Entry is one dictionary entry (one part of speech / etymology).
type Entry struct {
	PartOfSpeech   string          `json:"partOfSpeech"`
	Senses         []Sense         `json:"senses"`
	Forms          []Form          `json:"forms"`
	Pronunciations []Pronunciation `json:"pronunciations"`
}

// Sense is one meaning of an entry. Subsenses nest at most one level deep.
type Sense struct {
	Definition string            `json:"definition"`
	Tags       []string          `json:"tags"`
	Examples   []json.RawMessage `json:"examples"`
	Subsenses  []Sense           `json:"subsenses"`
}

// Form is one inflected form with its grammatical tags.
type Form struct {
	Word string   `json:"word"`
	Tags []string `json:"tags"`
}

// Pronunciation is one pronunciation record; Type is "ipa" for IPA
// transcriptions.
type Pronunciation struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ExampleText decodes one sense example, which dictionary sources serve
// either as a bare string or as an object with a "text" field. Returns ""
// for anything else.
func ExampleText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Text
	}
	return ""
}

// SenseCount returns the total number of senses and subsenses across all
// entries; the orchestrator uses it to decide whether sense selection needs
// a model call.
func SenseCount(entries []Entry) (senses, subsenses int) {
	for _, e := range entries {
		senses += len(e.Senses)
		for _, s := range e.Senses {
			subsenses += len(s.Subsenses)
		}
	}
	return senses, subsenses
}
