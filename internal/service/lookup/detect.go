package lookup

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// defaultLanguage is used when detection is inconclusive; German is the
// product's primary market.
const defaultLanguage = "de"

// languageDetector guesses the sentence language for requests that omit it,
// restricted to the languages the registry supports.
type languageDetector struct {
	detector lingua.LanguageDetector
}

func newLanguageDetector() *languageDetector {
	return &languageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.German,
				lingua.English,
				lingua.French,
				lingua.Spanish,
				lingua.Italian,
				lingua.Portuguese,
				lingua.Dutch,
				lingua.Polish,
				lingua.Russian,
			).
			Build(),
	}
}

// detect returns the ISO 639-1 code of the sentence language, falling back
// to the default on inconclusive input.
func (d *languageDetector) detect(sentence string) string {
	lang, ok := d.detector.DetectLanguageOf(sentence)
	if !ok {
		return defaultLanguage
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
