package domain

import "strings"

// Language registry for the lookup pipeline. Human-readable language names
// map to ISO 639-1 codes; everything downstream (dictionary URLs, gender
// tables, reflexive markers) is keyed by code.

var languageCodes = map[string]string{
	"german":     "de",
	"english":    "en",
	"french":     "fr",
	"spanish":    "es",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"polish":     "pl",
	"russian":    "ru",
}

// LanguageCode maps a human language name ("German") to its ISO 639-1 code.
// It also accepts a code itself ("de"). Returns "" for unsupported languages.
func LanguageCode(language string) string {
	key := strings.ToLower(strings.TrimSpace(language))
	if code, ok := languageCodes[key]; ok {
		return code
	}
	for _, code := range languageCodes {
		if key == code {
			return code
		}
	}
	return ""
}

// genderArticles maps, per language code, a grammatical gender tag to the
// definite article shown to the user. Both English and native tag spellings
// appear because dictionary sources are inconsistent about them.
var genderArticles = map[string]map[string]string{
	"de": {
		"masculine": "der", "männlich": "der", "maskulinum": "der",
		"feminine": "die", "weiblich": "die", "femininum": "die",
		"neuter": "das", "sächlich": "das", "neutrum": "das",
	},
	"fr": {
		"masculine": "le", "masculin": "le",
		"feminine": "la", "féminin": "la",
	},
	"es": {
		"masculine": "el", "masculino": "el",
		"feminine": "la", "femenino": "la",
	},
}

// GenderArticle returns the article for a gender tag in the given language,
// or "" if the language is non-gendered or the tag is not a gender marker.
func GenderArticle(langCode, tag string) string {
	table, ok := genderArticles[langCode]
	if !ok {
		return ""
	}
	return table[strings.ToLower(strings.TrimSpace(tag))]
}

// GenderedLanguage reports whether gender extraction applies to the language.
func GenderedLanguage(langCode string) bool {
	_, ok := genderArticles[langCode]
	return ok
}

// phoneticsLanguages is the allow-list of languages whose IPA data is
// trustworthy enough to surface. Others are suppressed by policy.
var phoneticsLanguages = map[string]bool{
	"de": true,
	"en": true,
	"fr": true,
	"es": true,
}

// PhoneticsAllowed reports whether IPA transcriptions are shown for the language.
func PhoneticsAllowed(langCode string) bool {
	return phoneticsLanguages[langCode]
}

// reflexivePronouns maps language codes whose reflexive marker is a separate
// pronoun word prefixed (or suffixed) to the lemma.
var reflexivePronouns = map[string][]string{
	"de": {"sich"},
	"fr": {"se", "s'"},
	"it": {"si"},
	"pt": {"se"},
}

// spanishReflexiveSuffixes are stripped from the end of the word, keeping the
// bare infinitive ("levantarse" → "levantar").
var spanishReflexiveSuffixes = []string{"arse", "erse", "irse"}

// ReflexiveMarker returns the marker prepended to a reconstructed reflexive
// lemma in the given language ("sich" for German), or "" if the language has
// no prefix-style reflexive marker.
func ReflexiveMarker(langCode string) string {
	if ps := reflexivePronouns[langCode]; len(ps) > 0 {
		return ps[0]
	}
	return ""
}

// StripReflexive removes a reflexive-pronoun marker from a lemma so it can be
// queried against a dictionary that indexes base verb forms. Matching on the
// pronoun is case-insensitive; non-reflexive words come back unchanged.
//
//	StripReflexive("sich gewöhnen", "de") == "gewöhnen"
//	StripReflexive("levantarse", "es")    == "levantar"
func StripReflexive(word, langCode string) string {
	trimmed := strings.TrimSpace(word)

	if langCode == "es" {
		lower := strings.ToLower(trimmed)
		for _, suffix := range spanishReflexiveSuffixes {
			if strings.HasSuffix(lower, suffix) && len(trimmed) > len(suffix) {
				// "-arse" → "-ar": drop the trailing "se".
				return trimmed[:len(trimmed)-2]
			}
		}
		return trimmed
	}

	for _, pron := range reflexivePronouns[langCode] {
		if fields := strings.Fields(trimmed); len(fields) > 1 {
			if strings.EqualFold(fields[0], pron) {
				return strings.Join(fields[1:], " ")
			}
			if strings.EqualFold(fields[len(fields)-1], pron) {
				return strings.Join(fields[:len(fields)-1], " ")
			}
		}
		// French elided "s'habituer" → "habituer".
		if strings.HasSuffix(pron, "'") && len(trimmed) > len(pron) &&
			strings.EqualFold(trimmed[:len(pron)], pron) {
			return trimmed[len(pron):]
		}
	}
	return trimmed
}
