package dictapi

import (
	"strings"

	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/provider"
)

// Per-entry metadata extraction. These are pure transforms applied lazily by
// the caller to the single entry chosen by sense selection.

// Gender returns the definite article for a noun entry ("der"/"die"/"das" for
// German), or "" for non-gendered languages and non-nouns.
//
// It checks, in order, the first sense's grammatical tags against the
// per-language article table, then the part-of-speech string itself
// ("masculine noun").
func Gender(entry provider.Entry, langCode string) string {
	if !domain.GenderedLanguage(langCode) {
		return ""
	}

	if len(entry.Senses) > 0 {
		for _, tag := range entry.Senses[0].Tags {
			if article := domain.GenderArticle(langCode, tag); article != "" {
				return article
			}
		}
	}

	pos := strings.ToLower(entry.PartOfSpeech)
	for _, word := range strings.Fields(pos) {
		if article := domain.GenderArticle(langCode, word); article != "" {
			return article
		}
	}
	return ""
}

// Phonetics returns the entry's IPA transcription, or "" when the entry has
// none or the language's IPA data is suppressed by policy.
func Phonetics(entry provider.Entry, langCode string) string {
	if !domain.PhoneticsAllowed(langCode) {
		return ""
	}
	for _, p := range entry.Pronunciations {
		if strings.EqualFold(p.Type, "ipa") && p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// Tags marking forms that are table metadata rather than real inflections.
var skipFormTags = map[string]bool{
	"multiword-construction": true,
	"inflection-template":    true,
	"table-tags":             true,
	"class":                  true,
}

// Forms extracts the grammatical forms a learner expects to see for the
// entry. Verbs get at most one each of present (3rd-person singular), past,
// past participle, plus every auxiliary joined with " / "; other parts of
// speech get at most one each of genitive, plural and feminine. Returns nil
// when no recognized form is found.
func Forms(entry provider.Entry) *domain.WordForms {
	if isVerb(entry.PartOfSpeech) {
		return verbForms(entry.Forms)
	}
	return nounForms(entry.Forms)
}

func isVerb(pos string) bool {
	return strings.Contains(strings.ToLower(pos), "verb")
}

func verbForms(forms []provider.Form) *domain.WordForms {
	var out domain.WordForms
	var auxiliaries []string

	for _, f := range forms {
		tags := tagSet(f.Tags)
		if f.Word == "" || skippableForm(tags) {
			continue
		}

		switch {
		case tags["auxiliary"]:
			auxiliaries = append(auxiliaries, f.Word)

		case out.Present == "" && tags["present"] && thirdSingular(tags) && !tags["subjunctive"]:
			out.Present = f.Word

		case out.Past == "" && pastForm(tags):
			out.Past = f.Word

		case out.Participle == "" && tags["participle"] && tags["past"]:
			out.Participle = f.Word
		}
	}

	if len(auxiliaries) > 0 {
		out.Auxiliary = strings.Join(auxiliaries, " / ")
	}
	if out.IsZero() {
		return nil
	}
	return &out
}

// pastForm accepts either a bare "past" tag or "preterite" in the 3rd-person
// singular; subjunctive forms never count.
func pastForm(tags map[string]bool) bool {
	if tags["subjunctive"] || tags["participle"] {
		return false
	}
	if tags["preterite"] {
		return thirdSingular(tags)
	}
	return tags["past"] && len(tags) == 1
}

func thirdSingular(tags map[string]bool) bool {
	return (tags["third-person"] || tags["third"]) && tags["singular"]
}

func nounForms(forms []provider.Form) *domain.WordForms {
	var out domain.WordForms

	for _, f := range forms {
		tags := tagSet(f.Tags)
		if f.Word == "" || skippableForm(tags) {
			continue
		}

		switch {
		case out.Genitive == "" && tags["genitive"] && tags["singular"]:
			out.Genitive = f.Word
		case out.Plural == "" && tags["plural"] && tags["nominative"]:
			out.Plural = f.Word
		case out.Plural == "" && tags["plural"] && len(tags) == 1:
			out.Plural = f.Word
		case out.Feminine == "" && tags["feminine"]:
			out.Feminine = f.Word
		}
	}

	if out.IsZero() {
		return nil
	}
	return &out
}

func skippableForm(tags map[string]bool) bool {
	for tag := range skipFormTags {
		if tags[tag] {
			return true
		}
	}
	return false
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = true
	}
	return set
}
