package lemma

import "fmt"

// Reduced prompts ask for lemma, related surface tokens and CEFR level in one
// strict-JSON shot. German and English get curated few-shot examples for
// separable/phrasal verbs; other languages share a generic compound-aware
// prompt.

const reducedSchema = `Answer with ONLY this JSON object, no markdown, no explanations:
{"lemma": "<dictionary base form>", "related_words": ["<surface tokens in the sentence that belong to the lemma, in sentence order>"], "level": "<A1|A2|B1|B2|C1|C2>"}`

func buildReducedPrompt(word, sentence, langCode string) string {
	switch langCode {
	case "de":
		return fmt.Sprintf(`Find the dictionary base form (lemma) of the clicked German word in its sentence.

Watch for separable verbs (the prefix may be at the end of the clause) and reflexive verbs (include "sich" in the lemma).

Examples:
- Sentence: "Er steht jeden Tag früh auf." Clicked: "steht" -> {"lemma": "aufstehen", "related_words": ["steht", "auf"], "level": "A1"}
- Sentence: "Ich freue mich auf das Wochenende." Clicked: "freue" -> {"lemma": "sich freuen", "related_words": ["freue", "mich"], "level": "A2"}
- Sentence: "Sie bereitet sich auf die Prüfung vor." Clicked: "bereitet" -> {"lemma": "sich vorbereiten", "related_words": ["bereitet", "sich", "vor"], "level": "B1"}

Sentence: %q
Clicked word: %q

%s`, sentence, word, reducedSchema)

	case "en":
		return fmt.Sprintf(`Find the dictionary base form (lemma) of the clicked English word in its sentence.

Watch for phrasal verbs: the particle belongs to the lemma.

Examples:
- Sentence: "She gave up smoking last year." Clicked: "gave" -> {"lemma": "give up", "related_words": ["gave", "up"], "level": "A2"}
- Sentence: "He looked the word up in a dictionary." Clicked: "looked" -> {"lemma": "look up", "related_words": ["looked", "up"], "level": "A2"}

Sentence: %q
Clicked word: %q

%s`, sentence, word, reducedSchema)

	default:
		return fmt.Sprintf(`Find the dictionary base form (lemma) of the clicked word in its sentence. The sentence language code is %q.

If the word is part of a multi-word or compound construction (separable verb, reflexive verb, phrasal verb), the lemma is the full construction and related_words lists every surface token of it.

Sentence: %q
Clicked word: %q

%s`, langCode, sentence, word, reducedSchema)
	}
}

func buildCEFRPrompt(word, sentence, lemmaStr string) string {
	return fmt.Sprintf(`Estimate the CEFR proficiency level of the word %q (lemma %q) as used in: %q

Answer with ONLY this JSON object: {"level": "<A1|A2|B1|B2|C1|C2>"}`, word, lemmaStr, sentence)
}
