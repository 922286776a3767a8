package domain

import (
	"strings"
)

// NormalizeText cleans user-supplied lookup input:
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into a single space
//
// Case is preserved: German dictionary words are case-sensitive ("Haus" is a
// noun, "haus" is not an entry). Diacritics, hyphens, and apostrophes are
// preserved too.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
