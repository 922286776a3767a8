package lemma

import (
	"strings"

	"github.com/heartmarshall/wordlens/internal/provider"
)

// arena is an immutable view over one parsed sentence: the ordered token
// slice plus a head-to-children index built once. All tree queries are reads;
// no token is ever mutated, so no cycles can form.
type arena struct {
	tokens   []provider.Token
	children map[int][]int // head token ID -> child token IDs, in sentence order
}

func newArena(tokens []provider.Token) *arena {
	a := &arena{
		tokens:   tokens,
		children: make(map[int][]int, len(tokens)),
	}
	for _, t := range tokens {
		a.children[t.Head] = append(a.children[t.Head], t.ID)
	}
	return a
}

// byID returns the token with the given sentence-local ID.
func (a *arena) byID(id int) (provider.Token, bool) {
	for _, t := range a.tokens {
		if t.ID == id {
			return t, true
		}
	}
	return provider.Token{}, false
}

// head returns the syntactic head of t, or false for the root.
func (a *arena) head(t provider.Token) (provider.Token, bool) {
	if t.Head == 0 {
		return provider.Token{}, false
	}
	return a.byID(t.Head)
}

// childWithDeprel returns the first child of headID carrying the given
// dependency label.
func (a *arena) childWithDeprel(headID int, deprel string) (provider.Token, bool) {
	for _, id := range a.children[headID] {
		t, ok := a.byID(id)
		if ok && t.Deprel == deprel {
			return t, true
		}
	}
	return provider.Token{}, false
}

// reflexiveChild returns the first child of headID that is a reflexive
// pronoun (STTS tag PRF).
func (a *arena) reflexiveChild(headID int) (provider.Token, bool) {
	for _, id := range a.children[headID] {
		t, ok := a.byID(id)
		if ok && isReflexivePronoun(t) {
			return t, true
		}
	}
	return provider.Token{}, false
}

func isReflexivePronoun(t provider.Token) bool {
	return strings.EqualFold(t.XPOS, "PRF")
}

// findToken locates the clicked word in the sentence: exact text match first,
// then case-insensitive (handles capitalization at sentence starts).
func (a *arena) findToken(word string) (provider.Token, bool) {
	for _, t := range a.tokens {
		if t.Text == word {
			return t, true
		}
	}
	for _, t := range a.tokens {
		if strings.EqualFold(t.Text, word) {
			return t, true
		}
	}
	return provider.Token{}, false
}
