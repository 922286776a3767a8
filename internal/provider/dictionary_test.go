package provider

import (
	"encoding/json"
	"testing"
)

func TestExampleText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare string", `"Er steht früh auf."`, "Er steht früh auf."},
		{"object with text", `{"text": "Sie freut sich."}`, "Sie freut sich."},
		{"object without text", `{"ref": "x"}`, ""},
		{"number", `42`, ""},
		{"array", `["a"]`, ""},
	}

	for _, tt := range tests {
		if got := ExampleText(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("%s: ExampleText(%s) = %q, want %q", tt.name, tt.raw, got, tt.want)
		}
	}
}

func TestSenseCount(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{
			Senses: []Sense{
				{Definition: "a"},
				{Definition: "b", Subsenses: []Sense{{Definition: "b1"}, {Definition: "b2"}}},
			},
		},
		{
			Senses: []Sense{{Definition: "c"}},
		},
	}

	senses, subsenses := SenseCount(entries)
	if senses != 3 {
		t.Errorf("senses = %d, want 3", senses)
	}
	if subsenses != 2 {
		t.Errorf("subsenses = %d, want 2", subsenses)
	}

	senses, subsenses = SenseCount(nil)
	if senses != 0 || subsenses != 0 {
		t.Errorf("expected zero counts for no entries, got %d/%d", senses, subsenses)
	}
}
