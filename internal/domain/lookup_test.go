package domain

import "testing"

func TestTokenUsageAdd(t *testing.T) {
	t.Parallel()

	a := &TokenUsage{Model: "gpt-4o-mini", Provider: "openai", PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120, EstimatedCost: 0.25}
	b := &TokenUsage{Model: "gpt-4o-mini", Provider: "openai", PromptTokens: 50, CompletionTokens: 10, TotalTokens: 60, EstimatedCost: 0.5}

	sum := TokenUsage{}.Add(a).Add(b)

	if sum.PromptTokens != 150 || sum.CompletionTokens != 30 || sum.TotalTokens != 180 {
		t.Errorf("unexpected counts: %+v", sum)
	}
	if sum.Model != "gpt-4o-mini" || sum.Provider != "openai" {
		t.Errorf("unexpected model identity: %+v", sum)
	}
	if sum.EstimatedCost != 0.75 {
		t.Errorf("unexpected cost: %v", sum.EstimatedCost)
	}
}

func TestTokenUsageAdd_NilIsNoOp(t *testing.T) {
	t.Parallel()

	u := TokenUsage{Model: "m", PromptTokens: 5, TotalTokens: 5}
	if got := u.Add(nil); got != u {
		t.Errorf("Add(nil) = %+v, want %+v", got, u)
	}
}

func TestTokenUsageAdd_FirstModelWins(t *testing.T) {
	t.Parallel()

	first := &TokenUsage{Model: "model-a", Provider: "openai", TotalTokens: 10}
	second := &TokenUsage{Model: "model-b", Provider: "anthropic", TotalTokens: 20}

	sum := TokenUsage{}.Add(first).Add(second)
	if sum.Model != "model-a" || sum.Provider != "openai" {
		t.Errorf("expected first model to win, got %+v", sum)
	}
	if sum.TotalTokens != 30 {
		t.Errorf("expected counts summed, got %d", sum.TotalTokens)
	}
}

func TestTokenUsageAdd_Associative(t *testing.T) {
	t.Parallel()

	x := &TokenUsage{Model: "m", PromptTokens: 1, TotalTokens: 1}
	y := &TokenUsage{Model: "m", PromptTokens: 2, TotalTokens: 2}
	z := &TokenUsage{Model: "m", PromptTokens: 3, TotalTokens: 3}

	left := TokenUsage{}.Add(x).Add(y).Add(z)

	yz := y.Add(z)
	right := TokenUsage{}.Add(x).Add(&yz)

	if left != right {
		t.Errorf("grouping changed the total: %+v vs %+v", left, right)
	}
}

func TestCEFRLevelIsValid(t *testing.T) {
	t.Parallel()

	for _, l := range []CEFRLevel{CEFRLevelA1, CEFRLevelA2, CEFRLevelB1, CEFRLevelB2, CEFRLevelC1, CEFRLevelC2} {
		if !l.IsValid() {
			t.Errorf("expected %s to be valid", l)
		}
	}
	if CEFRLevel("D1").IsValid() {
		t.Error("expected D1 to be invalid")
	}
	if CEFRLevel("").IsValid() {
		t.Error("expected empty level to be invalid")
	}
}
