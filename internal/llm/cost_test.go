package llm

import "testing"

func TestStaticCostTable(t *testing.T) {
	t.Parallel()

	table := StaticCostTable{
		"test-model": {InputPerMTok: 1.0, OutputPerMTok: 2.0},
	}

	got := table.EstimateCost("test-model", 1_000_000, 500_000)
	if got != 2.0 {
		t.Errorf("EstimateCost = %v, want 2.0", got)
	}

	if got := table.EstimateCost("unknown-model", 1000, 1000); got != 0 {
		t.Errorf("expected 0 for unknown model, got %v", got)
	}
}

func TestDefaultCostTable(t *testing.T) {
	t.Parallel()

	table := DefaultCostTable()
	if _, ok := table["gpt-4o-mini"]; !ok {
		t.Error("expected gpt-4o-mini in the default table")
	}
	if cost := table.EstimateCost("gpt-4o-mini", 1000, 100); cost <= 0 {
		t.Errorf("expected positive cost, got %v", cost)
	}
}
