package llm

// CostEstimator turns token counts into an estimated USD cost. Unknown models
// cost zero rather than erroring, so a renamed model never breaks a lookup.
type CostEstimator interface {
	EstimateCost(model string, promptTokens, completionTokens int) float64
}

// ModelPrice is the USD price per million tokens for one model.
type ModelPrice struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// StaticCostTable is a CostEstimator backed by a caller-owned price table.
type StaticCostTable map[string]ModelPrice

// EstimateCost implements CostEstimator. Models absent from the table return 0.
func (t StaticCostTable) EstimateCost(model string, promptTokens, completionTokens int) float64 {
	price, ok := t[model]
	if !ok {
		return 0
	}
	return float64(promptTokens)/1_000_000*price.InputPerMTok +
		float64(completionTokens)/1_000_000*price.OutputPerMTok
}

// DefaultCostTable lists the models the service is commonly configured with.
// Callers can override it wholesale via config.
func DefaultCostTable() StaticCostTable {
	return StaticCostTable{
		"gpt-4o-mini":                 {InputPerMTok: 0.15, OutputPerMTok: 0.60},
		"gpt-4o":                      {InputPerMTok: 2.50, OutputPerMTok: 10.00},
		"gpt-4.1-mini":                {InputPerMTok: 0.40, OutputPerMTok: 1.60},
		"claude-3-5-haiku-latest":     {InputPerMTok: 0.80, OutputPerMTok: 4.00},
		"claude-sonnet-4-5":           {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	}
}
