package engine

// ModelPrice holds per-1000-token prices for one model.
type ModelPrice struct {
	Input  float64
	Output float64
}

// PriceTable maps model identifiers to their prices. Lookups for an unknown
// model fall back to the Default entry. The table is read-only after
// construction and safe to share between planners.
type PriceTable struct {
	Models  map[string]ModelPrice
	Default string
}

// DefaultPriceTable returns the built-in DashScope price table.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		Models: map[string]ModelPrice{
			"qwen-flash": {Input: 0.0003, Output: 0.0006},
			"qwen-plus":  {Input: 0.008, Output: 0.008},
			"qwen-max":   {Input: 0.04, Output: 0.12},
		},
		Default: "qwen-flash",
	}
}

// Cost computes the monetary cost of one call from its usage report.
// The function is pure: unknown models use the default entry rather than
// failing, and identical inputs always produce identical results.
func (t PriceTable) Cost(model string, promptTokens, completionTokens int) float64 {
	price, ok := t.Models[model]
	if !ok {
		price = t.Models[t.Default]
	}
	inputCost := float64(promptTokens) / 1000.0 * price.Input
	outputCost := float64(completionTokens) / 1000.0 * price.Output
	return inputCost + outputCost
}
