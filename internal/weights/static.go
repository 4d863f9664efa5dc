package weights

import "github.com/eulerlabs/euler/internal/indicator"

// LinearStaticStrategy uses fixed expert-judgment weights. Indicators absent
// from the table get an explicit zero weight after the known entries are
// renormalized; if none of the present indicators are known, the strategy
// degrades to equal weights.
type LinearStaticStrategy struct {
	table map[string]float64
}

// NewLinearStaticStrategy builds the strategy with the canonical weight
// table. A non-nil override replaces it (configuration surface for static
// weight tables).
func NewLinearStaticStrategy(override map[string]float64) *LinearStaticStrategy {
	table := override
	if table == nil {
		table = map[string]float64{
			indicator.BuffettIndicator:    0.25, // structural overvaluation
			indicator.PutCallRatio:        0.20, // sentiment and positioning
			indicator.NearTermStressRatio: 0.20, // immediate volatility stress
			indicator.SkewIndex:           0.15, // tail risk pricing
			indicator.ThreeMonthTermSlope: 0.12, // medium-term term structure
			indicator.SixMonthTermSlope:   0.08, // long-term term structure
		}
	}
	return &LinearStaticStrategy{table: table}
}

func (s *LinearStaticStrategy) Name() string { return "Linear Static" }

func (s *LinearStaticStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}

	available := make(map[string]float64)
	for name := range scores {
		if w, ok := s.table[name]; ok {
			available[name] = w
		}
	}
	if len(available) == 0 {
		return equalWeights(scores), nil
	}

	out := normalize(available)
	for name := range scores {
		if _, ok := out[name]; !ok {
			out[name] = 0.0
		}
	}
	return out, nil
}

func (s *LinearStaticStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Fixed weights from expert judgment and historical analysis, constant regardless of market conditions. Structural valuation carries the most weight, term structure the least.",
		Category:    "Static",
		Complexity:  "Simple",
	}
}
