package weights

// RiskProportionalStrategy weights each indicator by its share of total
// current risk, so currently elevated signals dominate the composite. Falls
// back to equal weights when every score is zero.
type RiskProportionalStrategy struct{}

func NewRiskProportionalStrategy() *RiskProportionalStrategy {
	return &RiskProportionalStrategy{}
}

func (s *RiskProportionalStrategy) Name() string { return "Risk Proportional" }

func (s *RiskProportionalStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}

	total := 0.0
	for _, score := range scores {
		total += score
	}
	if total <= 0 {
		return equalWeights(scores), nil
	}

	out := make(map[string]float64, len(scores))
	for name, score := range scores {
		out[name] = score / total
	}
	return out, nil
}

func (s *RiskProportionalStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Weights proportional to current risk scores: higher risk, higher weight. Effective in crisis periods when individual indicators spike to extremes.",
		Category:    "Dynamic",
		Complexity:  "Simple",
	}
}
