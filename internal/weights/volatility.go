package weights

import "strings"

// VolatilityAdjustedStrategy favors stable indicators: each weight combines
// an inverse-volatility stability factor with current signal strength, so
// strong signals from low-noise indicators count the most.
type VolatilityAdjustedStrategy struct{}

func NewVolatilityAdjustedStrategy() *VolatilityAdjustedStrategy {
	return &VolatilityAdjustedStrategy{}
}

func (s *VolatilityAdjustedStrategy) Name() string { return "Volatility Adjusted" }

// estimateVolatility assigns a fixed volatility estimate per indicator
// family. Structural measures are the most stable, options-derived measures
// the noisiest.
func estimateVolatility(name string) float64 {
	switch {
	case strings.Contains(name, "Buffett"):
		return 0.15
	case strings.Contains(name, "6M"):
		return 0.20
	case strings.Contains(name, "Term Slope"):
		return 0.25
	case strings.Contains(name, "Stress"):
		return 0.35
	case strings.Contains(name, "Put/Call"):
		return 0.40
	case strings.Contains(name, "SKEW"):
		return 0.45
	default:
		return 0.30
	}
}

func (s *VolatilityAdjustedStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}

	out := make(map[string]float64, len(scores))
	for name, score := range scores {
		stability := 1.0 / (1.0 + estimateVolatility(name))
		signal := score / 100.0
		out[name] = stability * (0.5 + 0.5*signal)
	}
	return normalize(out), nil
}

func (s *VolatilityAdjustedStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Adjusts weights by volatility and signal stability: low-volatility indicators earn higher base weights, scaled by current signal strength, keeping noise from dominating the composite.",
		Category:    "Dynamic",
		Complexity:  "Moderate",
	}
}
