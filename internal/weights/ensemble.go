package weights

import (
	"gonum.org/v1/gonum/stat"

	"github.com/eulerlabs/euler/internal/regime"
)

// AdaptiveEnsembleStrategy is a meta-strategy: it detects the market phase
// from the plain mean of current scores and blends the sub-strategies with a
// phase-specific mix. Crisis conditions lean on risk-proportional and
// momentum weighting; euphoria adds volatility-adjusted stability.
type AdaptiveEnsembleStrategy struct {
	sub   map[Method]Strategy
	mixes map[regime.Phase]map[Method]float64
}

// NewAdaptiveEnsembleStrategy wires the ensemble over shared sub-strategy
// instances so the momentum and statistical strategies see the same profiler
// state as the standalone registry entries.
func NewAdaptiveEnsembleStrategy(sub map[Method]Strategy) *AdaptiveEnsembleStrategy {
	return &AdaptiveEnsembleStrategy{
		sub: sub,
		mixes: map[regime.Phase]map[Method]float64{
			regime.Euphoria: {
				RiskProportional:   0.4, // emphasize any risk signal
				MomentumBased:      0.3,
				VolatilityAdjusted: 0.2,
				LinearStatic:       0.1,
			},
			regime.Normal: {
				StatisticalDynamic: 0.3,
				LinearStatic:       0.25,
				VolatilityAdjusted: 0.25,
				RiskProportional:   0.2,
			},
			regime.Stress: {
				MomentumBased:      0.35, // catch accelerating risks
				RiskProportional:   0.3,
				StatisticalDynamic: 0.2,
				VolatilityAdjusted: 0.15,
			},
			regime.Crisis: {
				RiskProportional: 0.4,
				MomentumBased:    0.3,
				LinearStatic:     0.2,
				EqualWeight:      0.1, // diversification floor
			},
		},
	}
}

func (s *AdaptiveEnsembleStrategy) Name() string { return "Adaptive Ensemble" }

// Phase determines the blending regime from the unweighted score mean.
func (s *AdaptiveEnsembleStrategy) Phase(scores map[string]float64) regime.Phase {
	if len(scores) == 0 {
		return regime.Normal
	}
	values := make([]float64, 0, len(scores))
	for _, v := range scores {
		values = append(values, v)
	}
	return regime.PhaseForMeanScore(stat.Mean(values, nil))
}

func (s *AdaptiveEnsembleStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}

	mix := s.mixes[s.Phase(scores)]

	combined := make(map[string]float64, len(scores))
	for method, mixWeight := range mix {
		strategy, ok := s.sub[method]
		if !ok {
			continue
		}
		sw, err := strategy.CalculateWeights(scores)
		if err != nil {
			sw = equalWeights(scores)
		}
		for name := range scores {
			combined[name] += mixWeight * sw[name]
		}
	}

	return normalize(combined), nil
}

func (s *AdaptiveEnsembleStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Meta-strategy blending the other approaches with a phase-conditioned mix: risk-proportional and momentum dominate in crisis, a balanced statistical blend carries normal conditions.",
		Category:    "Adaptive",
		Complexity:  "Advanced",
	}
}
