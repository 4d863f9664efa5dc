package weights

import (
	"math"

	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/profile"
	"github.com/eulerlabs/euler/internal/regime"
)

// Tunables for the statistical weighting pipeline. The correlation-damping
// pair (redundantCorrelation, similarScoreDelta) flags indicator pairs that
// are both correlated and currently telling the same story; the score delta
// is an absolute threshold on the 0-100 scale.
const (
	redundantCorrelation = 0.6
	similarScoreDelta    = 15.0
	minBaseWeight        = 0.1
)

// StatisticalDynamicStrategy derives weights from the profiler's live
// statistics: crisis sensitivity, information uniqueness, signal quality,
// and data confidence form a base weight, which is then shaped by the
// detected market phase, damped for redundant correlated pairs, and scaled
// by reliability multipliers.
type StatisticalDynamicStrategy struct {
	profiler *profile.Profiler
}

func NewStatisticalDynamicStrategy(profiler *profile.Profiler) *StatisticalDynamicStrategy {
	return &StatisticalDynamicStrategy{profiler: profiler}
}

func (s *StatisticalDynamicStrategy) Name() string { return "Statistical Dynamic" }

func (s *StatisticalDynamicStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}
	if s.profiler == nil || s.profiler.Len() == 0 {
		return equalWeights(scores), nil
	}

	phase := s.profiler.DetectPhase(scores)

	weights := s.baseWeights(scores)
	s.applyPhaseMultipliers(weights, phase, scores)
	s.applyInformationContent(weights, scores)
	s.applyQualityMultipliers(weights)

	return normalize(weights), nil
}

// baseWeights combines crisis sensitivity (30%), information uniqueness
// (30%), signal quality (20%) and data confidence (20%), floored at
// minBaseWeight. Indicators without a profile yet get a moderate 0.5.
func (s *StatisticalDynamicStrategy) baseWeights(scores map[string]float64) map[string]float64 {
	weights := make(map[string]float64, len(scores))
	for name := range scores {
		p := s.profiler.Get(name)
		if p == nil {
			weights[name] = 0.5
			continue
		}
		base := p.CrisisSensitivity*0.3 +
			p.Uniqueness*0.3 +
			p.SignalNoise*0.2 +
			math.Min(1.0, float64(p.Observations)/50.0)*0.2
		weights[name] = math.Max(minBaseWeight, base)
	}
	return weights
}

// applyPhaseMultipliers amplifies or damps categories by market phase:
// structural risk matters most in euphoria, sentiment and volatility
// structure dominate in stress and crisis, and long-term valuation recedes
// once a crisis is underway.
func (s *StatisticalDynamicStrategy) applyPhaseMultipliers(weights map[string]float64, phase regime.Phase, scores map[string]float64) {
	for name := range weights {
		p := s.profiler.Get(name)
		if p == nil {
			continue
		}
		score := scores[name]

		switch phase {
		case regime.Euphoria:
			switch {
			case p.Category == indicator.Structural:
				weights[name] *= 1.5
			case p.Category == indicator.Sentiment:
				weights[name] *= 0.8
			case score < 30: // low scores in euphoria are dangerous
				weights[name] *= 1.3
			}
		case regime.Stress:
			switch {
			case p.Category == indicator.Sentiment:
				weights[name] *= 1.4
			case p.Category == indicator.Volatility:
				weights[name] *= 1.3
			case score > 70:
				weights[name] *= 1.2
			}
		case regime.Crisis:
			switch {
			case p.Category == indicator.Volatility:
				weights[name] *= 1.5
			case p.Category == indicator.Sentiment:
				weights[name] *= 1.3
			case p.Category == indicator.Structural:
				weights[name] *= 0.7
			}
		}

		weights[name] *= 1.0 + p.RegimeSensitivity*0.2
	}
}

// applyInformationContent damps indicators that are strongly correlated with
// a partner currently reporting a similar score, and boosts unique
// information.
func (s *StatisticalDynamicStrategy) applyInformationContent(weights map[string]float64, scores map[string]float64) {
	for name := range weights {
		p := s.profiler.Get(name)
		if p == nil {
			continue
		}

		for other, corr := range p.Correlations {
			otherScore, present := scores[other]
			if !present || math.Abs(corr) <= redundantCorrelation {
				continue
			}
			if math.Abs(scores[name]-otherScore) < similarScoreDelta {
				weights[name] *= 1.0 - math.Abs(corr)*0.3
			}
		}

		weights[name] *= 1.0 + p.Uniqueness*0.2
	}
}

// applyQualityMultipliers scales by signal-to-noise [0.7,1.3], reliability
// [0.8,1.2], and data confidence [0.9,1.1].
func (s *StatisticalDynamicStrategy) applyQualityMultipliers(weights map[string]float64) {
	for name := range weights {
		p := s.profiler.Get(name)
		if p == nil {
			continue
		}
		weights[name] *= 0.7 + p.SignalNoise*0.6
		weights[name] *= 0.8 + p.Reliability*0.4
		confidence := math.Min(1.0, float64(p.Observations)/30.0)
		weights[name] *= 0.9 + confidence*0.2
	}
}

func (s *StatisticalDynamicStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Auto-discovery weighting driven by live statistical profiles: regime-sensitive category multipliers, cross-correlation redundancy damping, and signal-quality scaling. The most sophisticated single strategy.",
		Category:    "Adaptive",
		Complexity:  "Advanced",
	}
}
