package weights

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// MLVariant selects how the ML ensemble blends its sub-strategies before
// (and after) the regression model is trained.
type MLVariant string

const (
	Stacking MLVariant = "stacking" // hierarchical primary/secondary blend
	Voting   MLVariant = "voting"   // democratic average of diverse strategies
	Blending MLVariant = "blending" // condition-weighted mix
)

const (
	minTrainSamples = 50
	retrainEvery    = 25
	ridgeLambda     = 1.0
)

// blendAlphas are the mixing ratios tried when searching for the strategy
// pair whose implied composite best matches the model's prediction.
var blendAlphas = [...]float64{0.7, 0.8, 0.9}

// MLEnsembleStrategy learns which strategy blend to use. Each cycle it
// extracts a feature vector from the score distribution and records the
// realized composite as the training target; once enough samples exist a
// ridge regressor predicts the target composite and the strategy searches
// pairwise convex blends of sub-strategy weight vectors for the closest
// match. Until the model is trained (and whenever prediction fails) a
// deterministic phase-conditioned heuristic carries the weights, so weight
// computation never blocks on learning.
type MLEnsembleStrategy struct {
	variant MLVariant
	sub     map[Method]Strategy

	model    *ridgeModel
	trained  bool
	features [][]float64
	targets  []float64
}

func NewMLEnsembleStrategy(variant MLVariant, sub map[Method]Strategy) *MLEnsembleStrategy {
	return &MLEnsembleStrategy{
		variant: variant,
		sub:     sub,
		model:   newRidgeModel(ridgeLambda),
	}
}

func (s *MLEnsembleStrategy) Name() string {
	return fmt.Sprintf("ML Adaptive Ensemble (%s)", s.variant)
}

// extractFeatures summarizes the current score distribution: mean, spread,
// extremes, crisis/euphoria counts, skewness, and one-step momentum of the
// mean.
func (s *MLEnsembleStrategy) extractFeatures(scores map[string]float64) []float64 {
	values := make([]float64, 0, len(scores))
	for _, v := range scores {
		values = append(values, v)
	}

	mean := stat.Mean(values, nil)
	std := 0.0
	if len(values) > 1 {
		std = stat.PopStdDev(values, nil)
	}
	maxV, minV := values[0], values[0]
	crisisCount, euphoriaCount := 0.0, 0.0
	for _, v := range values {
		maxV = math.Max(maxV, v)
		minV = math.Min(minV, v)
		if v > 70 {
			crisisCount++
		}
		if v < 30 {
			euphoriaCount++
		}
	}

	skew := 0.0
	if len(values) > 2 && std > 0 {
		skew = stat.Skew(values, nil)
	}

	meanMomentum := 0.0
	if len(s.features) > 0 {
		meanMomentum = mean - s.features[len(s.features)-1][0]
	}

	return []float64{mean, std, maxV, minV, crisisCount, euphoriaCount, skew, meanMomentum}
}

// subPredictions collects weight vectors from every non-ML strategy.
// Strategies that fail are skipped; the caller handles the empty case.
func (s *MLEnsembleStrategy) subPredictions(scores map[string]float64) map[Method]map[string]float64 {
	methods := []Method{EqualWeight, LinearStatic, RiskProportional, VolatilityAdjusted, MomentumBased, StatisticalDynamic}

	preds := make(map[Method]map[string]float64, len(methods))
	for _, m := range methods {
		strategy, ok := s.sub[m]
		if !ok {
			continue
		}
		w, err := strategy.CalculateWeights(scores)
		if err != nil || len(w) == 0 {
			continue
		}
		preds[m] = w
	}
	return preds
}

func (s *MLEnsembleStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}

	features := s.extractFeatures(scores)

	final := s.predictOptimalWeights(scores, features)
	if final == nil {
		final = s.heuristicBlend(scores)
	}

	// Record the realized composite as the training target for this
	// feature vector, then retrain periodically.
	composite := 0.0
	for name, score := range scores {
		composite += score * final[name]
	}
	s.features = append(s.features, features)
	s.targets = append(s.targets, composite)

	if len(s.features)%retrainEvery == 0 {
		s.train()
	}

	return final, nil
}

// train fits the ridge model once enough samples have accumulated.
func (s *MLEnsembleStrategy) train() {
	if len(s.features) < minTrainSamples {
		return
	}
	if err := s.model.fit(s.features, s.targets); err != nil {
		log.Warn().Err(err).Str("strategy", s.Name()).Msg("ensemble model training failed")
		return
	}
	s.trained = true
	log.Debug().Int("samples", len(s.features)).Str("strategy", s.Name()).Msg("ensemble model retrained")
}

// predictOptimalWeights searches pairwise convex blends of sub-strategy
// vectors for the blend whose implied composite best matches the model's
// predicted target. Returns nil when the model is untrained or no candidate
// exists, deferring to the heuristic.
func (s *MLEnsembleStrategy) predictOptimalWeights(scores map[string]float64, features []float64) map[string]float64 {
	if !s.trained {
		return nil
	}

	target := s.model.predict(features)
	preds := s.subPredictions(scores)
	if len(preds) == 0 {
		return nil
	}

	var best map[string]float64
	bestErr := math.Inf(1)

	for mainMethod, mainWeights := range preds {
		for supportMethod, supportWeights := range preds {
			if mainMethod == supportMethod {
				continue
			}
			for _, alpha := range blendAlphas {
				combined := make(map[string]float64, len(scores))
				implied := 0.0
				for name, score := range scores {
					w := alpha*mainWeights[name] + (1-alpha)*supportWeights[name]
					combined[name] = w
					implied += score * w
				}
				if diff := math.Abs(implied - target); diff < bestErr {
					bestErr = diff
					best = combined
				}
			}
		}
	}

	if best == nil {
		return nil
	}
	return normalize(best)
}

// heuristicBlend is the deterministic fallback: a fixed, variant-specific
// mix of sub-strategies conditioned on the average risk level.
func (s *MLEnsembleStrategy) heuristicBlend(scores map[string]float64) map[string]float64 {
	values := make([]float64, 0, len(scores))
	for _, v := range scores {
		values = append(values, v)
	}
	avgRisk := stat.Mean(values, nil)

	preds := s.subPredictions(scores)
	if len(preds) == 0 {
		return equalWeights(scores)
	}

	var mix map[Method]float64
	switch s.variant {
	case Stacking:
		if avgRisk > 70 {
			mix = map[Method]float64{RiskProportional: 0.5, StatisticalDynamic: 0.3, MomentumBased: 0.2}
		} else {
			mix = map[Method]float64{StatisticalDynamic: 0.4, LinearStatic: 0.35, VolatilityAdjusted: 0.25}
		}
	case Voting:
		mix = map[Method]float64{StatisticalDynamic: 0.25, LinearStatic: 0.25, RiskProportional: 0.25, MomentumBased: 0.25}
	default: // Blending
		switch {
		case avgRisk > 75:
			mix = map[Method]float64{RiskProportional: 0.4, MomentumBased: 0.3, StatisticalDynamic: 0.2, VolatilityAdjusted: 0.1}
		case avgRisk < 30:
			mix = map[Method]float64{StatisticalDynamic: 0.35, RiskProportional: 0.25, MomentumBased: 0.25, LinearStatic: 0.15}
		default:
			mix = map[Method]float64{StatisticalDynamic: 0.3, LinearStatic: 0.25, VolatilityAdjusted: 0.25, RiskProportional: 0.2}
		}
	}

	combined := make(map[string]float64, len(scores))
	for method, mixWeight := range mix {
		sw, ok := preds[method]
		if !ok {
			continue
		}
		for name := range scores {
			combined[name] += mixWeight * sw[name]
		}
	}
	return normalize(combined)
}

// SampleCount reports how many training samples have been recorded.
func (s *MLEnsembleStrategy) SampleCount() int {
	return len(s.features)
}

// Trained reports whether the regression model is fitted.
func (s *MLEnsembleStrategy) Trained() bool {
	return s.trained
}

func (s *MLEnsembleStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Learns optimal strategy blends from accumulated cycles: a ridge regressor predicts the target composite from distribution features and the closest pairwise blend of sub-strategies is selected, with a deterministic heuristic fallback before training completes.",
		Category:    "ML-Adaptive",
		Complexity:  "Expert",
	}
}
