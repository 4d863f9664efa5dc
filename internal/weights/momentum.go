package weights

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/profile"
)

// MomentumBasedStrategy emphasizes indicators whose risk scores are
// accelerating. Momentum blends the most recent score change with the
// trend strength (correlation of the history against its time index).
//
// Real profiler history is preferred once an indicator has accumulated
// observations; the seeded tables only cover cold starts.
type MomentumBasedStrategy struct {
	profiler *profile.Profiler
	seed     map[string][]float64
}

func NewMomentumBasedStrategy(profiler *profile.Profiler) *MomentumBasedStrategy {
	return &MomentumBasedStrategy{
		profiler: profiler,
		seed: map[string][]float64{
			indicator.BuffettIndicator:    {95, 98, 100, 100, 100},
			indicator.PutCallRatio:        {65, 68, 70, 72, 70},
			indicator.SkewIndex:           {85, 90, 95, 100, 100},
			indicator.NearTermStressRatio: {40, 35, 32, 30, 32},
			indicator.ThreeMonthTermSlope: {50, 48, 46, 45, 46},
			indicator.SixMonthTermSlope:   {35, 32, 30, 29, 30},
		},
	}
}

func (s *MomentumBasedStrategy) Name() string { return "Momentum Based" }

// recentHistory returns the score series to measure momentum over, current
// score last.
func (s *MomentumBasedStrategy) recentHistory(name string, current float64) []float64 {
	if s.profiler != nil {
		if p := s.profiler.Get(name); p != nil && p.HistoryLen() >= 2 {
			hist := p.History()
			if len(hist) > 5 {
				hist = hist[len(hist)-5:]
			}
			return hist
		}
	}

	seed, ok := s.seed[name]
	if !ok {
		seed = []float64{current, current, current}
	}
	if len(seed) > 4 {
		seed = seed[len(seed)-4:]
	}
	return append(append([]float64(nil), seed...), current)
}

// momentum scores a history: 0.6 x last change + 0.4 x scaled trend strength.
func momentum(scores []float64) float64 {
	if len(scores) < 2 {
		return 0.0
	}
	recentChange := scores[len(scores)-1] - scores[len(scores)-2]

	trend := 0.0
	if len(scores) >= 3 {
		xs := make([]float64, len(scores))
		for i := range xs {
			xs[i] = float64(i)
		}
		if r := stat.Correlation(xs, scores, nil); !math.IsNaN(r) {
			trend = r
		}
	}

	return 0.6*recentChange + 0.4*20*trend
}

func (s *MomentumBasedStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	if len(scores) == 0 {
		return map[string]float64{}, nil
	}

	momenta := make(map[string]float64, len(scores))
	minM, maxM := math.Inf(1), math.Inf(-1)
	for name, current := range scores {
		m := momentum(s.recentHistory(name, current))
		momenta[name] = m
		minM = math.Min(minM, m)
		maxM = math.Max(maxM, m)
	}
	span := maxM - minM

	out := make(map[string]float64, len(scores))
	for name, current := range scores {
		momentumWeight := 1.0
		if span > 0 {
			normalized := (momenta[name] - minM) / span
			momentumWeight = 0.2 + 0.8*normalized
		}
		riskLevel := current / 100.0
		out[name] = momentumWeight * (0.7 + 0.3*riskLevel)
	}
	return normalize(out), nil
}

func (s *MomentumBasedStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Emphasizes indicators with accelerating risk scores. Strong upward momentum earns higher weight, catching emerging risks early; combined with current risk level for a forward-looking assessment.",
		Category:    "Dynamic",
		Complexity:  "Moderate",
	}
}
