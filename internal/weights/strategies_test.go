package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/profile"
)

var canonicalScores = map[string]float64{
	indicator.BuffettIndicator:    85.0,
	indicator.PutCallRatio:        65.0,
	indicator.SkewIndex:           65.0,
	indicator.NearTermStressRatio: 33.0,
	indicator.ThreeMonthTermSlope: 50.0,
	indicator.SixMonthTermSlope:   30.0,
}

func TestEqualWeightStrategy(t *testing.T) {
	s := NewEqualWeightStrategy()

	out, err := s.CalculateWeights(canonicalScores)
	require.NoError(t, err)
	require.Len(t, out, len(canonicalScores))
	for name, w := range out {
		assert.InDelta(t, 1.0/6.0, w, 1e-9, name)
	}

	empty, err := s.CalculateWeights(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLinearStaticStrategy(t *testing.T) {
	s := NewLinearStaticStrategy(nil)

	out, err := s.CalculateWeights(canonicalScores)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sumWeights(t, out), 1e-9)

	// The canonical table sums to 1.0, so weights pass through unscaled.
	assert.InDelta(t, 0.25, out[indicator.BuffettIndicator], 1e-9)
	assert.InDelta(t, 0.08, out[indicator.SixMonthTermSlope], 1e-9)
}

func TestLinearStaticSubsetRenormalizes(t *testing.T) {
	s := NewLinearStaticStrategy(nil)

	out, err := s.CalculateWeights(map[string]float64{
		indicator.BuffettIndicator: 85.0,
		indicator.PutCallRatio:     65.0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.25/0.45, out[indicator.BuffettIndicator], 1e-9)
	assert.InDelta(t, 0.20/0.45, out[indicator.PutCallRatio], 1e-9)
}

func TestLinearStaticUnknownIndicators(t *testing.T) {
	s := NewLinearStaticStrategy(nil)

	// Nothing in the table: degrade to equal weights, zero for the
	// unknown name alongside known ones.
	out, err := s.CalculateWeights(map[string]float64{"a": 10, "b": 20})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out["a"], 1e-9)

	// Mixed sets keep every indicator in the vector: unknown names carry
	// an explicit zero alongside the renormalized known entries.
	mixed, err := s.CalculateWeights(map[string]float64{
		indicator.BuffettIndicator: 85.0,
		"Custom Gauge":             40.0,
	})
	require.NoError(t, err)
	require.Len(t, mixed, 2)
	require.Contains(t, mixed, "Custom Gauge")
	assert.InDelta(t, 1.0, mixed[indicator.BuffettIndicator], 1e-9)
	assert.Zero(t, mixed["Custom Gauge"])
}

func TestLinearStaticOverrideTable(t *testing.T) {
	s := NewLinearStaticStrategy(map[string]float64{"a": 3, "b": 1})

	out, err := s.CalculateWeights(map[string]float64{"a": 10, "b": 20})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, out["a"], 1e-9)
	assert.InDelta(t, 0.25, out["b"], 1e-9)
}

func TestRiskProportionalStrategy(t *testing.T) {
	s := NewRiskProportionalStrategy()

	out, err := s.CalculateWeights(map[string]float64{"a": 30, "b": 70})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, out["a"], 1e-9)
	assert.InDelta(t, 0.7, out["b"], 1e-9)
}

func TestRiskProportionalZeroScores(t *testing.T) {
	s := NewRiskProportionalStrategy()

	out, err := s.CalculateWeights(map[string]float64{"a": 0, "b": 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out["a"], 1e-9)
	assert.InDelta(t, 0.5, out["b"], 1e-9)
}

func TestVolatilityAdjustedStrategy(t *testing.T) {
	s := NewVolatilityAdjustedStrategy()

	// Equal scores: the structurally stable indicator outweighs the
	// noisy options-derived one.
	out, err := s.CalculateWeights(map[string]float64{
		indicator.BuffettIndicator: 60.0,
		indicator.SkewIndex:        60.0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sumWeights(t, out), 1e-9)
	assert.Greater(t, out[indicator.BuffettIndicator], out[indicator.SkewIndex])
}

func TestEstimateVolatility(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{indicator.BuffettIndicator, 0.15},
		{indicator.SixMonthTermSlope, 0.20},
		{indicator.ThreeMonthTermSlope, 0.25},
		{indicator.NearTermStressRatio, 0.35},
		{indicator.PutCallRatio, 0.40},
		{indicator.SkewIndex, 0.45},
		{"Custom Gauge", 0.30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, estimateVolatility(tt.name), tt.name)
	}
}

func TestMomentumBasedColdStart(t *testing.T) {
	s := NewMomentumBasedStrategy(profile.NewProfiler())

	out, err := s.CalculateWeights(canonicalScores)
	require.NoError(t, err)
	require.Len(t, out, len(canonicalScores))
	assert.InDelta(t, 1.0, sumWeights(t, out), 1e-9)
}

func TestMomentumFunction(t *testing.T) {
	assert.Zero(t, momentum(nil))
	assert.Zero(t, momentum([]float64{50}))

	// Two points: pure recent-change term.
	assert.InDelta(t, 0.6*10, momentum([]float64{40, 50}), 1e-9)

	// A clean rising series adds the full trend term.
	rising := momentum([]float64{10, 20, 30, 40, 50})
	assert.InDelta(t, 0.6*10+0.4*20*1.0, rising, 1e-9)

	falling := momentum([]float64{50, 40, 30, 20, 10})
	assert.Less(t, falling, 0.0)
}

func TestMomentumDegenerateSpan(t *testing.T) {
	s := NewMomentumBasedStrategy(profile.NewProfiler())

	// Unknown names all get flat seed histories, so every momentum is
	// zero and weights reduce to the risk-level factor.
	out, err := s.CalculateWeights(map[string]float64{"a": 0, "b": 100})
	require.NoError(t, err)
	assert.InDelta(t, 0.7/1.7, out["a"], 1e-9)
	assert.InDelta(t, 1.0/1.7, out["b"], 1e-9)
}

func TestMomentumPrefersProfilerHistory(t *testing.T) {
	pr := profile.NewProfiler()
	pr.Sync([]string{indicator.BuffettIndicator})
	pr.Update(map[string]float64{indicator.BuffettIndicator: 20})
	pr.Update(map[string]float64{indicator.BuffettIndicator: 80})

	s := NewMomentumBasedStrategy(pr)
	hist := s.recentHistory(indicator.BuffettIndicator, 85)
	assert.Equal(t, []float64{20, 80}, hist, "live history replaces the seed table")

	// Without observations the seed still carries the cold start.
	cold := NewMomentumBasedStrategy(profile.NewProfiler())
	seeded := cold.recentHistory(indicator.BuffettIndicator, 85)
	assert.Equal(t, []float64{98, 100, 100, 100, 85}, seeded)
}

func TestStatisticalDynamicEmptyProfiler(t *testing.T) {
	s := NewStatisticalDynamicStrategy(profile.NewProfiler())

	out, err := s.CalculateWeights(map[string]float64{"a": 40, "b": 60})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out["a"], 1e-9)
	assert.InDelta(t, 0.5, out["b"], 1e-9)

	nilProfiler := NewStatisticalDynamicStrategy(nil)
	out, err = nilProfiler.CalculateWeights(map[string]float64{"a": 40, "b": 60})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out["a"], 1e-9)
}

func TestStatisticalDynamicWithProfiles(t *testing.T) {
	pr := profile.NewProfiler()
	pr.Sync([]string{indicator.BuffettIndicator, indicator.PutCallRatio, indicator.SkewIndex})
	for i := 0; i < 30; i++ {
		pr.Update(map[string]float64{
			indicator.BuffettIndicator: 80 + float64(i%5),
			indicator.PutCallRatio:     60 + float64(i%7),
			indicator.SkewIndex:        55 + float64(i%3),
		})
	}

	s := NewStatisticalDynamicStrategy(pr)
	out, err := s.CalculateWeights(map[string]float64{
		indicator.BuffettIndicator: 85,
		indicator.PutCallRatio:     65,
		indicator.SkewIndex:        57,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 1.0, sumWeights(t, out), 1e-9)
	for name, w := range out {
		assert.Greater(t, w, 0.0, name)
	}
}

func TestStatisticalBaseWeightFloor(t *testing.T) {
	pr := profile.NewProfiler()
	pr.Sync([]string{"gauge"})
	pr.Update(map[string]float64{"gauge": 50})

	s := NewStatisticalDynamicStrategy(pr)
	base := s.baseWeights(map[string]float64{"gauge": 50, "fresh": 50})

	assert.GreaterOrEqual(t, base["gauge"], minBaseWeight)
	assert.Equal(t, 0.5, base["fresh"], "unprofiled indicators get a moderate base")
}

func TestAdaptiveEnsemblePhase(t *testing.T) {
	s := NewAdaptiveEnsembleStrategy(testSubStrategies())

	tests := []struct {
		scores map[string]float64
		want   string
	}{
		{map[string]float64{"a": 10, "b": 20}, "euphoria"},
		{map[string]float64{"a": 40, "b": 44}, "normal"},
		{map[string]float64{"a": 55, "b": 65}, "stress"},
		{map[string]float64{"a": 80, "b": 90}, "crisis"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Phase(tt.scores).String())
	}
}

func TestAdaptiveEnsembleWeights(t *testing.T) {
	s := NewAdaptiveEnsembleStrategy(testSubStrategies())

	for _, scores := range []map[string]float64{
		{"a": 10, "b": 20}, // euphoria mix
		canonicalScores,    // normal mix
		{"a": 60, "b": 65}, // stress mix
		{"a": 85, "b": 95}, // crisis mix
	} {
		out, err := s.CalculateWeights(scores)
		require.NoError(t, err)
		require.Len(t, out, len(scores))
		assert.InDelta(t, 1.0, sumWeights(t, out), 1e-9)
	}
}

func TestAdaptiveEnsembleMixesNormalized(t *testing.T) {
	s := NewAdaptiveEnsembleStrategy(testSubStrategies())
	for phase, mix := range s.mixes {
		total := 0.0
		for _, w := range mix {
			total += w
		}
		assert.InDelta(t, 1.0, total, 1e-9, "mix for phase %s", phase)
	}
}

// testSubStrategies builds the shared sub-strategy set over a fresh
// profiler, mirroring the registry wiring.
func testSubStrategies() map[Method]Strategy {
	pr := profile.NewProfiler()
	return map[Method]Strategy{
		EqualWeight:        NewEqualWeightStrategy(),
		LinearStatic:       NewLinearStaticStrategy(nil),
		RiskProportional:   NewRiskProportionalStrategy(),
		VolatilityAdjusted: NewVolatilityAdjustedStrategy(),
		MomentumBased:      NewMomentumBasedStrategy(pr),
		StatisticalDynamic: NewStatisticalDynamicStrategy(pr),
	}
}
