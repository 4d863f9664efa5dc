package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/profile"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)

	assert.Equal(t, StatisticalDynamic, r.Active())
	assert.Len(t, r.Methods(), 10)
}

func TestRegistrySetActive(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)

	require.NoError(t, r.SetActive(MomentumBased))
	assert.Equal(t, MomentumBased, r.Active())

	err := r.SetActive(Method(99))
	assert.Error(t, err)
	assert.Equal(t, MomentumBased, r.Active(), "failed switch leaves the active method unchanged")
}

func TestRegistryAllStrategiesProduceValidWeights(t *testing.T) {
	pr := profile.NewProfiler()
	pr.Sync([]string{"a", "b", "c"})
	for i := 0; i < 12; i++ {
		pr.Update(map[string]float64{"a": 40 + float64(i), "b": 60 - float64(i), "c": 50})
	}

	r := NewRegistry(pr, nil)
	scores := map[string]float64{"a": 52, "b": 48, "c": 50}

	for _, m := range r.Methods() {
		t.Run(m.String(), func(t *testing.T) {
			require.NoError(t, r.SetActive(m))
			out := r.CalculateWeights(scores)
			require.Len(t, out, len(scores))
			assert.InDelta(t, 1.0, sumWeights(t, out), weightSumTolerance)
			assert.NoError(t, Validate(out, len(scores)))
		})
	}
}

// A score set mixing table-known and unknown indicators must keep the
// static weights, not trip size validation into the equal-weight fallback.
func TestRegistryLinearStaticMixedIndicators(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)
	require.NoError(t, r.SetActive(LinearStatic))

	out := r.CalculateWeights(map[string]float64{
		indicator.BuffettIndicator: 85,
		indicator.PutCallRatio:     65,
		"^VIX":                     55,
	})
	require.Len(t, out, 3)
	assert.InDelta(t, 0.25/0.45, out[indicator.BuffettIndicator], 1e-9)
	assert.InDelta(t, 0.20/0.45, out[indicator.PutCallRatio], 1e-9)
	require.Contains(t, out, "^VIX")
	assert.Zero(t, out["^VIX"])
}

func TestRegistryEmptyScores(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)
	out := r.CalculateWeights(map[string]float64{})
	assert.Empty(t, out)
}

type panickingStrategy struct{}

func (panickingStrategy) Name() string { return "Panicking" }
func (panickingStrategy) CalculateWeights(map[string]float64) (map[string]float64, error) {
	panic("boom")
}
func (panickingStrategy) Describe() Info { return Info{Name: "Panicking"} }

type invalidStrategy struct{}

func (invalidStrategy) Name() string { return "Invalid" }
func (invalidStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(scores))
	for name := range scores {
		out[name] = -1.0
	}
	return out, nil
}
func (invalidStrategy) Describe() Info { return Info{Name: "Invalid"} }

func TestRegistryRecoversFromPanic(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)
	r.strategies[Method(50)] = panickingStrategy{}
	require.NoError(t, r.SetActive(Method(50)))

	out := r.CalculateWeights(map[string]float64{"a": 40, "b": 60})
	assert.InDelta(t, 0.5, out["a"], 1e-9)
	assert.InDelta(t, 0.5, out["b"], 1e-9)
}

func TestRegistryRejectsInvalidVector(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)
	r.strategies[Method(51)] = invalidStrategy{}
	require.NoError(t, r.SetActive(Method(51)))

	out := r.CalculateWeights(map[string]float64{"a": 40, "b": 60})
	assert.InDelta(t, 0.5, out["a"], 1e-9)
	assert.InDelta(t, 0.5, out["b"], 1e-9)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(map[string]float64{}, 0))
	assert.NoError(t, Validate(map[string]float64{"a": 0.5, "b": 0.5}, 2))
	assert.NoError(t, Validate(map[string]float64{"a": 0.505, "b": 0.5}, 2), "within tolerance")

	assert.Error(t, Validate(map[string]float64{"a": 1.0}, 2), "wrong size")
	assert.Error(t, Validate(map[string]float64{"a": -0.1, "b": 1.1}, 2), "negative entry")
	assert.Error(t, Validate(map[string]float64{"a": 0.3, "b": 0.3}, 2), "sum too low")
}

func TestRegistryDescribe(t *testing.T) {
	r := NewRegistry(profile.NewProfiler(), nil)

	info, err := r.Describe(StatisticalDynamic)
	require.NoError(t, err)
	assert.Equal(t, "Statistical Dynamic", info.Name)
	assert.NotEmpty(t, info.Description)
	assert.NotEmpty(t, info.Category)

	_, err = r.Describe(Method(99))
	assert.Error(t, err)
}
