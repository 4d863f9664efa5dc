package weights

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eulerlabs/euler/internal/profile"
)

// weightSumTolerance is the acceptable drift of a normalized weight vector
// from 1.0.
const weightSumTolerance = 1e-2

// Registry owns one instance of every strategy and dispatches weight
// calculation to the active method. A strategy failure never fails the
// cycle: the registry logs it and substitutes equal weights.
type Registry struct {
	mu         sync.RWMutex
	strategies map[Method]Strategy
	active     Method
	onFallback func()
}

// NewRegistry builds all strategies over a shared profiler. The static
// weight table override may be nil. The profiler may not be nil: the
// statistical and ensemble strategies profile through it.
func NewRegistry(profiler *profile.Profiler, staticTable map[string]float64) *Registry {
	base := map[Method]Strategy{
		EqualWeight:        NewEqualWeightStrategy(),
		LinearStatic:       NewLinearStaticStrategy(staticTable),
		RiskProportional:   NewRiskProportionalStrategy(),
		VolatilityAdjusted: NewVolatilityAdjustedStrategy(),
		MomentumBased:      NewMomentumBasedStrategy(profiler),
		StatisticalDynamic: NewStatisticalDynamicStrategy(profiler),
	}

	strategies := make(map[Method]Strategy, len(base)+4)
	for m, s := range base {
		strategies[m] = s
	}
	strategies[AdaptiveEnsemble] = NewAdaptiveEnsembleStrategy(base)
	strategies[MLStacking] = NewMLEnsembleStrategy(Stacking, base)
	strategies[MLVoting] = NewMLEnsembleStrategy(Voting, base)
	strategies[MLBlending] = NewMLEnsembleStrategy(Blending, base)

	r := &Registry{
		strategies: strategies,
		active:     StatisticalDynamic,
	}
	log.Info().Int("strategies", len(strategies)).Str("active", r.active.String()).Msg("weight registry initialized")
	return r
}

// SetFallbackHook registers a callback invoked whenever a weight
// computation degrades to equal weights.
func (r *Registry) SetFallbackHook(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFallback = fn
}

func (r *Registry) fellBack() {
	r.mu.RLock()
	fn := r.onFallback
	r.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// SetActive switches the active weighting method at runtime. Profiler state
// is untouched.
func (r *Registry) SetActive(m Method) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.strategies[m]; !ok {
		return fmt.Errorf("unknown weighting method: %s", m)
	}
	if m != r.active {
		log.Info().Str("from", r.active.String()).Str("to", m.String()).Msg("weighting method changed")
	}
	r.active = m
	return nil
}

// Active returns the currently selected method.
func (r *Registry) Active() Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// CalculateWeights runs the active strategy. Any failure — returned error,
// panic, or an invalid weight vector — degrades to equal weights over the
// current indicator set.
func (r *Registry) CalculateWeights(scores map[string]float64) map[string]float64 {
	r.mu.RLock()
	strategy := r.strategies[r.active]
	r.mu.RUnlock()

	weights := r.calculate(strategy, scores)
	if err := Validate(weights, len(scores)); err != nil {
		log.Warn().Err(err).Str("strategy", strategy.Name()).Msg("invalid weight vector, falling back to equal weights")
		r.fellBack()
		return equalWeights(scores)
	}
	return weights
}

func (r *Registry) calculate(strategy Strategy, scores map[string]float64) (weights map[string]float64) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Warn().Interface("panic", rec).Str("strategy", strategy.Name()).Msg("strategy panicked, falling back to equal weights")
			r.fellBack()
			weights = equalWeights(scores)
		}
	}()

	weights, err := strategy.CalculateWeights(scores)
	if err != nil {
		log.Warn().Err(err).Str("strategy", strategy.Name()).Msg("strategy failed, falling back to equal weights")
		r.fellBack()
		return equalWeights(scores)
	}
	return weights
}

// Validate checks a weight vector: non-negative entries, expected size, and
// a sum within tolerance of 1.0 (empty vectors are valid for empty inputs).
func Validate(weights map[string]float64, expected int) error {
	if len(weights) != expected {
		return fmt.Errorf("weight vector has %d entries, expected %d", len(weights), expected)
	}
	if len(weights) == 0 {
		return nil
	}
	total := 0.0
	for name, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("weight for %s is invalid: %f", name, w)
		}
		total += w
	}
	if math.Abs(total-1.0) > weightSumTolerance {
		return fmt.Errorf("weights sum to %.4f, expected 1.0", total)
	}
	return nil
}

// Methods returns every registered method in a stable order.
func (r *Registry) Methods() []Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	methods := make([]Method, 0, len(r.strategies))
	for m := range r.strategies {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	return methods
}

// Describe returns the Info for a method.
func (r *Registry) Describe(m Method) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	strategy, ok := r.strategies[m]
	if !ok {
		return Info{}, fmt.Errorf("unknown weighting method: %s", m)
	}
	return strategy.Describe(), nil
}
