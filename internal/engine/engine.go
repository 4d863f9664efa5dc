// Package engine ties the profiler, weighting strategies, and aggregator
// into the single compute call the rest of the system uses.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eulerlabs/euler/internal/composite"
	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/metrics"
	"github.com/eulerlabs/euler/internal/profile"
	"github.com/eulerlabs/euler/internal/weights"
)

// Engine computes composite market risk from per-indicator scores. One
// mutex guards the whole update + weight + aggregate sequence, so a weight
// calculation never observes a half-updated profiler.
type Engine struct {
	mu         sync.Mutex
	registry   *indicator.Registry
	profiler   *profile.Profiler
	strategies *weights.Registry
	aggregator *composite.Aggregator
	metrics    *metrics.Registry

	lastResult *composite.Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics attaches a Prometheus metrics registry.
func WithMetrics(m *metrics.Registry) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithStaticWeights overrides the linear-static strategy's weight table.
func WithStaticWeights(table map[string]float64) Option {
	return func(e *Engine) {
		e.strategies = weights.NewRegistry(e.profiler, table)
	}
}

// New constructs an engine over the given indicator registry. All state is
// owned by the returned value; nothing is shared process-wide.
func New(registry *indicator.Registry, opts ...Option) *Engine {
	profiler := profile.NewProfiler()
	e := &Engine{
		registry:   registry,
		profiler:   profiler,
		strategies: weights.NewRegistry(profiler, nil),
		aggregator: composite.NewAggregator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics != nil {
		e.strategies.SetFallbackHook(e.metrics.StrategyFalls.Inc)
	}
	return e
}

// SetStrategy switches the active weighting method. Profiler state is
// preserved across switches.
func (e *Engine) SetStrategy(m weights.Method) error {
	return e.strategies.SetActive(m)
}

// Strategy returns the active weighting method.
func (e *Engine) Strategy() weights.Method {
	return e.strategies.Active()
}

// Strategies exposes the weight registry for listings.
func (e *Engine) Strategies() *weights.Registry {
	return e.strategies
}

// Compute runs one full cycle over the given indicator scores: profiler
// sync + update, weight calculation with the active strategy, and
// aggregation into a classified result. Safe for concurrent callers; calls
// are serialized.
func (e *Engine) Compute(scores map[string]float64) *composite.Result {
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.profiler.Sync(e.registry.Enabled())
	e.profiler.Update(scores)

	weightVector := e.strategies.CalculateWeights(scores)

	result := e.aggregator.Aggregate(scores, weightVector, e.strategies.Active().String(), time.Now())
	e.lastResult = result

	e.observe(result, time.Since(start))

	log.Info().
		Float64("score", result.Score).
		Str("regime", result.Regime.Label).
		Str("strategy", result.Strategy).
		Int("indicators", len(scores)).
		Msg("cycle complete")

	return result
}

// LastResult returns the most recent cycle's result, or nil before the
// first cycle.
func (e *Engine) LastResult() *composite.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastResult
}

// Profiler exposes the profiler for inspection (status endpoints, tests).
func (e *Engine) Profiler() *profile.Profiler {
	return e.profiler
}

func (e *Engine) observe(result *composite.Result, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.CompositeScore.Set(result.Score)
	e.metrics.CycleDuration.Observe(elapsed.Seconds())
	e.metrics.CyclesTotal.Inc()
	e.metrics.RegimeCycles.WithLabelValues(result.Regime.Label).Inc()
	e.metrics.TrackedProfiles.Set(float64(e.profiler.Len()))
}
