package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the engine's Prometheus metrics.
type Registry struct {
	CompositeScore  prometheus.Gauge
	CycleDuration   prometheus.Histogram
	CyclesTotal     prometheus.Counter
	RegimeCycles    *prometheus.CounterVec
	ScoringErrors   prometheus.Counter
	StrategyFalls   prometheus.Counter
	TrackedProfiles prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates and registers all engine metrics on a private
// Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		CompositeScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "euler_composite_score",
			Help: "Most recent composite market risk score (0-100)",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "euler_cycle_duration_seconds",
			Help:    "Duration of a full compute cycle in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "euler_cycles_total",
			Help: "Total number of compute cycles",
		}),
		RegimeCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "euler_regime_cycles_total",
			Help: "Compute cycles per classified regime band",
		}, []string{"regime"}),
		ScoringErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "euler_scoring_errors_total",
			Help: "Raw readings that could not be scored and fell back to the neutral default",
		}),
		StrategyFalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "euler_strategy_fallbacks_total",
			Help: "Weight computations that degraded to equal weights",
		}),
		TrackedProfiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "euler_tracked_profiles",
			Help: "Number of indicator profiles currently tracked",
		}),
		registry: prometheus.NewRegistry(),
	}

	r.registry.MustRegister(
		r.CompositeScore,
		r.CycleDuration,
		r.CyclesTotal,
		r.RegimeCycles,
		r.ScoringErrors,
		r.StrategyFalls,
		r.TrackedProfiles,
	)
	return r
}

// Gatherer exposes the underlying registry for the HTTP handler.
func (r *Registry) Gatherer() *prometheus.Registry {
	return r.registry
}
