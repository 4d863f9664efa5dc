// Package feed defines the boundary to the external data-fetch layer. The
// engine consumes raw indicator values through the Source interface; how
// those values are obtained is not this module's concern.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// Source supplies the current raw value per enabled indicator.
type Source interface {
	Fetch(ctx context.Context) (map[string]float64, error)
}

// StaticSource serves fixed raw values, for single-shot analysis runs and
// tests.
type StaticSource struct {
	values map[string]float64
}

func NewStaticSource(values map[string]float64) *StaticSource {
	copied := make(map[string]float64, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticSource{values: copied}
}

func (s *StaticSource) Fetch(ctx context.Context) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

// ResilientSource wraps another Source with a circuit breaker and serves the
// last known good values while the breaker is open or a fetch fails, so a
// flaky upstream never aborts a cycle.
type ResilientSource struct {
	inner   Source
	breaker *gobreaker.CircuitBreaker

	mu   sync.RWMutex
	last map[string]float64
}

func NewResilientSource(name string, inner Source) *ResilientSource {
	return &ResilientSource{
		inner: inner,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 2 * time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("source", name).Str("from", from.String()).Str("to", to.String()).Msg("feed breaker state change")
			},
		}),
	}
}

func (s *ResilientSource) Fetch(ctx context.Context) (map[string]float64, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.inner.Fetch(ctx)
	})
	if err != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.last == nil {
			return nil, fmt.Errorf("fetch failed with no cached values: %w", err)
		}
		log.Warn().Err(err).Msg("fetch failed, serving last known values")
		return s.last, nil
	}

	values := result.(map[string]float64)
	s.mu.Lock()
	s.last = values
	s.mu.Unlock()
	return values, nil
}
