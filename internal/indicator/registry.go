package indicator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Canonical indicator names. The engine does not own data acquisition; these
// are the identifiers the external fetch layer reports values under.
const (
	BuffettIndicator    = "Buffett Indicator"
	PutCallRatio        = "Put/Call Ratio"
	SkewIndex           = "^SKEW"
	NearTermStressRatio = "Near-term Stress Ratio"
	ThreeMonthTermSlope = "3M Term Slope"
	SixMonthTermSlope   = "6M Term Slope"
)

// DefaultEnabled is the shipped indicator set.
func DefaultEnabled() []string {
	return []string{
		BuffettIndicator,
		PutCallRatio,
		SkewIndex,
		NearTermStressRatio,
		ThreeMonthTermSlope,
		SixMonthTermSlope,
	}
}

// Registry tracks which indicators participate in risk scoring. It is
// constructed by the caller and passed by reference; there is no process-wide
// instance.
type Registry struct {
	mu      sync.RWMutex
	enabled map[string]bool
}

// NewRegistry creates a registry with the given enabled set. An empty list
// enables the defaults.
func NewRegistry(enabled []string) *Registry {
	if len(enabled) == 0 {
		enabled = DefaultEnabled()
	}
	r := &Registry{enabled: make(map[string]bool, len(enabled))}
	for _, name := range enabled {
		r.enabled[name] = true
	}
	return r
}

// Enabled returns the enabled indicator names in a stable order.
func (r *Registry) Enabled() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.enabled))
	for name := range r.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEnabled reports whether the named indicator participates in scoring.
func (r *Registry) IsEnabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[name]
}

// Enable adds an indicator to the active set. New names are profiled from
// scratch on the next cycle.
func (r *Registry) Enable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled[name] {
		r.enabled[name] = true
		log.Info().Str("indicator", name).Str("category", Classify(name).String()).Msg("indicator enabled")
	}
}

// Disable removes an indicator from the active set. Its profile is dropped
// by the profiler on the next cycle.
func (r *Registry) Disable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled[name] {
		return fmt.Errorf("indicator %q is not enabled", name)
	}
	delete(r.enabled, name)
	log.Info().Str("indicator", name).Msg("indicator disabled")
	return nil
}
