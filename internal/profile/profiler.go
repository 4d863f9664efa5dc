package profile

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/eulerlabs/euler/internal/regime"
)

// minCorrelationHistory is the observation floor before an indicator pair
// enters the correlation matrix.
const minCorrelationHistory = 10

// Profiler auto-discovers indicators and maintains their statistical
// profiles. It is not internally synchronized: the owning engine serializes
// all access for the duration of a compute cycle.
type Profiler struct {
	profiles map[string]*Profile
}

func NewProfiler() *Profiler {
	return &Profiler{profiles: make(map[string]*Profile)}
}

// Sync reconciles the tracked profiles with the enabled indicator set:
// new names get fresh profiles, retired names are dropped.
func (pr *Profiler) Sync(enabled []string) {
	keep := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		keep[name] = true
		if _, ok := pr.profiles[name]; !ok {
			p := newProfile(name)
			pr.profiles[name] = p
			log.Debug().Str("indicator", name).Str("category", p.Category.String()).Msg("profiling new indicator")
		}
	}
	for name := range pr.profiles {
		if !keep[name] {
			delete(pr.profiles, name)
			log.Info().Str("indicator", name).Msg("dropped profile for retired indicator")
		}
	}
}

// Update folds the cycle's scores into every tracked profile and refreshes
// the cross-correlation matrix. The regime phase used for sensitivity
// learning is detected from the incoming scores before any profile mutates.
func (pr *Profiler) Update(scores map[string]float64) {
	phase := pr.DetectPhase(scores)

	for name, score := range scores {
		if p, ok := pr.profiles[name]; ok {
			p.observe(score, phase)
		}
	}

	pr.updateCorrelations(scores)
}

// DetectPhase estimates the current market phase from a profile-weighted
// view of the scores. Unprofiled indicators contribute their raw score.
func (pr *Profiler) DetectPhase(scores map[string]float64) regime.Phase {
	if len(scores) == 0 {
		return regime.Normal
	}

	weighted := make([]float64, 0, len(scores))
	for name, score := range scores {
		if p, ok := pr.profiles[name]; ok {
			weighted = append(weighted, score*p.RegimeSensitivity*p.Reliability)
		} else {
			weighted = append(weighted, score)
		}
	}
	return regime.PhaseForScore(stat.Mean(weighted, nil))
}

// updateCorrelations recomputes pairwise Pearson correlations over the
// overlapping tail of each pair's histories. Pairs with degenerate
// (zero-variance) histories are skipped rather than stored as NaN.
func (pr *Profiler) updateCorrelations(scores map[string]float64) {
	names := make([]string, 0, len(scores))
	for name := range scores {
		if _, ok := pr.profiles[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := pr.profiles[names[i]], pr.profiles[names[j]]
			if len(a.history) < minCorrelationHistory || len(b.history) < minCorrelationHistory {
				continue
			}

			n := len(a.history)
			if len(b.history) < n {
				n = len(b.history)
			}
			r := stat.Correlation(a.history[len(a.history)-n:], b.history[len(b.history)-n:], nil)
			if math.IsNaN(r) {
				continue
			}
			a.Correlations[b.Name] = r
			b.Correlations[a.Name] = r
		}
	}

	for _, p := range pr.profiles {
		p.refreshUniqueness()
	}
}

// Get returns the profile for an indicator, or nil if it is not tracked.
func (pr *Profiler) Get(name string) *Profile {
	return pr.profiles[name]
}

// Names returns the tracked indicator names in a stable order.
func (pr *Profiler) Names() []string {
	names := make([]string, 0, len(pr.profiles))
	for name := range pr.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tracked profiles.
func (pr *Profiler) Len() int {
	return len(pr.profiles)
}
