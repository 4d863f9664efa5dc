package profile

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/regime"
)

// maxHistory bounds the per-indicator score history. Oldest observations are
// evicted first.
const maxHistory = 100

// Profile is the rolling statistical summary for one indicator. It is owned
// exclusively by the Profiler and mutated only through observe.
type Profile struct {
	Name     string             `json:"name"`
	Category indicator.Category `json:"-"`

	history      []float64
	Observations int     `json:"observations"`
	Mean         float64 `json:"mean"`
	Volatility   float64 `json:"volatility"` // std of history / 100

	// Regime behaviour. Sensitivities are learned once enough history
	// accumulates under the matching phase.
	RegimeSensitivity   float64 `json:"regime_sensitivity"`
	CrisisSensitivity   float64 `json:"crisis_sensitivity"`
	EuphoriaSensitivity float64 `json:"euphoria_sensitivity"`

	// Signal quality.
	TrendStrength float64 `json:"trend_strength"` // tanh(regression slope / 10), [-1,1]
	SignalNoise   float64 `json:"signal_noise"`   // |lag-1 autocorrelation|, floor 0.1
	Reliability   float64 `json:"reliability"`

	// Redundancy analysis, refreshed each cycle by the Profiler.
	Correlations map[string]float64 `json:"correlations,omitempty"`
	Uniqueness   float64            `json:"information_uniqueness"`
}

func newProfile(name string) *Profile {
	return &Profile{
		Name:                name,
		Category:            indicator.Classify(name),
		Mean:                50.0,
		Volatility:          0.5,
		RegimeSensitivity:   0.5,
		CrisisSensitivity:   0.5,
		EuphoriaSensitivity: 0.5,
		SignalNoise:         0.5,
		Reliability:         0.5,
		Correlations:        make(map[string]float64),
		Uniqueness:          1.0,
	}
}

// History returns a copy of the retained scores, oldest first.
func (p *Profile) History() []float64 {
	out := make([]float64, len(p.history))
	copy(out, p.history)
	return out
}

// HistoryLen returns the number of retained scores (<= maxHistory).
func (p *Profile) HistoryLen() int {
	return len(p.history)
}

// observe folds a new score into the rolling statistics.
func (p *Profile) observe(score float64, phase regime.Phase) {
	p.history = append(p.history, score)
	if len(p.history) > maxHistory {
		p.history = p.history[1:]
	}
	p.Observations++

	p.Mean = stat.Mean(p.history, nil)
	if len(p.history) > 1 {
		p.Volatility = stat.PopStdDev(p.history, nil) / 100.0
	} else {
		p.Volatility = 0.5
	}

	p.updateRegimeSensitivity(phase)
	p.updateSignalQuality()
}

// updateRegimeSensitivity tracks how strongly the indicator reacts to crisis
// (spikes) and euphoria (drops), comparing the last five observations against
// the rest of the history.
func (p *Profile) updateRegimeSensitivity(phase regime.Phase) {
	if len(p.history) < 5 {
		return
	}

	recent := stat.Mean(p.history[len(p.history)-5:], nil)
	historical := 50.0
	if len(p.history) > 5 {
		historical = stat.Mean(p.history[:len(p.history)-5], nil)
	}

	switch phase {
	case regime.Crisis:
		spikeRatio := recent / math.Max(historical, 1.0)
		p.CrisisSensitivity = math.Min(1.0, spikeRatio/2.0)
	case regime.Euphoria:
		dropRatio := historical / math.Max(recent, 1.0)
		p.EuphoriaSensitivity = math.Min(1.0, dropRatio/2.0)
	}
}

// updateSignalQuality refreshes trend strength, signal-to-noise, and
// reliability. Requires at least ten observations; the autocorrelation-based
// signal-to-noise needs more than twenty.
func (p *Profile) updateSignalQuality() {
	n := len(p.history)
	if n < 10 {
		return
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, p.history, nil, false)
	p.TrendStrength = math.Tanh(slope / 10.0)

	if n > 20 {
		autocorr := stat.Correlation(p.history[:n-1], p.history[1:], nil)
		if !math.IsNaN(autocorr) {
			p.SignalNoise = math.Max(0.1, math.Abs(autocorr))
		}
	}

	lo, hi := p.history[0], p.history[0]
	for _, s := range p.history {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	consistency := 1.0 - (hi-lo)/100.0
	p.Reliability = (consistency + p.SignalNoise) / 2.0
}

// refreshUniqueness recomputes information uniqueness from the correlation
// map. An indicator with no recorded correlations is fully unique.
func (p *Profile) refreshUniqueness() {
	if len(p.Correlations) == 0 {
		p.Uniqueness = 1.0
		return
	}
	maxCorr := 0.0
	for _, r := range p.Correlations {
		maxCorr = math.Max(maxCorr, math.Abs(r))
	}
	p.Uniqueness = 1.0 - maxCorr
}
