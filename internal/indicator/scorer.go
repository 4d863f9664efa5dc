package indicator

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrScoring marks a raw value that could not be scored. The observation
// still carries the neutral default score so the cycle can proceed.
var ErrScoring = errors.New("indicator scoring failed")

// DefaultScore is the neutral score substituted when a raw value is invalid.
const DefaultScore = 50.0

// Observation is a single scored indicator reading.
type Observation struct {
	Name      string    `json:"name"`
	Raw       float64   `json:"raw"`
	Score     float64   `json:"score"`
	Erroneous bool      `json:"erroneous,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Scorer converts raw indicator readings into normalized 0-100 risk scores
// using hand-tuned piecewise-linear curves per indicator family. Breakpoints
// reflect each indicator's empirical distribution; every curve is continuous
// at its segment boundaries and clamps to [0,100].
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score maps a raw value to a 0-100 risk score. Unknown indicator names fall
// back to a linear clamp with a logged warning. Invalid input (NaN/Inf)
// yields DefaultScore and ErrScoring; the error is advisory, never fatal.
func (s *Scorer) Score(name string, raw float64) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		log.Warn().Str("indicator", name).Msg("invalid raw value, using default score")
		return DefaultScore, ErrScoring
	}

	var score float64
	switch {
	case strings.Contains(name, "VIX"):
		score = scoreVolatilityLevel(raw)
	case strings.Contains(name, "SKEW"):
		score = scoreTailSkew(raw)
	case strings.Contains(name, "Put/Call"):
		score = scorePutCall(raw)
	case strings.Contains(name, "Term") || strings.Contains(name, "Stress"):
		score = scoreTermStructure(raw)
	case strings.Contains(name, "Buffett"):
		score = scoreValuationRatio(raw)
	default:
		log.Warn().Str("indicator", name).Msg("unknown indicator family, using linear scale")
		score = clamp(raw, 0, 100)
	}

	return score, nil
}

// Observe scores a raw value and wraps it in an Observation.
func (s *Scorer) Observe(name string, raw float64, now time.Time) Observation {
	score, err := s.Score(name, raw)
	return Observation{
		Name:      name,
		Raw:       raw,
		Score:     score,
		Erroneous: err != nil,
		Timestamp: now,
	}
}

// scoreVolatilityLevel maps a VIX-style implied volatility level.
// Very low readings are scored as contrarian complacency risk.
func scoreVolatilityLevel(v float64) float64 {
	switch {
	case v <= 10: // extreme complacency
		return math.Max(0, 20-40*(10-v))
	case v <= 15: // low volatility
		return 20 + 15*(v-10)/5
	case v <= 20: // normal range
		return 35 + 15*(v-15)/5
	case v <= 30: // elevated
		return 50 + 25*(v-20)/10
	case v <= 40: // high stress
		return 75 + 15*(v-30)/10
	default: // crisis
		return math.Min(100, 90+10*(v-40)/40)
	}
}

// scoreTailSkew maps a SKEW-style tail risk index (normal ~100-150).
func scoreTailSkew(v float64) float64 {
	switch {
	case v <= 100: // below normal distribution
		return math.Max(0, 25-25*(100-v)/10)
	case v <= 110:
		return 25 + 15*(v-100)/10
	case v <= 120:
		return 40 + 15*(v-110)/10
	case v <= 130: // elevated
		return 55 + 20*(v-120)/10
	case v <= 140: // high
		return 75 + 15*(v-130)/10
	default: // extreme
		return math.Min(100, 90+10*(v-140)/10)
	}
}

// scorePutCall maps an options put/call volume ratio. Extremes on the low
// side indicate complacency, a contrarian risk signal.
func scorePutCall(v float64) float64 {
	switch {
	case v <= 0.4:
		return math.Max(0, 30-30*(0.4-v)/0.1)
	case v <= 0.5:
		return 30 + 10*(v-0.4)/0.1
	case v <= 0.7: // normal range
		return 40 + 15*(v-0.5)/0.2
	case v <= 0.9: // elevated
		return 55 + 20*(v-0.7)/0.2
	case v <= 1.1: // high
		return 75 + 15*(v-0.9)/0.2
	default:
		return math.Min(100, 90+10*(v-1.1)/0.2)
	}
}

// scoreTermStructure maps a volatility term-structure ratio (short/long).
// Ratios above 1.0 mean backwardation, the classic stress signature.
func scoreTermStructure(v float64) float64 {
	switch {
	case v <= 0.7: // deep contango
		return math.Max(0, 20-20*(0.7-v)/0.1)
	case v <= 0.85: // normal contango
		return 20 + 20*(v-0.7)/0.15
	case v <= 0.95: // mild contango
		return 40 + 20*(v-0.85)/0.1
	case v <= 1.05: // transition zone
		return 60 + 25*(v-0.95)/0.1
	case v <= 1.2: // backwardation
		return 85 + 10*(v-1.05)/0.15
	default: // extreme backwardation
		return math.Min(100, 95+5*(v-1.2)/0.2)
	}
}

// scoreValuationRatio maps a market-cap-to-GDP style valuation percentage.
func scoreValuationRatio(v float64) float64 {
	switch {
	case v <= 80: // below historical average
		return math.Max(0, 20-20*(80-v)/20)
	case v <= 100: // normal range
		return 20 + 20*(v-80)/20
	case v <= 120: // elevated
		return 40 + 20*(v-100)/20
	case v <= 150: // high
		return 60 + 25*(v-120)/30
	case v <= 180: // very high
		return 85 + 10*(v-150)/30
	default: // extreme
		return math.Min(100, 95+5*(v-180)/20)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
