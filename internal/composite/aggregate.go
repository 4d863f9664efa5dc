package composite

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eulerlabs/euler/internal/regime"
)

// wireTag prefixes every broadcast datagram.
const wireTag = "EULER"

// NeutralScore is reported when the weight vector is degenerate (total
// weight zero) instead of dividing by zero.
const NeutralScore = 50.0

// Contribution records one indicator's share of the composite.
type Contribution struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Percent  float64 `json:"percent"`
	Category string  `json:"category,omitempty"`
}

// Result is the immutable output of one aggregation cycle.
type Result struct {
	ID            string             `json:"id"`
	Score         float64            `json:"score"`
	Regime        regime.Band        `json:"regime"`
	Contributions []Contribution     `json:"contributions"`
	Scores        map[string]float64 `json:"scores"`
	Weights       map[string]float64 `json:"weights"`
	Strategy      string             `json:"strategy"`
	Timestamp     time.Time          `json:"timestamp"`
}

// Wire renders the result in the pipe-delimited broadcast framing:
// EULER|<score, 2 decimals>|<regime label>.
func (r *Result) Wire() string {
	return fmt.Sprintf("%s|%.2f|%s", wireTag, r.Score, r.Regime.Label)
}

// Aggregator blends scores and weights into a composite score and regime
// classification.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the weighted composite Σ(score·weight)/Σweight and
// classifies it. Per-indicator contributions are percentages of the
// weighted numerator, sorted descending for reporting.
func (a *Aggregator) Aggregate(scores, weights map[string]float64, strategy string, now time.Time) *Result {
	numerator := 0.0
	totalWeight := 0.0
	for name, score := range scores {
		w := weights[name]
		if w > 0 {
			numerator += score * w
			totalWeight += w
		}
	}

	score := NeutralScore
	if totalWeight > 0 {
		score = numerator / totalWeight
	}

	contributions := make([]Contribution, 0, len(scores))
	for name, s := range scores {
		percent := 0.0
		if numerator > 0 {
			percent = (s * weights[name] / numerator) * 100.0
		}
		contributions = append(contributions, Contribution{
			Name:    name,
			Score:   s,
			Weight:  weights[name],
			Percent: percent,
		})
	}
	sort.SliceStable(contributions, func(i, j int) bool {
		if contributions[i].Percent != contributions[j].Percent {
			return contributions[i].Percent > contributions[j].Percent
		}
		return contributions[i].Name < contributions[j].Name
	})

	return &Result{
		ID:            uuid.NewString(),
		Score:         score,
		Regime:        regime.Classify(score),
		Contributions: contributions,
		Scores:        snapshot(scores),
		Weights:       snapshot(weights),
		Strategy:      strategy,
		Timestamp:     now,
	}
}

func snapshot(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
