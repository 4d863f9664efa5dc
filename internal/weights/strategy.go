package weights

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy turns the current indicator scores into a normalized weight
// vector. Implementations must return non-negative weights summing to 1.0
// for any non-empty input; an empty input yields an empty output.
type Strategy interface {
	Name() string
	CalculateWeights(scores map[string]float64) (map[string]float64, error)
	Describe() Info
}

// Info describes a strategy for operator-facing listings.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"` // Static, Dynamic, Adaptive, ML-Adaptive
	Complexity  string `json:"complexity"`
}

// Method enumerates the selectable weighting strategies.
type Method int

const (
	EqualWeight Method = iota
	LinearStatic
	RiskProportional
	VolatilityAdjusted
	MomentumBased
	StatisticalDynamic
	AdaptiveEnsemble
	MLStacking
	MLVoting
	MLBlending
)

func (m Method) String() string {
	switch m {
	case EqualWeight:
		return "equal_weight"
	case LinearStatic:
		return "linear_static"
	case RiskProportional:
		return "risk_proportional"
	case VolatilityAdjusted:
		return "volatility_adjusted"
	case MomentumBased:
		return "momentum_based"
	case StatisticalDynamic:
		return "statistical_dynamic"
	case AdaptiveEnsemble:
		return "adaptive_ensemble"
	case MLStacking:
		return "ml_adaptive_stacking"
	case MLVoting:
		return "ml_adaptive_voting"
	case MLBlending:
		return "ml_adaptive_blending"
	default:
		return "unknown"
	}
}

// methodAliases maps every accepted configuration spelling to its method.
var methodAliases = map[string]Method{
	"equal":                EqualWeight,
	"equal_weight":         EqualWeight,
	"linear":               LinearStatic,
	"linear_static":        LinearStatic,
	"risk":                 RiskProportional,
	"risk_proportional":    RiskProportional,
	"volatility":           VolatilityAdjusted,
	"volatility_adjusted":  VolatilityAdjusted,
	"momentum":             MomentumBased,
	"momentum_based":       MomentumBased,
	"statistical":          StatisticalDynamic,
	"statistical_dynamic":  StatisticalDynamic,
	"ensemble":             AdaptiveEnsemble,
	"adaptive":             AdaptiveEnsemble,
	"adaptive_ensemble":    AdaptiveEnsemble,
	"ml":                   MLStacking,
	"ml_stacking":          MLStacking,
	"ml_adaptive_stacking": MLStacking,
	"ml_voting":            MLVoting,
	"ml_adaptive_voting":   MLVoting,
	"ml_blending":          MLBlending,
	"ml_adaptive_blending": MLBlending,
}

// ParseMethod resolves a configuration string to a Method. Unknown names are
// a configuration error and fail fast, listing the accepted spellings.
func ParseMethod(name string) (Method, error) {
	if m, ok := methodAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	available := make([]string, 0, len(methodAliases))
	for alias := range methodAliases {
		available = append(available, alias)
	}
	sort.Strings(available)
	return 0, fmt.Errorf("unknown weighting method %q, available: %s", name, strings.Join(available, ", "))
}

// normalize scales weights to sum 1.0. A zero or negative total falls back
// to equal weights over the same keys.
func normalize(weights map[string]float64) map[string]float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return equalWeights(weights)
	}
	out := make(map[string]float64, len(weights))
	for k, w := range weights {
		out[k] = w / total
	}
	return out
}

// equalWeights assigns 1/N over the keys of the given map.
func equalWeights[V any](over map[string]V) map[string]float64 {
	if len(over) == 0 {
		return map[string]float64{}
	}
	w := 1.0 / float64(len(over))
	out := make(map[string]float64, len(over))
	for k := range over {
		out[k] = w
	}
	return out
}
