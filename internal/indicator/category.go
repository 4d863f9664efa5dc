package indicator

import "strings"

// Category classifies an indicator by the kind of market information it
// carries. Classification drives the regime multipliers in the statistical
// weighting pipeline.
type Category int

const (
	Structural Category = iota // long-term valuation / macro
	Sentiment                  // positioning and mood
	Volatility                 // vol level and term structure
	Technical                  // price-derived technicals
	Flow                       // money flow and liquidity
	Unknown                    // newly discovered, unclassified
)

func (c Category) String() string {
	switch c {
	case Structural:
		return "structural"
	case Sentiment:
		return "sentiment"
	case Volatility:
		return "volatility"
	case Technical:
		return "technical"
	case Flow:
		return "flow"
	default:
		return "unknown"
	}
}

// Keyword tables for name-based classification. Matching is best-effort:
// names are lowercased and checked for substring hits.
var categoryKeywords = []struct {
	category Category
	terms    []string
}{
	{Structural, []string{"buffett", "cape", "pe", "pb", "gdp", "valuation", "price_earnings"}},
	{Sentiment, []string{"put_call", "put/call", "sentiment", "fear", "greed", "insider", "survey"}},
	{Volatility, []string{"vix", "volatility", "skew", "stress", "term_slope", "term slope", "vol"}},
	{Flow, []string{"flow", "volume", "money", "liquidity", "margin"}},
	{Technical, []string{"rsi", "macd", "moving", "momentum", "trend", "oscillator"}},
}

// Classify assigns a category from keyword hits on the indicator name.
// Categories are checked in a fixed priority order (structural, sentiment,
// volatility, flow, technical) so a name matching several keyword sets
// always classifies the same way.
func Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		for _, term := range entry.terms {
			if strings.Contains(lower, term) {
				return entry.category
			}
		}
	}
	return Unknown
}
