package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Buffett Indicator", Structural},
		{"CAPE Ratio", Structural},
		{"Put/Call Ratio", Sentiment},
		{"Fear & Greed Index", Sentiment},
		{"^VIX", Volatility},
		{"^SKEW", Volatility},
		{"Near-term Stress Ratio", Volatility},
		{"Money Flow Index", Flow},
		{"Margin Debt", Flow},
		{"RSI Oscillator", Technical},
		{"MACD Signal", Technical},
		{"Mystery Gauge", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

// Classification is priority-ordered, so a name hitting several keyword
// sets always resolves to the highest-priority category.
func TestClassifyPriority(t *testing.T) {
	assert.Equal(t, Structural, Classify("GDP Volatility"))
	assert.Equal(t, Sentiment, Classify("Sentiment Volatility"))
	assert.Equal(t, Flow, Classify("Volume Momentum"))
	// "Slope" contains "pe", so term-slope names land in structural.
	assert.Equal(t, Structural, Classify("3M Term Slope"))
	assert.Equal(t, Structural, Classify("6M Term Slope"))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "structural", Structural.String())
	assert.Equal(t, "sentiment", Sentiment.String())
	assert.Equal(t, "volatility", Volatility.String())
	assert.Equal(t, "technical", Technical.String())
	assert.Equal(t, "flow", Flow.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", Category(42).String())
}
