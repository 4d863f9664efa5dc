package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryDefaults(t *testing.T) {
	r := NewRegistry(nil)
	assert.ElementsMatch(t, DefaultEnabled(), r.Enabled())
	assert.True(t, r.IsEnabled(BuffettIndicator))
	assert.False(t, r.IsEnabled("^VIX"))
}

func TestRegistryEnableDisable(t *testing.T) {
	r := NewRegistry([]string{BuffettIndicator})

	r.Enable("^VIX")
	assert.True(t, r.IsEnabled("^VIX"))

	// Enabling twice is a no-op.
	r.Enable("^VIX")
	assert.Len(t, r.Enabled(), 2)

	require.NoError(t, r.Disable("^VIX"))
	assert.False(t, r.IsEnabled("^VIX"))

	err := r.Disable("^VIX")
	assert.Error(t, err)
}

func TestRegistryEnabledSorted(t *testing.T) {
	r := NewRegistry([]string{"zeta", "alpha", "mid"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Enabled())
}
