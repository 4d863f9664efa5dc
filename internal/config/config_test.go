package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eulerlabs/euler/internal/weights"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, weights.StatisticalDynamic, cfg.Method())
	assert.Equal(t, time.Minute, cfg.Monitor.Interval)
	assert.Equal(t, "127.0.0.1", cfg.Broadcast.Host)
	assert.Equal(t, 5001, cfg.Broadcast.Port)
	assert.False(t, cfg.Broadcast.Enabled)
	assert.False(t, cfg.Store.Enabled)
	assert.Equal(t, 25.5, cfg.Indicators.Values["^VIX"])
}

func TestLoadMissingPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, weights.StatisticalDynamic, cfg.Method())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "euler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
strategy: momentum
monitor:
  interval: 30s
broadcast:
  enabled: true
  host: 10.0.0.5
  port: 6000
static_weights:
  Buffett Indicator: 0.6
  Put/Call Ratio: 0.4
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, weights.MomentumBased, cfg.Method())
	assert.Equal(t, 30*time.Second, cfg.Monitor.Interval)
	assert.True(t, cfg.Broadcast.Enabled)
	assert.Equal(t, "10.0.0.5", cfg.Broadcast.Host)
	assert.Equal(t, 6000, cfg.Broadcast.Port)
	assert.Equal(t, 0.6, cfg.StaticWeights["Buffett Indicator"])

	// Defaults survive where the file is silent.
	assert.Equal(t, ":9180", cfg.Server.Addr)
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/euler.yaml")
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "quantum"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantum")
}

func TestValidateRejectsNegativeStaticWeight(t *testing.T) {
	cfg := Default()
	cfg.StaticWeights = map[string]float64{"Buffett Indicator": -0.1}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsStoreWithoutDSN(t *testing.T) {
	cfg := Default()
	cfg.Store.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Store.DSN = "postgres://localhost/euler?sslmode=disable"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.Broadcast.Port = 70000
	assert.Error(t, cfg.Validate())
}
