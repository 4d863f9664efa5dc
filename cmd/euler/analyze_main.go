package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eulerlabs/euler/internal/composite"
	"github.com/eulerlabs/euler/internal/config"
	"github.com/eulerlabs/euler/internal/engine"
	"github.com/eulerlabs/euler/internal/feed"
	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/metrics"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis cycle and print the result",
		Long:  "Scores the configured indicator values, computes the weighted composite, and prints the contribution table.",
		RunE:  runAnalyze,
	}
}

// buildEngine assembles the registry/engine pair from configuration shared
// by analyze and monitor. m may be nil when metrics are not exported.
func buildEngine(cmd *cobra.Command, m *metrics.Registry) (*config.Config, *engine.Engine, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if override, _ := cmd.Flags().GetString("strategy"); override != "" {
		cfg.Strategy = override
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	registry := indicator.NewRegistry(cfg.Indicators.Enabled)
	opts := []engine.Option{engine.WithStaticWeights(cfg.StaticWeights)}
	if m != nil {
		opts = append(opts, engine.WithMetrics(m))
	}
	eng := engine.New(registry, opts...)
	if err := eng.SetStrategy(cfg.Method()); err != nil {
		return nil, nil, err
	}
	return cfg, eng, nil
}

// runCycle fetches raw values, scores them, and computes one composite
// result. m may be nil.
func runCycle(ctx context.Context, eng *engine.Engine, source feed.Source, scorer *indicator.Scorer, m *metrics.Registry) (*composite.Result, error) {
	raw, err := source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch indicator values: %w", err)
	}

	scores := make(map[string]float64, len(raw))
	for name, value := range raw {
		obs := scorer.Observe(name, value, time.Now())
		scores[name] = obs.Score
		if obs.Erroneous && m != nil {
			m.ScoringErrors.Inc()
		}
	}

	return eng.Compute(scores), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, eng, err := buildEngine(cmd, nil)
	if err != nil {
		return err
	}

	source := feed.NewStaticSource(cfg.Indicators.Values)
	result, err := runCycle(cmd.Context(), eng, source, indicator.NewScorer(), nil)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func printResult(result *composite.Result) {
	fmt.Println()
	fmt.Println("Market Analysis")
	fmt.Println("--------------------------------------------------------------------------------")
	for _, c := range result.Contributions {
		fmt.Printf("%-25s | Raw score: %6.2f | Weight: %6.3f | Contrib: %5.1f%%\n",
			c.Name, c.Score, c.Weight, c.Percent)
	}
	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Printf("Composite Score: %6.2f | Regime: %s\n", result.Score, result.Regime.Label)
	fmt.Printf("%s\n", result.Regime.Description)
	fmt.Println("--------------------------------------------------------------------------------")
}
