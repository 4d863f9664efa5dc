package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "euler"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Composite market risk scoring with adaptive indicator weighting",
		Version: version,
		Long: `euler ingests normalized market risk indicators, blends them with a
selectable weighting strategy, and reports a 0-100 composite risk score
with a named regime classification.

Strategies range from a simple equal-weight baseline to statistically
adaptive and learned ensembles; see 'euler strategies'.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML configuration (defaults apply when omitted)")
	rootCmd.PersistentFlags().String("strategy", "", "Weighting strategy override (see 'euler strategies')")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newStrategiesCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
