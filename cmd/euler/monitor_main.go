package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eulerlabs/euler/internal/broadcast"
	"github.com/eulerlabs/euler/internal/feed"
	"github.com/eulerlabs/euler/internal/indicator"
	"github.com/eulerlabs/euler/internal/metrics"
	"github.com/eulerlabs/euler/internal/server"
	"github.com/eulerlabs/euler/internal/store"
)

func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run continuous analysis cycles",
		Long:  "Runs the analysis loop on a fixed cadence, optionally broadcasting results over UDP, persisting them to Postgres, and serving status over HTTP.",
		RunE:  runMonitor,
	}
	cmd.Flags().Duration("interval", 0, "cycle interval (overrides config)")
	return cmd
}

func runMonitor(cmd *cobra.Command, args []string) error {
	m := metrics.NewRegistry()
	cfg, eng, err := buildEngine(cmd, m)
	if err != nil {
		return err
	}

	interval := cfg.Monitor.Interval
	if flagInterval, _ := cmd.Flags().GetDuration("interval"); flagInterval > 0 {
		interval = flagInterval
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sender *broadcast.Sender
	if cfg.Broadcast.Enabled {
		sender, err = broadcast.NewSender(cfg.Broadcast.Host, cfg.Broadcast.Port)
		if err != nil {
			return fmt.Errorf("broadcast: %w", err)
		}
		defer sender.Close()
		log.Info().Str("host", cfg.Broadcast.Host).Int("port", cfg.Broadcast.Port).Msg("UDP broadcast enabled")
	}

	var results *store.Store
	if cfg.Store.Enabled {
		results, err = store.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return fmt.Errorf("result store: %w", err)
		}
		defer results.Close()
		log.Info().Msg("result store enabled")
	}

	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Addr, eng, m)
		go srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		log.Info().Str("addr", cfg.Server.Addr).Msg("status server enabled")
	}

	source := feed.NewResilientSource("static", feed.NewStaticSource(cfg.Indicators.Values))
	scorer := indicator.NewScorer()

	cycle := func() {
		result, err := runCycle(ctx, eng, source, scorer, m)
		if err != nil {
			log.Error().Err(err).Msg("cycle failed")
			return
		}
		if sender != nil {
			sender.Send(result)
		}
		if results != nil {
			if err := results.Record(ctx, result); err != nil {
				log.Error().Err(err).Msg("record result")
			}
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", interval), cycle); err != nil {
		return fmt.Errorf("schedule cycles: %w", err)
	}

	log.Info().
		Dur("interval", interval).
		Str("strategy", eng.Strategy().String()).
		Msg("monitor started")

	cycle()
	scheduler.Start()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	cronCtx := scheduler.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		log.Warn().Msg("timed out waiting for in-flight cycle")
	}

	fmt.Fprintln(os.Stdout, "monitor stopped")
	return nil
}
