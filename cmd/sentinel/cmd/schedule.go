package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/scheduler"
)

var noPolling bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Evaluate on a cron schedule",
	Long: `Runs the evaluation on the configured cron schedule (market timezone),
answers /run and /levels Telegram commands and serves Prometheus metrics.
Ctrl+C stops it.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&noPolling, "no-polling", false, "do not answer Telegram commands")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := metrics.New()
	tn := newTelegram(cfg)
	j := newJournal(cfg)
	defer j.Close()

	r, err := newRunner(cfg, tn, j, m)
	if err != nil {
		return err
	}
	r.Out = cmd.OutOrStdout()
	loc := r.Location

	sched := scheduler.NewScheduler(ctx, r, loc)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}
	if !noPolling {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}
	if cfg.Schedule.RunOnStart {
		log.Info().Msg("run_on_start enabled, evaluating now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Str("timezone", loc.String()).Msg("sentinel is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping")
	case <-ctx.Done():
	}
	cancel()
	return nil
}
