package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"PortfolioSentinel/internal/notifier"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate all instruments once",
	Long: `Evaluates every configured instrument once, in order, printing one status
line per instrument. Matched bands are sent to Telegram and appended to the
trade journal.`,
	RunE: runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log alerts instead of sending them")
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var n notifier.Notifier = newTelegram(cfg)
	if dryRun {
		n = notifier.LogNotifier{}
	}
	j := newJournal(cfg)
	defer j.Close()

	r, err := newRunner(cfg, n, j, nil)
	if err != nil {
		return err
	}
	r.Out = cmd.OutOrStdout()
	if sum := r.Run(ctx); sum.Cancelled {
		return context.Canceled
	}
	return nil
}
