package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"PortfolioSentinel/internal/notifier"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the configured average-down bands",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatLevels(cfg.Instruments, cfg.Currency))
		return nil
	},
}
