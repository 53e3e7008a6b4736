// Package cmd holds the sentinel CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"PortfolioSentinel/internal/config"
	"PortfolioSentinel/internal/logger"
)

var (
	cfgFile string
	envFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Portfolio average-down alert system",
	Long: `Portfolio average-down alert system

Evaluates each configured instrument against its average-down bands and
sends a Telegram alert when the latest close falls inside one.

Commands:
    run         evaluate all instruments once (default)
    schedule    evaluate on a cron schedule and answer Telegram commands
    levels      print the configured bands
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOnce,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (initConfig references rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return initConfig() }
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log alerts instead of sending them")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(levelsCmd)
}

func initConfig() error {
	// A missing .env is fine, the variables may come from the environment.
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" && !rootCmd.PersistentFlags().Changed("config") {
		cfgFile = v
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		FilePath:    cfg.Log.FilePath,
		ServiceName: "sentinel",
	}); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return err
	}
	log.Debug().Str("config", cfgFile).Int("instruments", len(cfg.Instruments)).Msg("config loaded")
	return nil
}
