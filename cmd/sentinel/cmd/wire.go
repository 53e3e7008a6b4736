package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/config"
	"PortfolioSentinel/internal/journal"
	"PortfolioSentinel/internal/metrics"
	"PortfolioSentinel/internal/notifier"
	"PortfolioSentinel/internal/scheduler"
)

func newFetcher(c *config.Config) collector.Fetcher {
	switch c.DataSource.Provider {
	case "rest":
		return collector.NewRESTFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, c.Proxy, c.DataSource.Timeout)
	case "mock":
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewYahooFetcher(c.Proxy, c.DataSource.Timeout)
	}
}

func newTelegram(c *config.Config) *notifier.TelegramNotifier {
	tn := notifier.NewTelegramNotifier(c.Telegram.BotToken, c.Telegram.ChatID, c.Proxy, c.Telegram.Timeout)
	tn.MaxRetries = c.Telegram.MaxRetries
	return tn
}

// newJournal opens the CSV journal and, when configured, mirrors it to SQLite.
// A SQLite failure degrades to CSV only.
func newJournal(c *config.Config) journal.Journal {
	var sinks journal.MultiJournal
	if c.Journal.CSVPath != "" {
		sinks = append(sinks, journal.NewCSVJournal(c.Journal.CSVPath))
	}
	if c.Journal.SQLitePath != "" {
		sj, err := journal.NewSQLiteJournal(c.Journal.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite journal failed, continuing without it")
		} else {
			sinks = append(sinks, sj)
		}
	}
	if len(sinks) == 0 {
		return journal.NewNoopJournal()
	}
	return sinks
}

func newRunner(c *config.Config, n notifier.Notifier, j journal.Journal, m *metrics.Metrics) (*scheduler.Runner, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
	}
	fetcher := newFetcher(c)
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher, c.Indicators, c.DataSource.LookbackDays, c.DataSource.Timeout)
	r := scheduler.NewRunner(c.Instruments, col, n, j, m)
	r.Location = loc
	r.Currency = c.Currency
	r.NotifyTimeout = c.Telegram.Timeout
	return r, nil
}
