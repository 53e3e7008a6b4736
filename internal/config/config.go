package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/model"
)

// ErrConfig marks a fatal configuration problem detected before a run starts.
var ErrConfig = errors.New("configuration error")

type TelegramConfig struct {
	BotToken   string        `yaml:"bot_token"`
	ChatID     string        `yaml:"chat_id"`
	MaxRetries int           `yaml:"max_retries" validate:"gte=0"`
	Timeout    time.Duration `yaml:"timeout" default:"10s"`
}

type DataSourceConfig struct {
	Provider     string        `yaml:"provider" default:"yahoo" validate:"oneof=yahoo rest mock"`
	BaseURL      string        `yaml:"base_url" validate:"required_if=Provider rest"`
	APIKey       string        `yaml:"api_key"`
	LookbackDays int           `yaml:"lookback_days" default:"60" validate:"gt=0"`
	Timeout      time.Duration `yaml:"timeout" default:"30s"`
}

type JournalConfig struct {
	CSVPath    string `yaml:"csv_path" default:"trade_journal.csv"`
	SQLitePath string `yaml:"sqlite_path"`
}

type ScheduleConfig struct {
	Cron       string `yaml:"cron" default:"0 35 15 * * 1-5"`
	RunOnStart bool   `yaml:"run_on_start"`
}

type LogConfig struct {
	Level    string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format   string `yaml:"format" default:"console" validate:"oneof=console json"`
	FilePath string `yaml:"file_path"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" default:":9108"`
}

// Config holds all application configuration.
type Config struct {
	Telegram    TelegramConfig     `yaml:"telegram"`
	DataSource  DataSourceConfig   `yaml:"data_source"`
	Indicators  calculator.Periods `yaml:"indicators"`
	Journal     JournalConfig      `yaml:"journal"`
	Schedule    ScheduleConfig     `yaml:"schedule"`
	Log         LogConfig          `yaml:"log"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	Timezone    string             `yaml:"timezone" default:"Asia/Kolkata"`
	Currency    string             `yaml:"currency" default:"₹"`
	Proxy       string             `yaml:"proxy"`
	Instruments []model.Instrument `yaml:"instruments" validate:"required,min=1,unique=Symbol,dive"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error. Without configured instruments
// the built-in portfolio is used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if len(cfg.Instruments) == 0 {
		cfg.Instruments = DefaultInstruments()
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("JOURNAL_CSV_PATH"); v != "" {
		c.Journal.CSVPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Journal.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		c.Schedule.Cron = v
	}
	if v := os.Getenv("MARKET_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Schedule.RunOnStart = b
		}
	}
}

// Validate checks that all required fields are set. Notifier credentials are
// checked first. Every error wraps ErrConfig.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: telegram.bot_token (TELEGRAM_BOT_TOKEN) is required", ErrConfig)
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("%w: telegram.chat_id (TELEGRAM_CHAT_ID) is required", ErrConfig)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrConfig, e.Namespace(), e.Tag(), e.Value())
		}
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrConfig, c.Timezone, err)
	}
	return nil
}

// Location resolves the market timezone used for timestamps and cron.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
