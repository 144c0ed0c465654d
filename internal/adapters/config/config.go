package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"fplwatch/pkg/errors"
)

type Config struct {
	App           AppConfig
	Telegram      TelegramConfig
	FPL           FPLConfig
	Baseline      BaselineConfig
	Pressure      PressureConfig
	Trends        TrendsConfig
	Schedule      ScheduleConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"fplwatch"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// ChatID is the channel that receives scheduled pushes. Command
	// replies always go to the originating chat instead.
	ChatID int64 `envconfig:"TELEGRAM_CHAT_ID" default:"-1002392242605"`
}

type FPLConfig struct {
	BaseURL string        `envconfig:"FPL_BASE_URL" default:"https://fantasy.premierleague.com/api/"`
	Timeout time.Duration `envconfig:"FPL_TIMEOUT" default:"30s"`
}

type BaselineConfig struct {
	URL     string        `envconfig:"BASELINE_URL" default:"https://raw.githubusercontent.com/meharpalbasi/fpl_price_change_daily/main/yesterday_costs.csv"`
	Timeout time.Duration `envconfig:"BASELINE_TIMEOUT" default:"30s"`
}

// PressureConfig holds the prediction heuristic's knobs. TotalManagers is
// a rough estimate of the FPL user base, not an authoritative figure, so
// it stays recalibratable without a code change.
type PressureConfig struct {
	TotalManagers int64           `envconfig:"PRESSURE_TOTAL_MANAGERS" default:"10000000"`
	OwnersFloor   int64           `envconfig:"PRESSURE_OWNERS_FLOOR" default:"10000"`
	MinOwnership  decimal.Decimal `envconfig:"PRESSURE_MIN_OWNERSHIP" default:"0.1"`
	MinTransfers  int             `envconfig:"PRESSURE_MIN_TRANSFERS" default:"5000"`
	Shortlist     int             `envconfig:"PRESSURE_SHORTLIST" default:"10"`
	Picks         int             `envconfig:"PRESSURE_PICKS" default:"5"`
}

type TrendsConfig struct {
	TopN int `envconfig:"TRENDS_TOP_N" default:"10"`
}

// ScheduleConfig holds the daily push times as local wall-clock "HH:MM".
// An empty value disables that job.
type ScheduleConfig struct {
	PriceChangesAt string `envconfig:"SCHEDULE_PRICE_CHANGES" default:"09:00"`
	PredictionsAt  string `envconfig:"SCHEDULE_PREDICTIONS" default:"17:00"`
	TrendsAt       string `envconfig:"SCHEDULE_TRENDS" default:"10:00"`
}

type MetricsConfig struct {
	// Addr enables the promhttp endpoint when set, e.g. ":9090".
	Addr string `envconfig:"METRICS_ADDR"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	// envconfig's required tag only catches an absent variable, not an
	// empty one, and a bot without a token cannot start.
	if cfg.Telegram.BotToken == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "TELEGRAM_BOT_TOKEN is required")
	}

	return &cfg, nil
}
