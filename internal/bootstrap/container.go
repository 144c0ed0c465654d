package bootstrap

import (
	"context"
	"net/http"
	"time"

	"fplwatch/internal/adapters/baseline"
	"fplwatch/internal/adapters/config"
	"fplwatch/internal/adapters/errors/noop"
	"fplwatch/internal/adapters/errors/sentry"
	"fplwatch/internal/adapters/fpl"
	"fplwatch/internal/adapters/telegram"
	"fplwatch/internal/metrics"
	"fplwatch/internal/report"
	"fplwatch/internal/services/digest"
	"fplwatch/internal/services/pressure"
	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

// Container wires configuration into the components every binary needs.
// All configuration is read once here and threaded explicitly; nothing
// reads process-wide state mid-pipeline.
type Container struct {
	Config  *config.Config
	Digest  *digest.Service
	Bot     *telegram.Bot
	Tracker errors.Tracker
}

// New loads configuration and builds the component graph. A missing bot
// token is a fatal startup condition surfaced as an error here.
func New() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		return nil, errors.Wrap(err, "init logger")
	}
	log := logger.Get()

	tracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(tracker)

	metrics.Init()

	fplClient := fpl.NewClient(fpl.Config{
		BaseURL: cfg.FPL.BaseURL,
		Timeout: cfg.FPL.Timeout,
	}, log)

	baselineLoader := baseline.NewLoader(baseline.Config{
		URL:     cfg.Baseline.URL,
		Timeout: cfg.Baseline.Timeout,
	}, log)

	estimator := pressure.NewEstimator(pressure.Config{
		TotalManagers: cfg.Pressure.TotalManagers,
		OwnersFloor:   cfg.Pressure.OwnersFloor,
		MinOwnership:  cfg.Pressure.MinOwnership,
		MinTransfers:  cfg.Pressure.MinTransfers,
		Shortlist:     cfg.Pressure.Shortlist,
		Picks:         cfg.Pressure.Picks,
	})

	digestSvc := digest.NewService(digest.Deps{
		Snapshots: fplClient,
		Baselines: baselineLoader,
		Estimator: estimator,
		TrendsTop: cfg.Trends.TopN,
		Log:       log,
	})

	bot, err := telegram.NewBot(telegram.Config{
		Token: cfg.Telegram.BotToken,
		Debug: cfg.App.Debug,
	}, log)
	if err != nil {
		return nil, errors.Wrap(err, "init telegram bot")
	}

	return &Container{
		Config:  cfg,
		Digest:  digestSvc,
		Bot:     bot,
		Tracker: tracker,
	}, nil
}

// Push wraps a pipeline into a job body that delivers its text to the
// configured channel. On a pipeline failure the error is surfaced to the
// channel when delivery still works, and the run still counts as failed.
func (c *Container) Push(errTitle string, run func(context.Context) (string, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		text, err := run(ctx)
		if err != nil {
			_ = c.Bot.SendMessageWithContext(ctx, c.Config.Telegram.ChatID, report.PipelineErrorMessage(errTitle, err))
			return err
		}

		return c.Bot.SendMessageWithContext(ctx, c.Config.Telegram.ChatID, text)
	}
}

// ServeMetrics exposes the promhttp endpoint when METRICS_ADDR is set
func (c *Container) ServeMetrics() {
	addr := c.Config.Metrics.Addr
	if addr == "" {
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())

		logger.Get().Infow("Serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Get().Warnf("Metrics server stopped: %v", err)
		}
	}()
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// Flush gives the error tracker a chance to drain before exit
func (c *Container) Flush(ctx context.Context) {
	if c.Tracker == nil {
		return
	}
	if err := c.Tracker.Flush(ctx); err != nil {
		logger.Get().Warnf("Failed to flush error tracker: %v", err)
	}
}

// OneShotTimeout bounds the one-shot binaries: long enough for two
// bounded fetches and one send, short enough for a cron slot.
const OneShotTimeout = 2 * time.Minute
