package digest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fplwatch/internal/adapters/baseline"
	"fplwatch/internal/adapters/fpl"
	"fplwatch/internal/metrics"
	"fplwatch/internal/report"
	"fplwatch/internal/services/pressure"
	"fplwatch/internal/services/prices"
	"fplwatch/internal/services/trends"
	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

// SnapshotSource provides the current player table. Narrow so tests can
// substitute fixtures without network access.
type SnapshotSource interface {
	Fetch(ctx context.Context) (*fpl.Snapshot, error)
}

// BaselineSource provides yesterday's recorded prices
type BaselineSource interface {
	Fetch(ctx context.Context) (baseline.Table, error)
}

// Service is the single orchestration point both trigger paths share:
// scheduled pushes and bot commands run the same pipelines and differ
// only in where the resulting text is sent.
type Service struct {
	snapshots SnapshotSource
	baselines BaselineSource
	estimator *pressure.Estimator
	trendsTop int
	now       func() time.Time
	log       *logger.Logger
}

// Deps are the service's injected collaborators
type Deps struct {
	Snapshots SnapshotSource
	Baselines BaselineSource
	Estimator *pressure.Estimator
	TrendsTop int
	Now       func() time.Time // defaults to time.Now
	Log       *logger.Logger
}

// NewService creates a digest service
func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logger.Get()
	}

	return &Service{
		snapshots: deps.Snapshots,
		baselines: deps.Baselines,
		estimator: deps.Estimator,
		trendsTop: deps.TrendsTop,
		now:       deps.Now,
		log:       deps.Log.With("component", "digest"),
	}
}

// PriceChanges runs the daily price-change pipeline and returns the
// message text. A missing baseline is degraded, not fatal: the returned
// text is then the warning message and no table is formatted. A snapshot
// failure aborts the run with ErrUpstreamUnavailable.
func (s *Service) PriceChanges(ctx context.Context) (string, error) {
	log := s.log.With("run_id", uuid.NewString(), "pipeline", "price_changes")
	start := time.Now()

	snapshot, err := s.snapshots.Fetch(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("price_changes", "error").Inc()
		return "", errors.Wrap(err, "fetch snapshot")
	}

	table, err := s.baselines.Fetch(ctx)
	if err != nil || len(table) == 0 {
		log.Warnw("Baseline unavailable, sending warning instead of changes",
			"error", err,
		)
		metrics.PipelineRuns.WithLabelValues("price_changes", "degraded").Inc()
		return report.BaselineWarning(), nil
	}

	falls, rises := prices.Calculate(snapshot.Players, table)

	log.Infow("Computed price changes",
		"falls", len(falls),
		"rises", len(rises),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	metrics.PipelineRuns.WithLabelValues("price_changes", "success").Inc()

	return report.PriceChangesMessage(s.now(), falls, rises), nil
}

// Predictions runs the transfer-pressure pipeline and returns the
// message text
func (s *Service) Predictions(ctx context.Context) (string, error) {
	log := s.log.With("run_id", uuid.NewString(), "pipeline", "predictions")
	start := time.Now()

	snapshot, err := s.snapshots.Fetch(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("predictions", "error").Inc()
		return "", errors.Wrap(err, "fetch snapshot")
	}

	rising, falling := s.estimator.Predict(snapshot.Players)

	log.Infow("Computed price predictions",
		"rising", len(rising),
		"falling", len(falling),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	metrics.PipelineRuns.WithLabelValues("predictions", "success").Inc()

	return report.PredictionsMessage(rising, falling), nil
}

// Trends runs the transfer-trends pipeline and returns the message text
func (s *Service) Trends(ctx context.Context) (string, error) {
	log := s.log.With("run_id", uuid.NewString(), "pipeline", "trends")
	start := time.Now()

	snapshot, err := s.snapshots.Fetch(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("trends", "error").Inc()
		return "", errors.Wrap(err, "fetch snapshot")
	}

	topIn, topOut := trends.TopMovers(snapshot.Players, s.trendsTop)

	log.Infow("Computed transfer trends",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	metrics.PipelineRuns.WithLabelValues("trends", "success").Inc()

	return report.TrendsMessage(s.now(), topIn, topOut), nil
}
