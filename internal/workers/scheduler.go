package workers

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"fplwatch/internal/metrics"
	"fplwatch/pkg/errors"
	"fplwatch/pkg/logger"
)

// Job is one daily push: a pipeline run fired at a fixed local
// wall-clock time. An empty At disables the job.
type Job struct {
	Name string
	At   string // "HH:MM"
	Run  func(ctx context.Context) error
}

// Scheduler fires registered jobs once per day at their configured
// times. Runs are independent and stateless; a failed run is logged and
// counted, never retried.
type Scheduler struct {
	cron    *gocron.Scheduler
	log     *logger.Logger
	mu      sync.RWMutex
	ctx     context.Context
	started bool
}

// NewScheduler creates a scheduler firing in the given location
func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: gocron.NewScheduler(loc),
		log:  logger.Get().With("component", "scheduler"),
		ctx:  context.Background(),
	}
}

// Register adds a daily job. Jobs must be registered before Start.
func (s *Scheduler) Register(job Job) error {
	if job.At == "" {
		s.log.Infow("Job disabled (no schedule time)", "job", job.Name)
		return nil
	}

	_, err := s.cron.Every(1).Day().At(job.At).Do(func() {
		s.execute(job)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to schedule job %s at %q", job.Name, job.At)
	}

	s.log.Infow("Job registered", "job", job.Name, "at", job.At)
	return nil
}

// Start begins firing jobs asynchronously
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.started = true
	s.mu.Unlock()

	s.cron.StartAsync()
	s.log.Infow("Scheduler started", "jobs", len(s.cron.Jobs()))
}

// Stop halts the scheduler; running jobs finish their current execution
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.cron.Stop()
	s.started = false
	s.log.Infow("Scheduler stopped")
}

// execute runs a single job with panic recovery, logging and metrics
func (s *Scheduler) execute(job Job) {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()

	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordJobExecution(job.Name, time.Since(start), errors.Newf("panic: %v", r))
			s.log.Errorw("Job panicked",
				"job", job.Name,
				"panic", r,
			)
		}
	}()

	err := job.Run(ctx)
	metrics.RecordJobExecution(job.Name, time.Since(start), err)

	if err != nil {
		s.log.Errorw("Job execution failed",
			"job", job.Name,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	s.log.Infow("Job execution completed",
		"job", job.Name,
		"duration", time.Since(start),
	)
}
