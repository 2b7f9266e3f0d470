package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-pollution-etl/internal/logging"
	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

// Runner is the job the scheduler triggers.
type Runner interface {
	Run(ctx context.Context) (weather.RunSummary, error)
}

// Scheduler periodically re-runs the extraction on a cron schedule. A run
// still in progress when the next tick fires is not overlapped.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	spec      string
	ctx       context.Context
	log       *logging.Logger
}

// New creates a new Scheduler. Runs receive ctx, so cancelling it stops the
// windows of a run in progress.
func New(ctx context.Context, spec string, runner Runner) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		spec:      spec,
		ctx:       ctx,
		log:       logging.Get("scheduler"),
	}
}

// Start schedules the job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		return errors.New("scheduler: empty cron expression")
	}

	_, err := s.scheduler.Cron(s.spec).Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Infof("extraction scheduled with %q", s.spec)
	return nil
}

func (s *Scheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}
	s.log.Infof("running scheduled extraction")
	summary, err := s.runner.Run(s.ctx)
	if err != nil {
		s.log.Errorf("scheduled run %s failed: %v", summary.ID, err)
		return
	}
	s.log.Infof("scheduled run %s completed: %d rows -> %s", summary.ID, summary.Rows, summary.OutputPath)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
