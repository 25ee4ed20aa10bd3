package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jpalima/habagat/internal/domain/forecast"
)

// Scheduler periodically regenerates the forecast batch so the dashboard
// stays fresh without manual triggers. Disabled unless an interval is
// configured.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       forecast.Service
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler.
func New(svc forecast.Service, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic regeneration job.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler disabled, no interval configured")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		summary, err := s.svc.Generate(ctx)
		if err != nil {
			s.logger.Error("scheduled generation failed", "error", err)
			return
		}
		s.logger.Info("scheduled generation completed", "batch", summary.BatchID, "cities", summary.CitiesCount)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
