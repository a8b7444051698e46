package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vokabelnetz/engine/internal/usecase"
)

// Scheduler runs the periodic day-boundary jobs. The streak scan fires
// every hour so every timezone hits its local midnight exactly once a
// day.
type Scheduler struct {
	scheduler *gocron.Scheduler
	streaks   usecase.StreakUsecase
	logger    *logrus.Logger
}

// New creates a scheduler around the streak usecase.
func New(streaks usecase.StreakUsecase, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		streaks:   streaks,
		logger:    logger,
	}
}

// Start registers the jobs and begins running them asynchronously.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.runStreakScan); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("scheduler started, streak scan runs hourly")
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runStreakScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.streaks.ProcessAllStreaks(ctx); err != nil {
		s.logger.Errorf("streak scan failed: %v", err)
	}
}
