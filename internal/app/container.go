package app

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vokabelnetz/engine/internal/engine"
	"github.com/vokabelnetz/engine/internal/infrastructure/config"
	"github.com/vokabelnetz/engine/internal/infrastructure/scheduler"
	"github.com/vokabelnetz/engine/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger    *logrus.Logger
	Learning  usecase.LearningUsecase
	Streaks   usecase.StreakUsecase
	Scheduler *scheduler.Scheduler
}

// NewLogger builds the application logger from the log config section.
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// NewEngineConfig projects the loaded config onto the engine tuning
// struct consumed by the scheduler, matcher and tracker.
func NewEngineConfig(cfg *config.Config) engine.Config {
	return cfg.Engine()
}

// NewRand seeds the random source used by weighted word selection.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
