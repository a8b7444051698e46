//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/vokabelnetz/engine/internal/adapter/repository"
	"github.com/vokabelnetz/engine/internal/engine"
	"github.com/vokabelnetz/engine/internal/infrastructure/config"
	"github.com/vokabelnetz/engine/internal/infrastructure/database"
	"github.com/vokabelnetz/engine/internal/infrastructure/scheduler"
	"github.com/vokabelnetz/engine/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
	NewEngineConfig,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var engineSet = wire.NewSet(
	NewRand,
	engine.NewReviewScheduler,
	engine.NewDifficultyMatcher,
	engine.NewStreakTracker,
)

var repositorySet = wire.NewSet(
	repository.NewWordRepository,
	repository.NewProgressRepository,
	repository.NewLearnerRepository,
	repository.NewStreakHistoryRepository,
	repository.NewActivityRepository,
)

var usecaseSet = wire.NewSet(
	usecase.NewLearningUsecase,
	usecase.NewStreakUsecase,
)

var schedulerSet = wire.NewSet(
	scheduler.New,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		engineSet,
		repositorySet,
		usecaseSet,
		schedulerSet,
		NewLogger,
		wire.Struct(new(Container), "Logger", "Learning", "Streaks", "Scheduler"),
	)
	return nil, nil, nil
}
