// Package wire provides dependency injection for the intake application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/intake/internal/adapters/console"
	"github.com/example/intake/internal/adapters/guildfile"
	"github.com/example/intake/internal/adapters/perms"
	"github.com/example/intake/internal/adapters/sqlite"
	"github.com/example/intake/internal/app"
	"github.com/example/intake/internal/config"
	"github.com/example/intake/internal/db"
	"github.com/example/intake/internal/ports/primary"
	"github.com/example/intake/internal/ports/secondary"
)

var (
	positionService primary.PositionService
	intakeService   primary.IntakeService
	reviewService   primary.ReviewService
	standingService primary.StandingService
	channelConfig   secondary.ChannelConfigRepository
	appPager        secondary.ApplicationRepository
	permStore       *perms.Store
	logger          zerolog.Logger
	once            sync.Once
)

// PositionService returns the singleton PositionService instance.
func PositionService() primary.PositionService {
	once.Do(initServices)
	return positionService
}

// IntakeService returns the singleton IntakeService instance.
func IntakeService() primary.IntakeService {
	once.Do(initServices)
	return intakeService
}

// ReviewService returns the singleton ReviewService instance.
func ReviewService() primary.ReviewService {
	once.Do(initServices)
	return reviewService
}

// StandingService returns the singleton StandingService instance.
func StandingService() primary.StandingService {
	once.Do(initServices)
	return standingService
}

// ChannelConfig returns the singleton review-channel config repository.
func ChannelConfig() secondary.ChannelConfigRepository {
	once.Do(initServices)
	return channelConfig
}

// Applications returns the application repository for read-side paging.
func Applications() secondary.ApplicationRepository {
	once.Do(initServices)
	return appPager
}

// Perms returns the singleton permission store.
func Perms() *perms.Store {
	once.Do(initServices)
	return permStore
}

// Logger returns the configured application logger.
func Logger() zerolog.Logger {
	once.Do(initServices)
	return logger
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dataDir, err := db.DataDir()
	if err != nil {
		log.Fatalf("failed to resolve data directory: %v", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	positionRepo := sqlite.NewPositionRepository(database)
	applicationRepo := sqlite.NewApplicationRepository(database)
	standingRepo := sqlite.NewStandingRepository(database)
	channelRepo := sqlite.NewChannelConfigRepository(database)
	appPager = applicationRepo
	channelConfig = channelRepo

	// Collaborator adapters
	messenger := console.NewMessenger()
	guild := guildfile.NewDirectory(dataDir, logger)
	permStore = perms.NewStore(dataDir)

	notifier := app.NewNotifier(messenger, channelRepo, guild, logger)

	// Services (primary ports implementation)
	positionService = app.NewPositionService(positionRepo)
	standingService = app.NewStandingService(standingRepo, messenger, logger)
	intakeService = app.NewIntakeService(applicationRepo, positionRepo, standingRepo, messenger, guild, permStore, notifier, logger)
	reviewService = app.NewReviewService(applicationRepo, positionRepo, guild, notifier, logger, cfg.UnflagTarget)
}
