package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/keerthireddymada/plan-her-new/internal/api"
	"github.com/keerthireddymada/plan-her-new/internal/config"
	"github.com/keerthireddymada/plan-her-new/internal/db"
	"github.com/keerthireddymada/plan-her-new/internal/security"
	"github.com/keerthireddymada/plan-her-new/internal/services"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("configuration load failed")
	}

	location := mustLoadLocation(cfg.TZ, log)
	time.Local = location

	secretKey := cfg.SecretKey
	if secretKey == "" {
		generated, err := security.GenerateSecretKey()
		if err != nil {
			log.Fatal().Err(err).Msg("generating secret key failed")
		}
		secretKey = generated
		log.Warn().Msg("SECRET_KEY not configured, using a generated key; sessions will not survive restarts")
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	handler := api.NewHandler(database, secretKey, location, services.RetrainConfig{
		Threshold:     cfg.Retrain.Threshold,
		AccuracyFloor: cfg.Retrain.AccuracyFloor,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:               "PlanHer",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	if cfg.Retrain.SweepEnabled {
		scheduler := services.NewRetrainScheduler(
			db.NewUserRepository(database),
			handler.RetrainService(),
			cfg.Retrain.SweepSchedule,
			log,
		)
		if err := scheduler.Start(lifecycleCtx); err != nil {
			log.Fatal().Err(err).Msg("retrain scheduler init failed")
		}
		log.Info().Str("schedule", cfg.Retrain.SweepSchedule).Msg("retrain sweep enabled")
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Str("tz", location.String()).
		Msg("PlanHer listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func mustLoadLocation(name string, log zerolog.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("tz", name).Msg("invalid TZ, falling back to UTC")
		return time.UTC
	}
	return location
}
