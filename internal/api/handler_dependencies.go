package api

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/db"
	"github.com/keerthireddymada/plan-her-new/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewHandler wires the repository layer and every service the routes
// depend on. All handlers share this one object.
func NewHandler(database *gorm.DB, secretKey string, location *time.Location, retrain services.RetrainConfig, logger zerolog.Logger) *Handler {
	handler := &Handler{
		db:        database,
		secretKey: []byte(secretKey),
		location:  location,
		logger:    logger,
	}
	return handler.withDependencies(database, retrain)
}

func (handler *Handler) withDependencies(database *gorm.DB, retrain services.RetrainConfig) *Handler {
	handler.repositories = db.NewRepositories(database)

	repos := handler.repositories
	handler.authService = services.NewAuthService(repos.Users)
	handler.cycleCalculator = services.NewCycleCalculator(repos.Profiles, repos.Periods)

	energy := services.NewEnergyPredictor(repos.Profiles, repos.Moods, repos.Models, handler.cycleCalculator)
	mood := services.NewMoodPredictor(repos.Profiles, repos.Moods, repos.Models, handler.cycleCalculator)
	symptom := services.NewSymptomPredictor(repos.Profiles, repos.Moods, repos.Models, handler.cycleCalculator)
	fallback := services.NewMathematicalPredictor(repos.Profiles, handler.cycleCalculator)

	handler.predictionService = services.NewPredictionService(energy, mood, symptom, fallback, repos.Models)
	handler.retrainService = services.NewRetrainService(
		[]services.SignalPredictor{energy, mood, symptom},
		repos.Moods, repos.Models, retrain, handler.logger,
	)
	handler.planner = services.NewPlanner(energy, mood, symptom)
	return handler
}

// RetrainService exposes the retrain engine for the scheduler wiring in
// main.
func (handler *Handler) RetrainService() *services.RetrainService {
	return handler.retrainService
}
