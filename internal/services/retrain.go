package services

import (
	"errors"
	"fmt"

	"github.com/keerthireddymada/plan-her-new/internal/models"
	"github.com/rs/zerolog"
)

// RetrainConfig carries the ML policy knobs. It is passed explicitly so
// nothing reads ambient global state.
type RetrainConfig struct {
	// Threshold is the number of new observations since the last stored
	// model (or overall, when none exists) that makes retraining due.
	Threshold int
	// AccuracyFloor is advisory: freshly trained models scoring below it
	// are logged against but still persisted.
	AccuracyFloor float64
}

// RetrainOutcome reports one model type's training result. Exactly one of
// the three cases holds: trained, insufficient data, or failure.
type RetrainOutcome struct {
	Trained  bool    `json:"trained"`
	Accuracy float64 `json:"accuracy,omitempty"`
	Message  string  `json:"message"`
}

// RetrainService trains and persists the per-signal models and owns the
// retrain-due predicate.
type RetrainService struct {
	predictors []SignalPredictor
	moods      MoodReader
	store      ModelStore
	config     RetrainConfig
	logger     zerolog.Logger
}

func NewRetrainService(predictors []SignalPredictor, moods MoodReader, store ModelStore, config RetrainConfig, logger zerolog.Logger) *RetrainService {
	return &RetrainService{
		predictors: predictors,
		moods:      moods,
		store:      store,
		config:     config,
		logger:     logger,
	}
}

// Due is the pure retrain predicate for one (user, model type) pair. With
// no stored model it counts all observations; otherwise only those logged
// after the model's training time.
func (service *RetrainService) Due(userID uint, modelType string) (bool, error) {
	record, found, err := service.store.LatestByUserAndType(userID, modelType)
	if err != nil {
		return false, fmt.Errorf("load model: %w", err)
	}

	if !found {
		count, err := service.moods.CountByUser(userID)
		if err != nil {
			return false, fmt.Errorf("count observations: %w", err)
		}
		return count >= service.config.Threshold, nil
	}

	count, err := service.moods.CountCreatedAfter(userID, record.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("count observations: %w", err)
	}
	return count >= service.config.Threshold, nil
}

// RetrainAll trains every model type for the user. One model's failure
// never blocks the others; each outcome is reported separately.
func (service *RetrainService) RetrainAll(userID uint) map[string]RetrainOutcome {
	outcomes := make(map[string]RetrainOutcome, len(service.predictors))
	for _, predictor := range service.predictors {
		outcomes[predictor.ModelType()] = service.retrainOne(userID, predictor)
	}
	return outcomes
}

// RetrainDue retrains only the model types whose predicate fires,
// returning how many were trained. The nightly sweep calls this.
func (service *RetrainService) RetrainDue(userID uint) (int, error) {
	trained := 0
	for _, predictor := range service.predictors {
		due, err := service.Due(userID, predictor.ModelType())
		if err != nil {
			return trained, err
		}
		if !due {
			continue
		}
		if outcome := service.retrainOne(userID, predictor); outcome.Trained {
			trained++
		}
	}
	return trained, nil
}

func (service *RetrainService) retrainOne(userID uint, predictor SignalPredictor) RetrainOutcome {
	modelType := predictor.ModelType()

	data, accuracy, err := predictor.Train(userID)
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			return RetrainOutcome{Message: "insufficient data"}
		}
		service.logger.Error().Err(err).
			Uint("user_id", userID).
			Str("model_type", modelType).
			Msg("model training failed")
		return RetrainOutcome{Message: fmt.Sprintf("training failed: %v", err)}
	}

	record := models.TrainedModel{
		UserID:        userID,
		ModelType:     modelType,
		ModelData:     data,
		AccuracyScore: accuracy,
		ModelVersion:  "1.0",
	}
	if err := service.store.Append(&record); err != nil {
		service.logger.Error().Err(err).
			Uint("user_id", userID).
			Str("model_type", modelType).
			Msg("persisting trained model failed")
		return RetrainOutcome{Message: fmt.Sprintf("saving model failed: %v", err)}
	}

	if accuracy < service.config.AccuracyFloor {
		service.logger.Warn().
			Uint("user_id", userID).
			Str("model_type", modelType).
			Float64("accuracy", accuracy).
			Float64("floor", service.config.AccuracyFloor).
			Msg("trained model accuracy below configured floor")
	}

	return RetrainOutcome{
		Trained:  true,
		Accuracy: accuracy,
		Message:  fmt.Sprintf("trained with accuracy: %.2f", accuracy),
	}
}
