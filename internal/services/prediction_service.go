package services

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/models"
)

// PredictionService composes the three per-signal predictors with the
// mathematical fallback into the merged current-prediction result.
type PredictionService struct {
	energy   SignalPredictor
	mood     SignalPredictor
	symptom  SignalPredictor
	fallback *MathematicalPredictor
	store    ModelStore
}

func NewPredictionService(energy SignalPredictor, mood SignalPredictor, symptom SignalPredictor, fallback *MathematicalPredictor, store ModelStore) *PredictionService {
	return &PredictionService{
		energy:   energy,
		mood:     mood,
		symptom:  symptom,
		fallback: fallback,
		store:    store,
	}
}

// CurrentPrediction merges the per-signal model outputs. When the energy
// model cannot serve for a data gap, the whole result comes from the
// mathematical fallback and the other models are not attempted. With a
// served energy signal, mood and symptoms degrade independently per field.
func (service *PredictionService) CurrentPrediction(userID uint, targetDate time.Time) (Prediction, error) {
	prediction, err := service.energy.Predict(userID, targetDate)
	if err != nil {
		if !IsDataGap(err) {
			return Prediction{}, err
		}
		return service.fallback.Predict(userID, targetDate)
	}

	if moodPrediction, moodErr := service.mood.Predict(userID, targetDate); moodErr == nil {
		prediction.Mood = moodPrediction.Mood
	} else if !IsDataGap(moodErr) {
		return Prediction{}, moodErr
	}

	if symptomPrediction, symptomErr := service.symptom.Predict(userID, targetDate); symptomErr == nil {
		prediction.Symptoms = symptomPrediction.Symptoms
	} else if !IsDataGap(symptomErr) {
		return Prediction{}, symptomErr
	}
	if prediction.Symptoms == nil {
		prediction.Symptoms = []string{}
	}

	return prediction, nil
}

// HistoryEntry is one day's merged prediction in a history range.
type HistoryEntry struct {
	Date string `json:"date"`
	Prediction
}

// History replays merged predictions over a date range, skipping days the
// energy model cannot serve.
func (service *PredictionService) History(userID uint, startDate time.Time, endDate time.Time) ([]HistoryEntry, error) {
	entries := make([]HistoryEntry, 0)
	for day := DateOnly(startDate); !day.After(DateOnly(endDate)); day = day.AddDate(0, 0, 1) {
		prediction, err := service.energy.Predict(userID, day)
		if err != nil {
			if !IsDataGap(err) {
				return nil, err
			}
			continue
		}

		if moodPrediction, moodErr := service.mood.Predict(userID, day); moodErr == nil {
			prediction.Mood = moodPrediction.Mood
		} else if !IsDataGap(moodErr) {
			return nil, moodErr
		}
		if symptomPrediction, symptomErr := service.symptom.Predict(userID, day); symptomErr == nil {
			prediction.Symptoms = symptomPrediction.Symptoms
		} else if !IsDataGap(symptomErr) {
			return nil, symptomErr
		}

		entries = append(entries, HistoryEntry{
			Date:       day.Format(time.DateOnly),
			Prediction: prediction,
		})
	}
	return entries, nil
}

// ModelStatus describes the current trained model for one model type.
type ModelStatus struct {
	HasModel  bool       `json:"has_model"`
	Accuracy  *float64   `json:"model_accuracy"`
	CreatedAt *time.Time `json:"model_created_at"`
}

// ModelStatusReport bundles the per-type statuses with the total number of
// artifact versions the append-only store holds for the user.
type ModelStatusReport struct {
	Models          map[string]ModelStatus `json:"models"`
	TrainedVersions int                    `json:"trained_versions"`
}

// Status reports the latest model per type.
func (service *PredictionService) Status(userID uint) (ModelStatusReport, error) {
	statuses := make(map[string]ModelStatus, len(models.ModelTypes))
	for _, modelType := range models.ModelTypes {
		record, found, err := service.store.LatestByUserAndType(userID, modelType)
		if err != nil {
			return ModelStatusReport{}, err
		}
		status := ModelStatus{HasModel: found}
		if found {
			accuracy := record.AccuracyScore
			createdAt := record.CreatedAt
			status.Accuracy = &accuracy
			status.CreatedAt = &createdAt
		}
		statuses[modelType] = status
	}

	versions, err := service.store.CountByUser(userID)
	if err != nil {
		return ModelStatusReport{}, err
	}
	return ModelStatusReport{Models: statuses, TrainedVersions: versions}, nil
}
