package services

import (
	"fmt"
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/ml"
	"github.com/keerthireddymada/plan-her-new/internal/models"
)

const minSymptomTrainingRows = 30

// SymptomPredictor learns multi-label symptom predictions with one
// one-vs-rest ensemble per vocabulary tag. Each observation's single
// free-form symptom value is treated as a one-element label set before
// binarization.
type SymptomPredictor struct {
	profiles   ProfileReader
	moods      MoodReader
	store      ModelStore
	calculator *CycleCalculator
}

func NewSymptomPredictor(profiles ProfileReader, moods MoodReader, store ModelStore, calculator *CycleCalculator) *SymptomPredictor {
	return &SymptomPredictor{profiles: profiles, moods: moods, store: store, calculator: calculator}
}

func (predictor *SymptomPredictor) ModelType() string {
	return models.ModelTypeSymptom
}

func (predictor *SymptomPredictor) Train(userID uint) ([]byte, float64, error) {
	profile, found, err := predictor.profiles.FindByUserID(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return nil, 0, ErrProfileNotFound
	}

	observations, err := predictor.moods.ListWithDayOfCycle(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list observations: %w", err)
	}
	if len(observations) < minSymptomTrainingRows {
		return nil, 0, fmt.Errorf("symptom training needs %d observations: %w",
			minSymptomTrainingRows, ErrInsufficientData)
	}

	vocabulary := append([]string(nil), models.KnownSymptoms...)

	samples := make([][]float64, 0, len(observations))
	binarized := make([][]int, 0, len(observations))
	for _, observation := range observations {
		samples = append(samples, sharedSignalFeatures(profile, *observation.DayOfCycle))
		binarized = append(binarized, binarizeSymptoms(observation.SymptomSet(), vocabulary))
	}

	scaler := ml.FitScaler(samples, nil)
	scaled := scaler.TransformAll(samples)

	forests := make([]*ml.Forest, len(vocabulary))
	for tagIndex := range vocabulary {
		labels := make([]int, len(binarized))
		for row := range binarized {
			labels[row] = binarized[row][tagIndex]
		}
		forests[tagIndex] = ml.TrainForest(scaled, labels, 2, signalForestConfig(int64(tagIndex+1)))
	}

	// Subset accuracy on the training set: a row counts only when every
	// per-tag prediction matches. Cross-validation is skipped because the
	// target is multi-label.
	correct := 0
	for row := range scaled {
		exact := true
		for tagIndex, forest := range forests {
			if forest.Predict(scaled[row]) != binarized[row][tagIndex] {
				exact = false
				break
			}
		}
		if exact {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(scaled))

	data, err := encodeArtifact(MultiLabelArtifact{Scaler: scaler, Forests: forests, Labels: vocabulary})
	if err != nil {
		return nil, 0, err
	}
	return data, accuracy, nil
}

func (predictor *SymptomPredictor) Predict(userID uint, targetDate time.Time) (Prediction, error) {
	profile, found, err := predictor.profiles.FindByUserID(userID)
	if err != nil {
		return Prediction{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return Prediction{}, ErrProfileNotFound
	}

	record, found, err := predictor.store.LatestByUserAndType(userID, models.ModelTypeSymptom)
	if err != nil {
		return Prediction{}, fmt.Errorf("load model: %w", err)
	}
	if !found {
		return Prediction{}, ErrModelNotFound
	}

	artifact, err := decodeMultiLabelArtifact(record.ModelData)
	if err != nil {
		return Prediction{}, err
	}

	dayOfCycle, err := predictor.calculator.DayOfCycle(userID, targetDate)
	if err != nil {
		return Prediction{}, err
	}

	features := artifact.Scaler.Transform(sharedSignalFeatures(profile, dayOfCycle))
	symptoms := make([]string, 0, len(artifact.Labels))
	for tagIndex, forest := range artifact.Forests {
		if forest.Predict(features) == 1 {
			symptoms = append(symptoms, artifact.Labels[tagIndex])
		}
	}

	return Prediction{
		Symptoms:   symptoms,
		Confidence: record.AccuracyScore,
	}, nil
}

func binarizeSymptoms(symptoms []string, vocabulary []string) []int {
	row := make([]int, len(vocabulary))
	for _, symptom := range symptoms {
		for tagIndex, tag := range vocabulary {
			if tag == symptom {
				row[tagIndex] = 1
			}
		}
	}
	return row
}
