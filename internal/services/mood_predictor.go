package services

import (
	"fmt"
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/ml"
	"github.com/keerthireddymada/plan-her-new/internal/models"
)

const minMoodTrainingRows = 30

// MoodPredictor learns the 5-class mood label from the shared cycle
// features.
type MoodPredictor struct {
	profiles   ProfileReader
	moods      MoodReader
	store      ModelStore
	calculator *CycleCalculator
}

func NewMoodPredictor(profiles ProfileReader, moods MoodReader, store ModelStore, calculator *CycleCalculator) *MoodPredictor {
	return &MoodPredictor{profiles: profiles, moods: moods, store: store, calculator: calculator}
}

func (predictor *MoodPredictor) ModelType() string {
	return models.ModelTypeMood
}

func (predictor *MoodPredictor) Train(userID uint) ([]byte, float64, error) {
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

	withMood := make([]models.DailyMood, 0, len(observations))
	for _, observation := range observations {
		if observation.Mood != "" {
			withMood = append(withMood, observation)
		}
	}
	if len(withMood) < minMoodTrainingRows {
		return nil, 0, fmt.Errorf("mood training needs %d labelled observations: %w",
			minMoodTrainingRows, ErrInsufficientData)
	}

	samples := make([][]float64, 0, len(withMood))
	labels := make([]int, 0, len(withMood))
	for _, observation := range withMood {
		class := moodClassIndex(observation.Mood)
		if class < 0 {
			continue
		}
		samples = append(samples, sharedSignalFeatures(profile, *observation.DayOfCycle))
		labels = append(labels, class)
	}
	// Unknown labels are dropped; the minimum holds after filtering too.
	if len(samples) < minMoodTrainingRows {
		return nil, 0, fmt.Errorf("mood training needs %d labelled observations: %w",
			minMoodTrainingRows, ErrInsufficientData)
	}

	scaler := ml.FitScaler(samples, nil)
	scaled := scaler.TransformAll(samples)
	config := signalForestConfig(0)

	accuracy := ml.KFoldAccuracy(scaled, labels, len(models.MoodLabels), crossValFolds(len(scaled)), config)
	forest := ml.TrainForest(scaled, labels, len(models.MoodLabels), config)

	data, err := encodeArtifact(ClassifierArtifact{Scaler: scaler, Forest: forest})
	if err != nil {
		return nil, 0, err
	}
	return data, accuracy, nil
}

func (predictor *MoodPredictor) Predict(userID uint, targetDate time.Time) (Prediction, error) {
	profile, found, err := predictor.profiles.FindByUserID(userID)
	if err != nil {
		return Prediction{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return Prediction{}, ErrProfileNotFound
	}

	record, found, err := predictor.store.LatestByUserAndType(userID, models.ModelTypeMood)
	if err != nil {
		return Prediction{}, fmt.Errorf("load model: %w", err)
	}
	if !found {
		return Prediction{}, ErrModelNotFound
	}

	artifact, err := decodeClassifierArtifact(record.ModelData)
	if err != nil {
		return Prediction{}, err
	}

	dayOfCycle, err := predictor.calculator.DayOfCycle(userID, targetDate)
	if err != nil {
		return Prediction{}, err
	}

	features := sharedSignalFeatures(profile, dayOfCycle)
	class := artifact.Forest.Predict(artifact.Scaler.Transform(features))
	if class < 0 || class >= len(models.MoodLabels) {
		return Prediction{}, fmt.Errorf("mood model predicted out-of-range class %d", class)
	}

	return Prediction{
		Mood:       models.MoodLabels[class],
		Symptoms:   []string{},
		Confidence: record.AccuracyScore,
	}, nil
}

// sharedSignalFeatures is the mood/symptom feature vector: day of cycle,
// cycle lengths and BMI.
func sharedSignalFeatures(profile models.CycleProfile, dayOfCycle int) []float64 {
	return []float64{
		float64(dayOfCycle),
		float64(profile.CycleLength),
		float64(profile.LutealLength),
		profile.BMI(),
	}
}

func moodClassIndex(mood string) int {
	for index, label := range models.MoodLabels {
		if label == mood {
			return index
		}
	}
	return -1
}
