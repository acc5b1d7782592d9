package services

import (
	"fmt"
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/ml"
	"github.com/keerthireddymada/plan-her-new/internal/models"
)

const (
	energyLagCount        = 3
	minEnergyTrainingRows = 3
	energyClassCount      = 3
)

// EnergyPredictor learns the 3-class energy level from cycle parameters
// plus the three chronologically preceding energy observations (the lag
// features).
type EnergyPredictor struct {
	profiles   ProfileReader
	moods      MoodReader
	store      ModelStore
	calculator *CycleCalculator
}

func NewEnergyPredictor(profiles ProfileReader, moods MoodReader, store ModelStore, calculator *CycleCalculator) *EnergyPredictor {
	return &EnergyPredictor{profiles: profiles, moods: moods, store: store, calculator: calculator}
}

func (predictor *EnergyPredictor) ModelType() string {
	return models.ModelTypeEnergy
}

func (predictor *EnergyPredictor) Train(userID uint) ([]byte, float64, error) {
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

	// The first three observations only seed lag features and never
	// become training rows themselves.
	if len(observations) < energyLagCount+minEnergyTrainingRows {
		return nil, 0, fmt.Errorf("energy training needs %d usable observations: %w",
			energyLagCount+minEnergyTrainingRows, ErrInsufficientData)
	}

	samples := make([][]float64, 0, len(observations)-energyLagCount)
	labels := make([]int, 0, len(observations)-energyLagCount)
	for index := energyLagCount; index < len(observations); index++ {
		observation := observations[index]
		features := energyFeatures(profile, *observation.DayOfCycle,
			observations[index-1].EnergyLevel,
			observations[index-2].EnergyLevel,
			observations[index-3].EnergyLevel)
		samples = append(samples, features)
		labels = append(labels, observation.EnergyLevel)
	}

	scaler := ml.FitScaler(samples, energyPassthroughColumns())
	scaled := scaler.TransformAll(samples)
	config := energyForestConfig()

	accuracy := ml.KFoldAccuracy(scaled, labels, energyClassCount, crossValFolds(len(scaled)), config)
	forest := ml.TrainForest(scaled, labels, energyClassCount, config)

	data, err := encodeArtifact(ClassifierArtifact{Scaler: scaler, Forest: forest})
	if err != nil {
		return nil, 0, err
	}
	return data, accuracy, nil
}

func (predictor *EnergyPredictor) Predict(userID uint, targetDate time.Time) (Prediction, error) {
	profile, found, err := predictor.profiles.FindByUserID(userID)
	if err != nil {
		return Prediction{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return Prediction{}, ErrProfileNotFound
	}

	record, found, err := predictor.store.LatestByUserAndType(userID, models.ModelTypeEnergy)
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

	recent, err := predictor.moods.ListRecentBefore(userID, DateOnly(targetDate), energyLagCount)
	if err != nil {
		return Prediction{}, fmt.Errorf("list recent observations: %w", err)
	}
	if len(recent) < energyLagCount {
		return Prediction{}, fmt.Errorf("energy prediction needs %d prior observations: %w",
			energyLagCount, ErrInsufficientData)
	}

	features := energyFeatures(profile, dayOfCycle,
		recent[0].EnergyLevel, recent[1].EnergyLevel, recent[2].EnergyLevel)
	class := artifact.Forest.Predict(artifact.Scaler.Transform(features))

	label, ok := models.EnergyLabels[class]
	if !ok {
		label = "medium"
	}

	prediction := Prediction{
		DayOfCycle:  dayOfCycle,
		CyclePhase:  CyclePhase(dayOfCycle, profile.CycleLength, profile.LutealLength),
		EnergyLevel: label,
		Symptoms:    []string{},
		Confidence:  record.AccuracyScore,
	}
	if days, known := predictor.calculator.DaysUntilNextPeriod(userID); known {
		prediction.NextPeriodInDays = &days
	}
	return prediction, nil
}

// energyFeatures lays the vector out as day, cycle lengths, peak count,
// BMI, the three lags, and the binary bleeding flag last (passthrough, not
// standardized).
func energyFeatures(profile models.CycleProfile, dayOfCycle int, lag1 int, lag2 int, lag3 int) []float64 {
	bleeding := 0.0
	if profile.UnusualBleeding {
		bleeding = 1.0
	}
	return []float64{
		float64(dayOfCycle),
		float64(profile.CycleLength),
		float64(profile.LutealLength),
		float64(profile.MensesLength),
		float64(profile.NumberOfPeak),
		profile.BMI(),
		float64(lag1),
		float64(lag2),
		float64(lag3),
		bleeding,
	}
}

func energyPassthroughColumns() []bool {
	passthrough := make([]bool, 10)
	passthrough[9] = true
	return passthrough
}
