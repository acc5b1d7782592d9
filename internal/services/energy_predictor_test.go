package services

import (
	"errors"
	"testing"
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/models"
)

// energyTrainingMoods builds a daily log where the energy level is a pure
// function of the cycle day, so the model has a learnable signal.
func energyTrainingMoods(count int) []models.DailyMood {
	moods := make([]models.DailyMood, 0, count)
	start := day("2024-01-01")
	for index := 0; index < count; index++ {
		date := start.AddDate(0, 0, index)
		dayOfCycle := index%28 + 1
		level := models.EnergyMedium
		switch {
		case dayOfCycle <= 5:
			level = models.EnergyLow
		case dayOfCycle <= 13:
			level = models.EnergyHigh
		}
		moods = append(moods, models.DailyMood{
			UserID:      1,
			Date:        date,
			DayOfCycle:  &dayOfCycle,
			EnergyLevel: level,
			CreatedAt:   date,
		})
	}
	return moods
}

func newEnergyFixture(moodCount int) (*EnergyPredictor, *fakeModelStore, *fakePeriods) {
	profiles := &fakeProfiles{profile: testProfile(), found: true}
	periods := &fakePeriods{records: []models.PeriodRecord{
		{UserID: 1, StartDate: day("2024-01-01")},
		{UserID: 1, StartDate: day("2024-01-29")},
	}}
	moods := &fakeMoods{moods: energyTrainingMoods(moodCount)}
	store := &fakeModelStore{}
	calc := NewCycleCalculator(profiles, periods).
		WithNow(func() time.Time { return day("2024-02-01") })
	return NewEnergyPredictor(profiles, moods, store, calc), store, periods
}

func TestEnergyPredictorTrainAndPredict(t *testing.T) {
	t.Parallel()

	predictor, store, _ := newEnergyFixture(40)

	data, accuracy, err := predictor.Train(1)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Train() returned an empty artifact")
	}
	if accuracy < 0 || accuracy > 1 {
		t.Fatalf("Train() accuracy = %g, want within [0, 1]", accuracy)
	}

	if err := store.Append(&models.TrainedModel{
		UserID:        1,
		ModelType:     models.ModelTypeEnergy,
		ModelData:     data,
		AccuracyScore: accuracy,
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// 2024-02-10 is cycle day 13 of the cycle anchored on 2024-01-29.
	prediction, err := predictor.Predict(1, day("2024-02-10"))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if prediction.DayOfCycle != 13 {
		t.Fatalf("DayOfCycle = %d, want 13", prediction.DayOfCycle)
	}
	if prediction.CyclePhase != PhaseFollicular {
		t.Fatalf("CyclePhase = %q, want %q", prediction.CyclePhase, PhaseFollicular)
	}
	if _, known := map[string]bool{"low": true, "medium": true, "high": true}[prediction.EnergyLevel]; !known {
		t.Fatalf("EnergyLevel = %q, want a known label", prediction.EnergyLevel)
	}
	if prediction.Confidence != accuracy {
		t.Fatalf("Confidence = %g, want the stored accuracy %g", prediction.Confidence, accuracy)
	}
	if prediction.NextPeriodInDays == nil {
		t.Fatal("NextPeriodInDays = nil, want an estimate with period history present")
	}
}

func TestEnergyPredictorTrainIsDeterministic(t *testing.T) {
	t.Parallel()

	predictor, _, _ := newEnergyFixture(40)

	firstData, firstAccuracy, err := predictor.Train(1)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	secondData, secondAccuracy, err := predictor.Train(1)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if firstAccuracy != secondAccuracy {
		t.Fatalf("accuracy differs across runs: %g vs %g", firstAccuracy, secondAccuracy)
	}
	if string(firstData) != string(secondData) {
		t.Fatal("artifact bytes differ across runs with identical input")
	}
}

func TestEnergyPredictorTrainNeedsEnoughObservations(t *testing.T) {
	t.Parallel()

	predictor, _, _ := newEnergyFixture(5)
	if _, _, err := predictor.Train(1); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Train() error = %v, want ErrInsufficientData", err)
	}
}

func TestEnergyPredictorPredictWithoutModel(t *testing.T) {
	t.Parallel()

	predictor, _, _ := newEnergyFixture(40)
	if _, err := predictor.Predict(1, day("2024-02-10")); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("Predict() error = %v, want ErrModelNotFound", err)
	}
}

func TestEnergyPredictorPredictNeedsRecentObservations(t *testing.T) {
	t.Parallel()

	predictor, store, _ := newEnergyFixture(40)
	data, accuracy, err := predictor.Train(1)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if err := store.Append(&models.TrainedModel{
		UserID: 1, ModelType: models.ModelTypeEnergy, ModelData: data, AccuracyScore: accuracy,
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Before any logged observation there are no lag features to read.
	if _, err := predictor.Predict(1, day("2024-01-01")); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Predict() error = %v, want ErrInsufficientData", err)
	}
}
