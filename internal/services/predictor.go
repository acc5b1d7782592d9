package services

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/ml"
)

// Prediction is the transient result of a prediction call. Per-signal
// predictors fill only their own fields; the energy predictor and the
// mathematical fallback additionally carry the cycle context.
type Prediction struct {
	DayOfCycle       int      `json:"day_of_cycle"`
	CyclePhase       string   `json:"cycle_phase"`
	EnergyLevel      string   `json:"predicted_energy_level"`
	Mood             string   `json:"predicted_mood,omitempty"`
	Symptoms         []string `json:"predicted_symptoms"`
	NextPeriodInDays *int     `json:"next_period_in_days"`
	Confidence       float64  `json:"confidence_score"`
}

// SignalPredictor is the shared train/persist-load/predict lifecycle the
// three per-signal models implement; they differ only in feature and label
// shape. Train returns the opaque serialized artifact and the accuracy
// estimate; ErrInsufficientData marks the sentinel "not enough history"
// outcome.
type SignalPredictor interface {
	ModelType() string
	Train(userID uint) ([]byte, float64, error)
	Predict(userID uint, targetDate time.Time) (Prediction, error)
}

// modelSeed fixes the ensemble random state so retraining on identical
// history yields identical models.
const modelSeed = 42

func energyForestConfig() ml.ForestConfig {
	return ml.ForestConfig{TreeCount: 200, Seed: modelSeed}
}

func signalForestConfig(seedOffset int64) ml.ForestConfig {
	return ml.ForestConfig{TreeCount: 100, Seed: modelSeed + seedOffset}
}

func crossValFolds(sampleCount int) int {
	if sampleCount < 3 {
		return sampleCount
	}
	return 3
}
