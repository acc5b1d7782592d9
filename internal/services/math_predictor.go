package services

import (
	"fmt"
	"time"
)

// fallbackConfidence is the fixed confidence of phase-table predictions.
const fallbackConfidence = 0.5

var phaseEnergy = map[string]string{
	PhaseMenses:     "low",
	PhaseFollicular: "high",
	PhaseLuteal:     "medium",
	PhaseNextCycle:  "medium",
}

var phaseMood = map[string]string{
	PhaseMenses:     "Sad",
	PhaseFollicular: "Happy",
	PhaseLuteal:     "Calm",
	PhaseNextCycle:  "Calm",
}

var phaseSymptoms = map[string][]string{
	PhaseMenses: {"Bleeding", "Cramps", "Fatigue"},
	PhaseLuteal: {"Bloating", "Mood swings"},
}

// MathematicalPredictor is the deterministic phase-table fallback used
// when no trained model can serve. It is stateless: identical inputs give
// identical results.
type MathematicalPredictor struct {
	profiles   ProfileReader
	calculator *CycleCalculator
}

func NewMathematicalPredictor(profiles ProfileReader, calculator *CycleCalculator) *MathematicalPredictor {
	return &MathematicalPredictor{profiles: profiles, calculator: calculator}
}

func (predictor *MathematicalPredictor) Predict(userID uint, targetDate time.Time) (Prediction, error) {
	profile, found, err := predictor.profiles.FindByUserID(userID)
	if err != nil {
		return Prediction{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return Prediction{}, ErrProfileNotFound
	}

	dayOfCycle, err := predictor.calculator.DayOfCycle(userID, targetDate)
	if err != nil {
		return Prediction{}, err
	}

	phase := CyclePhase(dayOfCycle, profile.CycleLength, profile.LutealLength)
	symptoms := append([]string{}, phaseSymptoms[phase]...)

	prediction := Prediction{
		DayOfCycle:  dayOfCycle,
		CyclePhase:  phase,
		EnergyLevel: phaseEnergy[phase],
		Mood:        phaseMood[phase],
		Symptoms:    symptoms,
		Confidence:  fallbackConfidence,
	}
	// Missing period data leaves the estimate unknown, never an error.
	if days, known := predictor.calculator.DaysUntilNextPeriod(userID); known {
		prediction.NextPeriodInDays = &days
	}
	return prediction, nil
}
