package services

import "time"

var energyWeights = map[string]int{"low": -2, "medium": 1, "high": 3}

var moodWeights = map[string]int{
	"Sad":       -2,
	"Anxious":   -2,
	"Irritated": -1,
	"Calm":      1,
	"Happy":     2,
}

var symptomWeights = map[string]int{
	"Bleeding":          -4,
	"Cramps":            -3,
	"Headache":          -2,
	"Fatigue":           -2,
	"Back pain":         -2,
	"Nausea":            -2,
	"Spotting":          -1,
	"Bloating":          -1,
	"Breast tenderness": -1,
	"Acne":              0,
}

type recommendationTier struct {
	Threshold int
	Message   string
}

// Tiers are scanned ascending; the first threshold the score fits under
// wins, and scores above every threshold get the top tier.
var recommendationTiers = []recommendationTier{
	{-10, "Rest Day: Prioritize sleep, gentle stretching, and nourishing food. Avoid demanding tasks."},
	{-3, "Light Day: Focus on low-stress activities, light work, and take plenty of breaks."},
	{0, "Steady Day: Good for regular tasks and balanced activities. Listen to your body."},
	{3, "Productive Day: A great day for focused work, exercise, and tackling challenging tasks."},
}

// RecommendationFor maps a daily score to its recommendation tier.
func RecommendationFor(score int) string {
	for _, tier := range recommendationTiers {
		if score <= tier.Threshold {
			return tier.Message
		}
	}
	return recommendationTiers[len(recommendationTiers)-1].Message
}

// DailyPlanEntry is one day of the seven-day plan.
type DailyPlanEntry struct {
	Date           string   `json:"date"`
	EnergyLevel    string   `json:"predicted_energy_level"`
	Mood           string   `json:"predicted_mood"`
	Symptoms       []string `json:"predicted_symptoms"`
	Score          int      `json:"score"`
	Recommendation string   `json:"recommendation"`
}

const degradedSignal = "N/A"

// Planner turns a week of per-signal predictions into scored daily
// recommendations.
type Planner struct {
	energy  SignalPredictor
	mood    SignalPredictor
	symptom SignalPredictor
	now     func() time.Time
}

func NewPlanner(energy SignalPredictor, mood SignalPredictor, symptom SignalPredictor) *Planner {
	return &Planner{energy: energy, mood: mood, symptom: symptom, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (planner *Planner) WithNow(now func() time.Time) *Planner {
	planner.now = now
	return planner
}

// SevenDayPlan covers today plus the next six days. Unlike the current-
// prediction path there is no pipeline-wide fallback here: each signal
// degrades independently and degraded values contribute zero to the
// score.
func (planner *Planner) SevenDayPlan(userID uint) ([]DailyPlanEntry, error) {
	today := DateOnly(planner.now())
	plan := make([]DailyPlanEntry, 0, 7)

	for offset := 0; offset < 7; offset++ {
		targetDate := today.AddDate(0, 0, offset)
		entry := DailyPlanEntry{
			Date:        targetDate.Format(time.DateOnly),
			EnergyLevel: degradedSignal,
			Mood:        degradedSignal,
			Symptoms:    []string{},
		}
		score := 0

		if prediction, err := planner.energy.Predict(userID, targetDate); err == nil {
			entry.EnergyLevel = prediction.EnergyLevel
			score += energyWeights[prediction.EnergyLevel]
		} else if !IsDataGap(err) {
			return nil, err
		}

		if prediction, err := planner.mood.Predict(userID, targetDate); err == nil {
			entry.Mood = prediction.Mood
			score += moodWeights[prediction.Mood]
		} else if !IsDataGap(err) {
			return nil, err
		}

		if prediction, err := planner.symptom.Predict(userID, targetDate); err == nil {
			entry.Symptoms = prediction.Symptoms
			for _, symptom := range prediction.Symptoms {
				score += symptomWeights[symptom]
			}
		} else if !IsDataGap(err) {
			return nil, err
		}

		entry.Score = score
		entry.Recommendation = RecommendationFor(score)
		plan = append(plan, entry)
	}

	return plan, nil
}
