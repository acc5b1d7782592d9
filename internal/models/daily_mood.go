package models

import "time"

const (
	EnergyLow    = 0
	EnergyMedium = 1
	EnergyHigh   = 2
)

// EnergyLabels decodes the ordinal energy level into its API label.
var EnergyLabels = map[int]string{
	EnergyLow:    "low",
	EnergyMedium: "medium",
	EnergyHigh:   "high",
}

// MoodLabels is the fixed mood vocabulary; a mood model predicts the index.
var MoodLabels = []string{"Happy", "Calm", "Sad", "Anxious", "Irritated"}

// KnownSymptoms is the fixed symptom vocabulary the multi-label symptom
// model is binarized against. Order matters: trained artifacts store it.
var KnownSymptoms = []string{
	"Bleeding", "Spotting", "Cramps", "Headache", "Bloating",
	"Fatigue", "Breast tenderness", "Back pain", "Nausea", "Acne",
}

// DailyMood is one observation per user and calendar date. DayOfCycle is
// computed and cached at write time through the cycle calculator; it stays
// nil when no cycle anchor existed yet.
type DailyMood struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_mood_user_date" json:"user_id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_mood_user_date" json:"date"`
	DayOfCycle  *int      `json:"day_of_cycle"`
	EnergyLevel int       `gorm:"not null" json:"energy_level"`
	Mood        string    `json:"mood"`
	Symptoms    string    `json:"symptoms"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SymptomSet wraps the single free-form symptom value in a one-element
// label set, the shape the multi-label encoder expects.
func (mood DailyMood) SymptomSet() []string {
	if mood.Symptoms == "" {
		return nil
	}
	return []string{mood.Symptoms}
}
