package models

import "time"

const (
	RegularityRegular   = "regular"
	RegularityIrregular = "irregular"

	DescriptionUsual   = "usual"
	DescriptionUnusual = "unusual"
)

// CycleProfile stores the per-user cycle parameters the predictors read.
// Invariant kept by the API layer: LutealLength < CycleLength.
type CycleProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	HeightCM int     `gorm:"not null" json:"height_cm"`
	WeightKG float64 `gorm:"not null" json:"weight_kg"`

	CycleLength     int  `gorm:"not null" json:"cycle_length"`
	LutealLength    int  `gorm:"not null" json:"luteal_length"`
	MensesLength    int  `gorm:"not null" json:"menses_length"`
	UnusualBleeding bool `gorm:"not null;default:false" json:"unusual_bleeding"`
	NumberOfPeak    int  `gorm:"not null;default:1" json:"number_of_peak"`

	PeriodRegularity  string `gorm:"not null" json:"period_regularity"`
	PeriodDescription string `gorm:"not null" json:"period_description"`
	MedicalConditions string `json:"medical_conditions"`

	// Cycle anchor of last resort, used only when no period records exist.
	LastPeriodStart *time.Time `gorm:"type:date" json:"last_period_start"`
	LastPeriodEnd   *time.Time `gorm:"type:date" json:"last_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BMI derives body mass index from the stored measurements.
func (profile CycleProfile) BMI() float64 {
	if profile.HeightCM <= 0 {
		return 0
	}
	meters := float64(profile.HeightCM) / 100
	return profile.WeightKG / (meters * meters)
}
