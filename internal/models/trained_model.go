package models

import "time"

const (
	ModelTypeEnergy  = "energy"
	ModelTypeMood    = "mood"
	ModelTypeSymptom = "symptom"
)

// ModelTypes lists every per-signal model the training pipeline owns.
var ModelTypes = []string{ModelTypeEnergy, ModelTypeMood, ModelTypeSymptom}

// TrainedModel is an append-only training artifact. A new row is written on
// every training run; the current model for (user, type) is the newest row.
// Superseded rows stay for audit.
type TrainedModel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_model_user_type" json:"user_id"`
	ModelType     string    `gorm:"not null;index:idx_model_user_type" json:"model_type"`
	ModelData     []byte    `gorm:"not null" json:"-"`
	AccuracyScore float64   `json:"accuracy_score"`
	ModelVersion  string    `gorm:"not null;default:1.0" json:"model_version"`
	CreatedAt     time.Time `json:"created_at"`
}
