package services

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/models"
)

// Collaborator interfaces consumed by the prediction core. The GORM
// repositories in internal/db satisfy them; tests use in-memory fakes.

type ProfileReader interface {
	FindByUserID(userID uint) (models.CycleProfile, bool, error)
}

type PeriodReader interface {
	ListByUser(userID uint) ([]models.PeriodRecord, error)
}

type MoodReader interface {
	ListWithDayOfCycle(userID uint) ([]models.DailyMood, error)
	ListRecentBefore(userID uint, day time.Time, limit int) ([]models.DailyMood, error)
	CountByUser(userID uint) (int, error)
	CountCreatedAfter(userID uint, after time.Time) (int, error)
}

// ModelStore is the append-only store of trained model artifacts.
type ModelStore interface {
	LatestByUserAndType(userID uint, modelType string) (models.TrainedModel, bool, error)
	Append(record *models.TrainedModel) error
	CountByUser(userID uint) (int, error)
}
