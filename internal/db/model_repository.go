package db

import (
	"github.com/keerthireddymada/plan-her-new/internal/models"
	"gorm.io/gorm"
)

type ModelRepository struct {
	database *gorm.DB
}

func NewModelRepository(database *gorm.DB) *ModelRepository {
	return &ModelRepository{database: database}
}

// LatestByUserAndType resolves the current model for a (user, type) pair.
// Ordering by created_at with the autoincrement id as tie-breaker makes the
// last-writer-wins rule deterministic even on timestamp collisions.
func (repo *ModelRepository) LatestByUserAndType(userID uint, modelType string) (models.TrainedModel, bool, error) {
	record := models.TrainedModel{}
	result := repo.database.
		Where("user_id = ? AND model_type = ?", userID, modelType).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.TrainedModel{}, false, result.Error
	}
	return record, result.RowsAffected > 0, nil
}

// Append writes a new training artifact. Rows are never updated in place.
func (repo *ModelRepository) Append(record *models.TrainedModel) error {
	return repo.database.Create(record).Error
}

func (repo *ModelRepository) CountByUser(userID uint) (int, error) {
	var count int64
	if err := repo.database.Model(&models.TrainedModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
