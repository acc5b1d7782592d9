package db

import (
	"github.com/keerthireddymada/plan-her-new/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUserID(userID uint) (models.CycleProfile, bool, error) {
	profile := models.CycleProfile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.CycleProfile{}, false, result.Error
	}
	return profile, result.RowsAffected > 0, nil
}

func (repo *ProfileRepository) Create(profile *models.CycleProfile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) Save(profile *models.CycleProfile) error {
	return repo.database.Save(profile).Error
}
