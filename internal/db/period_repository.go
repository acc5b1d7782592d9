package db

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

// ListByUser returns the full period log ordered by start date ascending.
func (repo *PeriodRepository) ListByUser(userID uint) ([]models.PeriodRecord, error) {
	records := make([]models.PeriodRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *PeriodRepository) ListByUserRange(userID uint, from *time.Time, to *time.Time) ([]models.PeriodRecord, error) {
	query := repo.database.Model(&models.PeriodRecord{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("start_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_date <= ?", *to)
	}

	records := make([]models.PeriodRecord, 0)
	if err := query.Order("start_date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *PeriodRepository) FindByID(userID uint, recordID uint) (models.PeriodRecord, bool, error) {
	record := models.PeriodRecord{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, recordID).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.PeriodRecord{}, false, result.Error
	}
	return record, result.RowsAffected > 0, nil
}

func (repo *PeriodRepository) ExistsByUserAndStartDate(userID uint, startDate time.Time) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.PeriodRecord{}).
		Where("user_id = ? AND start_date = ?", userID, startDate).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *PeriodRepository) Create(record *models.PeriodRecord) error {
	return repo.database.Create(record).Error
}

func (repo *PeriodRepository) Save(record *models.PeriodRecord) error {
	return repo.database.Save(record).Error
}

func (repo *PeriodRepository) Delete(userID uint, recordID uint) error {
	return repo.database.
		Where("user_id = ? AND id = ?", userID, recordID).
		Delete(&models.PeriodRecord{}).Error
}
