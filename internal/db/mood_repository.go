package db

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/models"
	"gorm.io/gorm"
)

type MoodRepository struct {
	database *gorm.DB
}

func NewMoodRepository(database *gorm.DB) *MoodRepository {
	return &MoodRepository{database: database}
}

func (repo *MoodRepository) ListByUserRange(userID uint, from *time.Time, to *time.Time) ([]models.DailyMood, error) {
	query := repo.database.Model(&models.DailyMood{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	moods := make([]models.DailyMood, 0)
	if err := query.Order("date DESC, id DESC").Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

// ListWithDayOfCycle returns observations usable as training rows, in
// chronological order.
func (repo *MoodRepository) ListWithDayOfCycle(userID uint) ([]models.DailyMood, error) {
	moods := make([]models.DailyMood, 0)
	if err := repo.database.
		Where("user_id = ? AND day_of_cycle IS NOT NULL", userID).
		Order("date ASC, id ASC").
		Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

// ListRecentBefore returns up to limit observations strictly before day,
// newest first. The energy predictor reads its lag features from these.
func (repo *MoodRepository) ListRecentBefore(userID uint, day time.Time, limit int) ([]models.DailyMood, error) {
	moods := make([]models.DailyMood, 0, limit)
	if err := repo.database.
		Where("user_id = ? AND date < ?", userID, day).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

func (repo *MoodRepository) FindByID(userID uint, moodID uint) (models.DailyMood, bool, error) {
	mood := models.DailyMood{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, moodID).
		Limit(1).
		Find(&mood)
	if result.Error != nil {
		return models.DailyMood{}, false, result.Error
	}
	return mood, result.RowsAffected > 0, nil
}

func (repo *MoodRepository) ExistsByUserAndDate(userID uint, day time.Time) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.DailyMood{}).
		Where("user_id = ? AND date = ?", userID, day).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *MoodRepository) CountByUser(userID uint) (int, error) {
	var count int64
	if err := repo.database.Model(&models.DailyMood{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountCreatedAfter counts observations logged after a model's training
// time; the retrain policy compares it against the threshold.
func (repo *MoodRepository) CountCreatedAfter(userID uint, after time.Time) (int, error) {
	var count int64
	if err := repo.database.Model(&models.DailyMood{}).
		Where("user_id = ? AND created_at > ?", userID, after).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (repo *MoodRepository) Create(mood *models.DailyMood) error {
	return repo.database.Create(mood).Error
}

func (repo *MoodRepository) Save(mood *models.DailyMood) error {
	return repo.database.Save(mood).Error
}

func (repo *MoodRepository) Delete(userID uint, moodID uint) error {
	return repo.database.
		Where("user_id = ? AND id = ?", userID, moodID).
		Delete(&models.DailyMood{}).Error
}
