package services

import (
	"time"

	"github.com/keerthireddymada/plan-her-new/internal/models"
)

// In-memory collaborators shared by the service tests.

type fakeProfiles struct {
	profile models.CycleProfile
	found   bool
}

func (fake *fakeProfiles) FindByUserID(userID uint) (models.CycleProfile, bool, error) {
	return fake.profile, fake.found, nil
}

type fakePeriods struct {
	records []models.PeriodRecord
}

func (fake *fakePeriods) ListByUser(userID uint) ([]models.PeriodRecord, error) {
	return fake.records, nil
}

type fakeMoods struct {
	moods []models.DailyMood
}

func (fake *fakeMoods) ListWithDayOfCycle(userID uint) ([]models.DailyMood, error) {
	withDay := make([]models.DailyMood, 0, len(fake.moods))
	for _, mood := range fake.moods {
		if mood.DayOfCycle != nil {
			withDay = append(withDay, mood)
		}
	}
	return withDay, nil
}

func (fake *fakeMoods) ListRecentBefore(userID uint, day time.Time, limit int) ([]models.DailyMood, error) {
	recent := make([]models.DailyMood, 0, limit)
	for i := len(fake.moods) - 1; i >= 0 && len(recent) < limit; i-- {
		if fake.moods[i].Date.Before(day) {
			recent = append(recent, fake.moods[i])
		}
	}
	return recent, nil
}

func (fake *fakeMoods) CountByUser(userID uint) (int, error) {
	return len(fake.moods), nil
}

func (fake *fakeMoods) CountCreatedAfter(userID uint, after time.Time) (int, error) {
	count := 0
	for _, mood := range fake.moods {
		if mood.CreatedAt.After(after) {
			count++
		}
	}
	return count, nil
}

type fakeModelStore struct {
	records []models.TrainedModel
}

func (fake *fakeModelStore) LatestByUserAndType(userID uint, modelType string) (models.TrainedModel, bool, error) {
	for i := len(fake.records) - 1; i >= 0; i-- {
		if fake.records[i].UserID == userID && fake.records[i].ModelType == modelType {
			return fake.records[i], true, nil
		}
	}
	return models.TrainedModel{}, false, nil
}

func (fake *fakeModelStore) CountByUser(userID uint) (int, error) {
	count := 0
	for _, record := range fake.records {
		if record.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (fake *fakeModelStore) Append(record *models.TrainedModel) error {
	record.ID = uint(len(fake.records) + 1)
	fake.records = append(fake.records, *record)
	return nil
}

func day(value string) time.Time {
	parsed, err := ParseDay(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func dayPtr(value string) *time.Time {
	parsed := day(value)
	return &parsed
}

func testProfile() models.CycleProfile {
	return models.CycleProfile{
		UserID:            1,
		HeightCM:          165,
		WeightKG:          60,
		CycleLength:       28,
		LutealLength:      14,
		MensesLength:      5,
		NumberOfPeak:      1,
		PeriodRegularity:  models.RegularityRegular,
		PeriodDescription: models.DescriptionUsual,
	}
}
