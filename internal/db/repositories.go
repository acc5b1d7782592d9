package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Profiles *ProfileRepository
	Periods  *PeriodRepository
	Moods    *MoodRepository
	Models   *ModelRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Profiles: NewProfileRepository(database),
		Periods:  NewPeriodRepository(database),
		Moods:    NewMoodRepository(database),
		Models:   NewModelRepository(database),
	}
}
