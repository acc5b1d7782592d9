package models

import "time"

// PeriodRecord is one logged period. At most one record per distinct
// start date per user, enforced by the unique index.
type PeriodRecord struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:uidx_period_user_start" json:"user_id"`
	StartDate time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_period_user_start" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}
