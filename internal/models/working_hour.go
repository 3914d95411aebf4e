package models

import "time"

// WorkingHour is the weekly schedule entry, at most one per
// (barber, day-of-week).
type WorkingHour struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_working_hour_barber_day" json:"barber_id"`

	// 0 = Sunday ... 6 = Saturday.
	DayOfWeek int `gorm:"uniqueIndex:idx_working_hour_barber_day" json:"day_of_week"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsWorking bool   `json:"is_working"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
