package models

import "time"

// WorkingHourOverride removes hours from a barber's normal weekly
// schedule on a single calendar date. It never adds hours.
type WorkingHourOverride struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_override_barber_date" json:"barber_id"`

	Date string `gorm:"size:10;index:idx_override_barber_date" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
