package models

import "time"

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`

	// weekly | biweekly | monthly
	RecurrenceType string `gorm:"size:20;not null" json:"recurrence_type"`

	// 0 = Sunday ... 6 = Saturday.
	DayOfWeek int `json:"day_of_week"`
	// 1..5, required for monthly recurrence only.
	WeekOfMonth *int `json:"week_of_month"`

	StartTime       string `gorm:"size:5" json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`

	StartDate string  `gorm:"size:10" json:"start_date"`
	EndDate   *string `gorm:"size:10" json:"end_date"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Last occurrence date materialized as a request, "" before the
	// first generation.
	LastGeneratedDate string `gorm:"size:10" json:"last_generated_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
