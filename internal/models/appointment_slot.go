package models

import "time"

// AppointmentSlot is the reserved interval created when a request is
// approved. It is hard-deleted when the owning request is cancelled,
// which frees the interval immediately. Core invariant: no two slots
// for the same barber and date may have overlapping [start,end).
type AppointmentSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index:idx_slot_barber_date" json:"barber_id"`

	AppointmentRequestID uint               `gorm:"uniqueIndex" json:"appointment_request_id"`
	AppointmentRequest   AppointmentRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment_request"`

	Date      string `gorm:"size:10;index:idx_slot_barber_date" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Status string `gorm:"size:20;default:'blocked'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
