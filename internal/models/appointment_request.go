package models

import "time"

type AppointmentRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index:idx_request_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// Set when the request was generated by a subscription.
	SubscriptionID *uint `gorm:"index" json:"subscription_id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null;index" json:"customer_phone"`

	Date               string `gorm:"size:10;index:idx_request_barber_date" json:"date"`
	RequestedStartTime string `gorm:"size:5" json:"requested_start_time"`
	// Optional; empty means "use the barber's slot duration".
	RequestedEndTime string `gorm:"size:5" json:"requested_end_time"`

	Status      string `gorm:"size:20;default:'pending'" json:"status"`
	CancelledBy string `gorm:"size:20" json:"cancelled_by"`

	// Opaque reference handed to the customer.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	Notes string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
