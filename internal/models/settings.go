package models

import "time"

// Settings is a single-row table with operator-editable texts and
// contact points.
type Settings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessName string `gorm:"size:100" json:"business_name"`

	// Sent when an operator closes hours without giving a reason.
	ClosedHoursMessage string `gorm:"size:255" json:"closed_hours_message"`

	CancellationPolicyMessage string `gorm:"size:255" json:"cancellation_policy_message"`

	AdminNotificationPhone string `gorm:"size:20" json:"admin_notification_phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
