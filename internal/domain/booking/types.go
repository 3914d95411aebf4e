package booking

import "github.com/Tuksal-Software/barber-sub000/internal/httperr"

type AvailabilityInput struct {
	BarberID        uint
	Date            string // "2006-01-02"
	DurationMinutes int    // 0 means "use the barber's slot duration"
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ApprovedDurations are the only durations staff may approve a
// request with.
var ApprovedDurations = map[int]bool{
	15: true,
	30: true,
	45: true,
	60: true,
}

func ValidateApprovedDuration(minutes int) error {
	if !ApprovedDurations[minutes] {
		return httperr.ErrBusiness("invalid_duration")
	}
	return nil
}

// CascadeResult is what an override cascade reports back to the
// operator.
type CascadeResult struct {
	OverrideID     uint `json:"override_id"`
	CancelledCount int  `json:"cancelled_count"`
	NotifiedCount  int  `json:"notified_count"`
	NotifyFailed   int  `json:"notify_failed"`
}
