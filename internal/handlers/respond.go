package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
)

// Customer-facing texts per business code. Codes without an entry
// fall back to the code itself.
var businessMessages = map[string]string{
	"barber_not_found":            "Barber not found.",
	"barber_inactive":             "This barber is not taking appointments.",
	"request_not_found":           "Appointment request not found.",
	"subscription_not_found":      "Recurring appointment not found.",
	"slot_conflict":               "That time was just taken.",
	"request_not_pending":         "Only pending requests can be processed.",
	"invalid_state":               "The request is not in a cancellable state.",
	"time_in_past":                "That time has already passed.",
	"invalid_duration":            "Unsupported appointment duration.",
	"no_active_appointment":       "No upcoming appointment found for this number.",
	"cannot_self_cancel_approved": "Approved appointments can only be cancelled by the shop.",
	"too_late_already_past":       "The appointment time has already passed.",
	"challenge_expired":           "The code expired. Request a new one.",
	"wrong_code":                  "Wrong code.",
	"too_many_attempts":           "Too many wrong codes. Request a new one.",
	"end_before_start":            "End time must be after start time.",
	"invalid_time_format":         "Times must look like HH:MM.",
	"invalid_date":                "Invalid date.",
}

var notFoundCodes = map[string]bool{
	"barber_not_found":       true,
	"request_not_found":      true,
	"subscription_not_found": true,
	"no_active_appointment":  true,
}

// respondBusiness translates a use case error into an HTTP reply.
// Non-business errors become an opaque 500.
func respondBusiness(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = code
	}

	switch {
	case notFoundCodes[code]:
		httperr.NotFound(c, code, msg)
	case code == "slot_conflict":
		httperr.Conflict(c, code, msg)
	default:
		httperr.UnprocessableEntity(c, code, msg)
	}
}
