package booking

import "github.com/Tuksal-Software/barber-sub000/internal/httperr"

// ===============================
// Request Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Who triggered a cancellation.
const (
	CancelledByAdmin    = "admin"
	CancelledByStaff    = "staff"
	CancelledByCustomer = "customer"
)

// transitions is the full allowed state machine. Anything not listed
// here is an invalid transition.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCancelled, StatusRejected},
	StatusApproved: {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanApprove(current Status) error {
	if !CanTransition(current, StatusApproved) {
		return httperr.ErrBusiness("request_not_pending")
	}
	return nil
}

func CanReject(current Status) error {
	if !CanTransition(current, StatusRejected) {
		return httperr.ErrBusiness("request_not_pending")
	}
	return nil
}

func CanCancel(current Status) error {
	if !CanTransition(current, StatusCancelled) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
