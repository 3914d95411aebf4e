package booking

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/notify"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
)

type ApproveRequest struct {
	repo   domain.Repository
	sender notify.Sender
	audit  *audit.Dispatcher
	log    zerolog.Logger
}

func NewApproveRequest(
	repo domain.Repository,
	sender notify.Sender,
	auditD *audit.Dispatcher,
	log zerolog.Logger,
) *ApproveRequest {
	return &ApproveRequest{
		repo:   repo,
		sender: sender,
		audit:  auditD,
		log:    log,
	}
}

// Execute turns a pending request into a reserved slot. The load,
// the overlap re-check and both writes run in one atomic unit; the
// re-check inside the unit is what makes two concurrent approvals of
// overlapping requests resolve to exactly one winner.
func (uc *ApproveRequest) Execute(
	ctx context.Context,
	requestID uint,
	durationMinutes int,
	staffID uint,
) (*models.AppointmentRequest, *models.AppointmentSlot, error) {

	if err := domain.ValidateApprovedDuration(durationMinutes); err != nil {
		return nil, nil, err
	}

	var (
		req  *models.AppointmentRequest
		slot *models.AppointmentSlot
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		// The pre-lock read only resolves the barber to lock. Status
		// read before the lock can be stale against a concurrent
		// cascade, so it is re-read once the lock is held.
		peek, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if peek == nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if err := tx.LockBarberSchedule(ctx, peek.BarberID); err != nil {
			return err
		}

		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if err := domain.CanApprove(domain.Status(req.Status)); err != nil {
			return err
		}

		start := req.RequestedStartTime
		end, err := timegrid.AddMinutes(start, durationMinutes)
		if err != nil {
			return err
		}

		if err := tx.AssertNoSlotConflict(ctx, req.BarberID, req.Date, start, end); err != nil {
			return err
		}

		slot = &models.AppointmentSlot{
			BarberID:             req.BarberID,
			AppointmentRequestID: req.ID,
			Date:                 req.Date,
			StartTime:            start,
			EndTime:              end,
			Status:               "blocked",
		}
		if err := tx.CreateSlot(ctx, slot); err != nil {
			return err
		}

		req.Status = string(domain.StatusApproved)
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, nil, err
	}

	// Post-commit, best-effort.
	msg := fmt.Sprintf(
		"Hi %s, your appointment on %s at %s is confirmed.",
		req.CustomerName, req.Date, slot.StartTime,
	)
	if err := uc.sender.Send(ctx, req.CustomerPhone, msg); err != nil {
		uc.log.Warn().Err(err).Uint("request_id", req.ID).Msg("approval notification failed")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "request_approved",
		Entity:   "appointment_request",
		EntityID: &req.ID,
	})

	return req, slot, nil
}
