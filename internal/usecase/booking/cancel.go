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
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
)

type CancelRequest struct {
	repo   domain.Repository
	sender notify.Sender
	audit  *audit.Dispatcher
	log    zerolog.Logger
}

func NewCancelRequest(
	repo domain.Repository,
	sender notify.Sender,
	auditD *audit.Dispatcher,
	log zerolog.Logger,
) *CancelRequest {
	return &CancelRequest{
		repo:   repo,
		sender: sender,
		audit:  auditD,
		log:    log,
	}
}

// Execute cancels a request and deletes its slot (if any), freeing
// the interval immediately. Cancelling an already-cancelled request
// is a no-op.
func (uc *CancelRequest) Execute(
	ctx context.Context,
	requestID uint,
	cancelledBy string,
	notifyCustomer bool,
) (*models.AppointmentRequest, error) {

	var (
		req  *models.AppointmentRequest
		noop bool
	)

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		// The pre-lock read only resolves the barber to lock; the
		// status decision is made on a fresh read under the lock, so
		// a cancellation committed while waiting is seen here.
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

		if domain.Status(req.Status) == domain.StatusCancelled {
			noop = true
			return nil
		}

		if err := domain.CanCancel(domain.Status(req.Status)); err != nil {
			return err
		}

		if err := tx.DeleteSlotByRequest(ctx, req.ID); err != nil {
			return err
		}

		now := timezone.Now()
		req.Status = string(domain.StatusCancelled)
		req.CancelledBy = cancelledBy
		req.CancelledAt = &now
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	if noop {
		return req, nil
	}

	if notifyCustomer {
		msg := fmt.Sprintf(
			"Hi %s, your appointment on %s at %s has been cancelled.",
			req.CustomerName, req.Date, req.RequestedStartTime,
		)
		if err := uc.sender.Send(ctx, req.CustomerPhone, msg); err != nil {
			uc.log.Warn().Err(err).Uint("request_id", req.ID).Msg("cancel notification failed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "request_cancelled",
		Entity:   "appointment_request",
		EntityID: &req.ID,
		Metadata: map[string]string{"cancelled_by": cancelledBy},
	})

	return req, nil
}
