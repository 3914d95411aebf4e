package booking

import (
	"context"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

type RejectRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectRequest(repo domain.Repository, auditD *audit.Dispatcher) *RejectRequest {
	return &RejectRequest{repo: repo, audit: auditD}
}

// Execute marks a pending request rejected. No slot exists yet for a
// pending request, so there is nothing to free.
func (uc *RejectRequest) Execute(
	ctx context.Context,
	requestID uint,
	staffID uint,
) (*models.AppointmentRequest, error) {

	var req *models.AppointmentRequest

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		var err error
		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if err := domain.CanReject(domain.Status(req.Status)); err != nil {
			return err
		}

		req.Status = string(domain.StatusRejected)
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "request_rejected",
		Entity:   "appointment_request",
		EntityID: &req.ID,
	})

	return req, nil
}
