package subscription

import (
	"context"
	"time"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
)

type DeactivateSubscription struct {
	repo   domain.Repository
	cancel *ucbooking.CancelRequest
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewDeactivateSubscription(
	repo domain.Repository,
	cancel *ucbooking.CancelRequest,
	auditD *audit.Dispatcher,
) *DeactivateSubscription {
	return &DeactivateSubscription{
		repo:   repo,
		cancel: cancel,
		audit:  auditD,
		now:    timezone.Now,
	}
}

// Execute stops future generation and cancels generated requests
// that have not occurred yet. Past occurrences are never touched.
func (uc *DeactivateSubscription) Execute(
	ctx context.Context,
	subscriptionID uint,
	staffID uint,
) (int, error) {

	sub, err := uc.repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return 0, err
	}
	if sub == nil {
		return 0, httperr.ErrBusiness("subscription_not_found")
	}

	if sub.IsActive {
		sub.IsActive = false
		if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
			return 0, err
		}
	}

	today := uc.now().Format("2006-01-02")
	pending, err := uc.repo.ListActiveRequestsForSubscription(ctx, sub.ID, today)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, req := range pending {
		if _, err := uc.cancel.Execute(ctx, req.ID, domain.CancelledByStaff, true); err != nil {
			return cancelled, err
		}
		cancelled++
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "subscription_deactivated",
		Entity:   "subscription",
		EntityID: &sub.ID,
		Metadata: map[string]int{"cancelled": cancelled},
	})

	return cancelled, nil
}
