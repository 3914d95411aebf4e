package booking

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/notify"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
)

// SettingsProvider supplies the fallback cancellation message used
// when the operator gives no reason.
type SettingsProvider interface {
	ClosedHoursMessage(ctx context.Context) string
}

type CreateOverrideInput struct {
	BarberID  uint
	Date      string
	StartTime string
	EndTime   string
	Reason    string
	Notify    bool
}

type CreateOverride struct {
	repo     domain.Repository
	sender   notify.Sender
	settings SettingsProvider
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewCreateOverride(
	repo domain.Repository,
	sender notify.Sender,
	settings SettingsProvider,
	auditD *audit.Dispatcher,
	log zerolog.Logger,
) *CreateOverride {
	return &CreateOverride{
		repo:     repo,
		sender:   sender,
		settings: settings,
		audit:    auditD,
		log:      log,
	}
}

type affectedCustomer struct {
	name  string
	phone string
}

// Execute closes a time range on a date and cascades cancellation to
// every reservation and pending request it invalidates. The override
// record is persisted before the cascade: a closure with zero
// conflicts is still a valid closure.
func (uc *CreateOverride) Execute(
	ctx context.Context,
	in CreateOverrideInput,
	staffID uint,
) (*domain.CascadeResult, error) {

	startMin, err := timegrid.ToMinutes(in.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := timegrid.ToMinutes(in.EndTime)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, httperr.ErrBusiness("end_before_start")
	}
	if _, err := timezone.ParseDate(in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	ov := &models.WorkingHourOverride{
		BarberID:  in.BarberID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Reason:    in.Reason,
	}
	if err := uc.repo.CreateOverride(ctx, ov); err != nil {
		return nil, err
	}

	var affected []affectedCustomer

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarberSchedule(ctx, in.BarberID); err != nil {
			return err
		}

		now := timezone.Now()

		// Reserved slots overlapping the closure: drop the slot,
		// cancel the owning request.
		slots, err := tx.ListSlotsForDay(ctx, in.BarberID, in.Date)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			sMin, err := timegrid.ToMinutes(slot.StartTime)
			if err != nil {
				return err
			}
			eMin, err := timegrid.ToMinutes(slot.EndTime)
			if err != nil {
				return err
			}
			if !timegrid.Overlaps(sMin, eMin, startMin, endMin) {
				continue
			}

			if err := tx.DeleteSlotByRequest(ctx, slot.AppointmentRequestID); err != nil {
				return err
			}

			req, err := tx.GetRequest(ctx, slot.AppointmentRequestID)
			if err != nil {
				return err
			}
			if req == nil {
				continue
			}
			req.Status = string(domain.StatusCancelled)
			req.CancelledBy = domain.CancelledByAdmin
			req.CancelledAt = &now
			if err := tx.UpdateRequest(ctx, req); err != nil {
				return err
			}
			affected = append(affected, affectedCustomer{req.CustomerName, req.CustomerPhone})
		}

		// Pending requests have no slot yet but still become
		// unservable.
		pending, err := tx.ListPendingRequestsForDay(ctx, in.BarberID, in.Date)
		if err != nil {
			return err
		}
		for i := range pending {
			req := &pending[i]

			sMin, err := timegrid.ToMinutes(req.RequestedStartTime)
			if err != nil {
				return err
			}
			eMin := sMin + barber.SlotDuration
			if req.RequestedEndTime != "" {
				eMin, err = timegrid.ToMinutes(req.RequestedEndTime)
				if err != nil {
					return err
				}
			}
			if !timegrid.Overlaps(sMin, eMin, startMin, endMin) {
				continue
			}

			req.Status = string(domain.StatusCancelled)
			req.CancelledBy = domain.CancelledByAdmin
			req.CancelledAt = &now
			if err := tx.UpdateRequest(ctx, req); err != nil {
				return err
			}
			affected = append(affected, affectedCustomer{req.CustomerName, req.CustomerPhone})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &domain.CascadeResult{
		OverrideID:     ov.ID,
		CancelledCount: len(affected),
	}

	// Post-commit notifications, best-effort with per-customer
	// outcome counts for the operator.
	if in.Notify && len(affected) > 0 {
		msg := in.Reason
		if msg == "" {
			msg = uc.settings.ClosedHoursMessage(ctx)
		}
		for _, cust := range affected {
			if err := uc.sender.Send(ctx, cust.phone, msg); err != nil {
				result.NotifyFailed++
				uc.log.Warn().Err(err).Str("phone", cust.phone).Msg("override notification failed")
				continue
			}
			result.NotifiedCount++
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "override_created",
		Entity:   "working_hour_override",
		EntityID: &ov.ID,
		Metadata: map[string]int{"cancelled": result.CancelledCount},
	})

	return result, nil
}
