package booking

import (
	"context"

	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

// Repository is the reservation store used by the booking usecases.
//
// Lookup methods return (nil, nil) when the record does not exist so
// that callers can distinguish "absent" from a store failure.
type Repository interface {
	// WithTx runs fn inside one atomic unit. The Repository passed to
	// fn is bound to that unit; any error rolls everything back.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// LockBarberSchedule serializes concurrent booking mutations for
	// one barber. Only meaningful inside WithTx.
	LockBarberSchedule(ctx context.Context, barberID uint) error

	// -------- Barber --------
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	// -------- Working hours / overrides --------
	GetWorkingHour(ctx context.Context, barberID uint, dayOfWeek int) (*models.WorkingHour, error)
	ListOverridesForDay(ctx context.Context, barberID uint, date string) ([]models.WorkingHourOverride, error)
	CreateOverride(ctx context.Context, ov *models.WorkingHourOverride) error

	// -------- Requests --------
	GetRequest(ctx context.Context, id uint) (*models.AppointmentRequest, error)
	CreateRequest(ctx context.Context, req *models.AppointmentRequest) error
	UpdateRequest(ctx context.Context, req *models.AppointmentRequest) error
	ListPendingRequestsForDay(ctx context.Context, barberID uint, date string) ([]models.AppointmentRequest, error)
	FindActiveRequestByPhone(ctx context.Context, phone string) (*models.AppointmentRequest, error)
	ListActiveRequestsForSubscription(ctx context.Context, subscriptionID uint, fromDate string) ([]models.AppointmentRequest, error)

	// -------- Slots --------
	AssertNoSlotConflict(ctx context.Context, barberID uint, date, start, end string) error
	CreateSlot(ctx context.Context, slot *models.AppointmentSlot) error
	DeleteSlotByRequest(ctx context.Context, requestID uint) error
	GetSlotByRequest(ctx context.Context, requestID uint) (*models.AppointmentSlot, error)
	ListSlotsForDay(ctx context.Context, barberID uint, date string) ([]models.AppointmentSlot, error)

	// -------- Subscriptions --------
	GetSubscription(ctx context.Context, id uint) (*models.Subscription, error)
	ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
}
