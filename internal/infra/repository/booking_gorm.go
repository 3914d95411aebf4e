package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Atomic unit
// --------------------------------------------------

func (r *BookingGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// LockBarberSchedule takes a row lock on the barber so that two
// booking mutations for the same barber serialize. Different barbers
// never contend.
func (r *BookingGormRepository) LockBarberSchedule(
	ctx context.Context,
	barberID uint,
) error {
	var barber models.Barber
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&barber, barberID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("barber_not_found")
	}
	return err
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).First(&barber, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Working hours / overrides
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHour(
	ctx context.Context,
	barberID uint,
	dayOfWeek int,
) (*models.WorkingHour, error) {

	var wh models.WorkingHour
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, dayOfWeek).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *BookingGormRepository) ListOverridesForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.WorkingHourOverride, error) {

	var overrides []models.WorkingHourOverride
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *BookingGormRepository) CreateOverride(
	ctx context.Context,
	ov *models.WorkingHourOverride,
) error {
	return r.db.WithContext(ctx).Create(ov).Error
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

func (r *BookingGormRepository) GetRequest(
	ctx context.Context,
	id uint,
) (*models.AppointmentRequest, error) {

	var req models.AppointmentRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingGormRepository) CreateRequest(
	ctx context.Context,
	req *models.AppointmentRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *BookingGormRepository) UpdateRequest(
	ctx context.Context,
	req *models.AppointmentRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *BookingGormRepository) ListPendingRequestsForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.AppointmentRequest, error) {

	var reqs []models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND date = ? AND status = ?",
			barberID, date, string(domain.StatusPending),
		).
		Order("requested_start_time ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *BookingGormRepository) FindActiveRequestByPhone(
	ctx context.Context,
	phone string,
) (*models.AppointmentRequest, error) {

	var req models.AppointmentRequest
	err := r.db.WithContext(ctx).
		Where(
			"customer_phone = ? AND status IN ?",
			phone,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)},
		).
		Order("date DESC, requested_start_time DESC").
		First(&req).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingGormRepository) ListActiveRequestsForSubscription(
	ctx context.Context,
	subscriptionID uint,
	fromDate string,
) ([]models.AppointmentRequest, error) {

	var reqs []models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where(
			"subscription_id = ? AND status IN ? AND date >= ?",
			subscriptionID,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)},
			fromDate,
		).
		Order("date ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

// AssertNoSlotConflict re-checks the non-overlap invariant. Zero
// padded "HH:MM" strings compare like times, so the interval
// predicate works directly in SQL. The FOR UPDATE lock pins the rows
// we compared against until the unit commits.
func (r *BookingGormRepository) AssertNoSlotConflict(
	ctx context.Context,
	barberID uint,
	date, start, end string,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND date = ? AND start_time < ? AND end_time > ?",
			barberID, date, end, start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_conflict")
	}
	return nil
}

func (r *BookingGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.AppointmentSlot,
) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *BookingGormRepository) DeleteSlotByRequest(
	ctx context.Context,
	requestID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_request_id = ?", requestID).
		Delete(&models.AppointmentSlot{}).Error
}

func (r *BookingGormRepository) GetSlotByRequest(
	ctx context.Context,
	requestID uint,
) (*models.AppointmentSlot, error) {

	var slot models.AppointmentSlot
	err := r.db.WithContext(ctx).
		Where("appointment_request_id = ?", requestID).
		First(&slot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) ListSlotsForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

func (r *BookingGormRepository) GetSubscription(
	ctx context.Context,
	id uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *BookingGormRepository) ListActiveSubscriptions(
	ctx context.Context,
) ([]models.Subscription, error) {

	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *BookingGormRepository) UpdateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
