// Package bookingtest provides an in-memory booking.Repository for
// usecase tests.
package bookingtest

import (
	"context"
	"sync"

	"github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

// FakeRepo keeps everything in maps. WithTx serializes units with a
// mutex, which mirrors the serialization the real store gets from
// row locks. Enough for the concurrency tests, though there is no
// rollback. Plain method calls are not synchronized; concurrent
// tests must go through WithTx.
type FakeRepo struct {
	txMu sync.Mutex

	Barbers       map[uint]*models.Barber
	WorkingHours  map[uint]map[int]*models.WorkingHour
	Overrides     []*models.WorkingHourOverride
	Requests      map[uint]*models.AppointmentRequest
	Slots         map[uint]*models.AppointmentSlot
	Subscriptions map[uint]*models.Subscription

	nextID uint
}

func NewFakeRepo() *FakeRepo {
	return &FakeRepo{
		Barbers:       make(map[uint]*models.Barber),
		WorkingHours:  make(map[uint]map[int]*models.WorkingHour),
		Requests:      make(map[uint]*models.AppointmentRequest),
		Slots:         make(map[uint]*models.AppointmentSlot),
		Subscriptions: make(map[uint]*models.Subscription),
		nextID:        1000,
	}
}

func (f *FakeRepo) newID() uint {
	f.nextID++
	return f.nextID
}

// ---- seeding helpers ----

func (f *FakeRepo) AddBarber(b *models.Barber) *models.Barber {
	if b.ID == 0 {
		b.ID = f.newID()
	}
	f.Barbers[b.ID] = b
	return b
}

func (f *FakeRepo) AddWorkingHour(wh *models.WorkingHour) {
	if f.WorkingHours[wh.BarberID] == nil {
		f.WorkingHours[wh.BarberID] = make(map[int]*models.WorkingHour)
	}
	f.WorkingHours[wh.BarberID][wh.DayOfWeek] = wh
}

func (f *FakeRepo) AddRequest(r *models.AppointmentRequest) *models.AppointmentRequest {
	if r.ID == 0 {
		r.ID = f.newID()
	}
	f.Requests[r.ID] = r
	return r
}

func (f *FakeRepo) AddSlot(s *models.AppointmentSlot) *models.AppointmentSlot {
	if s.ID == 0 {
		s.ID = f.newID()
	}
	f.Slots[s.ID] = s
	return s
}

func (f *FakeRepo) AddSubscription(s *models.Subscription) *models.Subscription {
	if s.ID == 0 {
		s.ID = f.newID()
	}
	f.Subscriptions[s.ID] = s
	return s
}

// ActiveSlotCount is a test assertion helper.
func (f *FakeRepo) ActiveSlotCount() int {
	return len(f.Slots)
}

// ---- booking.Repository ----

func (f *FakeRepo) WithTx(ctx context.Context, fn func(booking.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *FakeRepo) LockBarberSchedule(ctx context.Context, barberID uint) error {
	if f.Barbers[barberID] == nil {
		return httperr.ErrBusiness("barber_not_found")
	}
	return nil
}

func (f *FakeRepo) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	return f.Barbers[id], nil
}

func (f *FakeRepo) GetWorkingHour(ctx context.Context, barberID uint, dayOfWeek int) (*models.WorkingHour, error) {
	if days := f.WorkingHours[barberID]; days != nil {
		return days[dayOfWeek], nil
	}
	return nil, nil
}

func (f *FakeRepo) ListOverridesForDay(ctx context.Context, barberID uint, date string) ([]models.WorkingHourOverride, error) {
	var out []models.WorkingHourOverride
	for _, ov := range f.Overrides {
		if ov.BarberID == barberID && ov.Date == date {
			out = append(out, *ov)
		}
	}
	return out, nil
}

func (f *FakeRepo) CreateOverride(ctx context.Context, ov *models.WorkingHourOverride) error {
	if ov.ID == 0 {
		ov.ID = f.newID()
	}
	f.Overrides = append(f.Overrides, ov)
	return nil
}

func (f *FakeRepo) GetRequest(ctx context.Context, id uint) (*models.AppointmentRequest, error) {
	req, ok := f.Requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (f *FakeRepo) CreateRequest(ctx context.Context, req *models.AppointmentRequest) error {
	if req.ID == 0 {
		req.ID = f.newID()
	}
	cp := *req
	f.Requests[req.ID] = &cp
	return nil
}

func (f *FakeRepo) UpdateRequest(ctx context.Context, req *models.AppointmentRequest) error {
	cp := *req
	f.Requests[req.ID] = &cp
	return nil
}

func (f *FakeRepo) ListPendingRequestsForDay(ctx context.Context, barberID uint, date string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, req := range f.Requests {
		if req.BarberID == barberID && req.Date == date && req.Status == string(booking.StatusPending) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *FakeRepo) FindActiveRequestByPhone(ctx context.Context, phone string) (*models.AppointmentRequest, error) {
	var best *models.AppointmentRequest
	for _, req := range f.Requests {
		if req.CustomerPhone != phone {
			continue
		}
		if req.Status != string(booking.StatusPending) && req.Status != string(booking.StatusApproved) {
			continue
		}
		if best == nil || req.Date > best.Date ||
			(req.Date == best.Date && req.RequestedStartTime > best.RequestedStartTime) {
			best = req
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *FakeRepo) ListActiveRequestsForSubscription(ctx context.Context, subscriptionID uint, fromDate string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, req := range f.Requests {
		if req.SubscriptionID == nil || *req.SubscriptionID != subscriptionID {
			continue
		}
		if req.Status != string(booking.StatusPending) && req.Status != string(booking.StatusApproved) {
			continue
		}
		if req.Date < fromDate {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (f *FakeRepo) AssertNoSlotConflict(ctx context.Context, barberID uint, date, start, end string) error {
	for _, s := range f.Slots {
		// Zero-padded "HH:MM" strings compare like times.
		if s.BarberID == barberID && s.Date == date && s.StartTime < end && s.EndTime > start {
			return httperr.ErrBusiness("slot_conflict")
		}
	}
	return nil
}

func (f *FakeRepo) CreateSlot(ctx context.Context, slot *models.AppointmentSlot) error {
	if slot.ID == 0 {
		slot.ID = f.newID()
	}
	cp := *slot
	f.Slots[slot.ID] = &cp
	return nil
}

func (f *FakeRepo) DeleteSlotByRequest(ctx context.Context, requestID uint) error {
	for id, s := range f.Slots {
		if s.AppointmentRequestID == requestID {
			delete(f.Slots, id)
		}
	}
	return nil
}

func (f *FakeRepo) GetSlotByRequest(ctx context.Context, requestID uint) (*models.AppointmentSlot, error) {
	for _, s := range f.Slots {
		if s.AppointmentRequestID == requestID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeRepo) ListSlotsForDay(ctx context.Context, barberID uint, date string) ([]models.AppointmentSlot, error) {
	var out []models.AppointmentSlot
	for _, s := range f.Slots {
		if s.BarberID == barberID && s.Date == date {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *FakeRepo) GetSubscription(ctx context.Context, id uint) (*models.Subscription, error) {
	sub, ok := f.Subscriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (f *FakeRepo) ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range f.Subscriptions {
		if sub.IsActive {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *FakeRepo) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	cp := *sub
	f.Subscriptions[sub.ID] = &cp
	return nil
}

var _ booking.Repository = (*FakeRepo)(nil)
