package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/domain/booking/bookingtest"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

func newApprove(repo *bookingtest.FakeRepo, sender *bookingtest.FakeSender) *ApproveRequest {
	return NewApproveRequest(repo, sender, audit.NewDispatcher(nil), zerolog.Nop())
}

func pendingRequest(repo *bookingtest.FakeRepo, barberID uint, date, start string) *models.AppointmentRequest {
	return repo.AddRequest(&models.AppointmentRequest{
		BarberID:           barberID,
		CustomerName:       "Ali",
		CustomerPhone:      "+905550001122",
		Date:               date,
		RequestedStartTime: start,
		Status:             string(domain.StatusPending),
	})
}

func TestApproveCreatesSlotAndNotifies(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	uc := newApprove(repo, sender)
	approved, slot, err := uc.Execute(context.Background(), req.ID, 30, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), approved.Status)
	assert.Equal(t, "09:00", slot.StartTime)
	assert.Equal(t, "09:30", slot.EndTime)
	assert.Equal(t, req.ID, slot.AppointmentRequestID)
	assert.Equal(t, 1, sender.SentTo("+905550001122"))
}

func TestApproveRejectsBadInput(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)
	uc := newApprove(repo, sender)

	_, _, err := uc.Execute(context.Background(), 12345, 30, 1)
	assert.True(t, httperr.IsBusiness(err, "request_not_found"))

	req := pendingRequest(repo, barber.ID, monday, "09:00")
	_, _, err = uc.Execute(context.Background(), req.ID, 20, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))

	req.Status = string(domain.StatusCancelled)
	repo.Requests[req.ID] = req
	_, _, err = uc.Execute(context.Background(), req.ID, 30, 1)
	assert.True(t, httperr.IsBusiness(err, "request_not_pending"))
}

func TestApproveConflictLeavesRequestPending(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)

	repo.AddSlot(&models.AppointmentSlot{
		BarberID: barber.ID, Date: monday, StartTime: "09:00", EndTime: "09:30",
	})
	req := pendingRequest(repo, barber.ID, monday, "09:15")

	uc := newApprove(repo, sender)
	_, _, err := uc.Execute(context.Background(), req.ID, 30, 1)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	stored, _ := repo.GetRequest(context.Background(), req.ID)
	assert.Equal(t, string(domain.StatusPending), stored.Status, "failed approval must leave the request pending")
	assert.Equal(t, 0, sender.SentTo("+905550001122"))
}

func TestApproveDifferentDatesDoNotConflict(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)

	repo.AddSlot(&models.AppointmentSlot{
		BarberID: barber.ID, Date: "2026-03-16", StartTime: "09:00", EndTime: "09:30",
	})
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	uc := newApprove(repo, sender)
	_, _, err := uc.Execute(context.Background(), req.ID, 30, 1)
	assert.NoError(t, err)
}

// adminCancelOnLockRepo cancels the request at the moment the barber
// lock is granted, modelling an override cascade that committed while
// this caller was waiting on the lock.
type adminCancelOnLockRepo struct {
	*bookingtest.FakeRepo
	requestID uint
	once      sync.Once
}

func (r *adminCancelOnLockRepo) WithTx(ctx context.Context, fn func(domain.Repository) error) error {
	return r.FakeRepo.WithTx(ctx, func(domain.Repository) error { return fn(r) })
}

func (r *adminCancelOnLockRepo) LockBarberSchedule(ctx context.Context, barberID uint) error {
	if err := r.FakeRepo.LockBarberSchedule(ctx, barberID); err != nil {
		return err
	}
	r.once.Do(func() {
		req := r.Requests[r.requestID]
		req.Status = string(domain.StatusCancelled)
		req.CancelledBy = domain.CancelledByAdmin
	})
	return nil
}

func TestApproveReChecksStatusUnderLock(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	wrapped := &adminCancelOnLockRepo{FakeRepo: repo, requestID: req.ID}
	uc := NewApproveRequest(wrapped, sender, audit.NewDispatcher(nil), zerolog.Nop())

	_, _, err := uc.Execute(context.Background(), req.ID, 30, 1)
	assert.True(t, httperr.IsBusiness(err, "request_not_pending"))

	stored, _ := repo.GetRequest(context.Background(), req.ID)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status, "an admin cancellation must not be resurrected")
	assert.Equal(t, domain.CancelledByAdmin, stored.CancelledBy)
	assert.Equal(t, 0, repo.ActiveSlotCount(), "no slot inside the closed window")
	assert.Equal(t, 0, sender.SentTo("+905550001122"))
}

func TestApproveConcurrentOverlappingRequests(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)

	reqA := pendingRequest(repo, barber.ID, monday, "10:00")
	reqB := pendingRequest(repo, barber.ID, monday, "10:15")

	uc := newApprove(repo, sender)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{reqA.ID, reqB.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, _, errs[i] = uc.Execute(context.Background(), id, 30, 1)
		}(i, id)
	}
	wg.Wait()

	okCount, conflictCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case httperr.IsBusiness(err, "slot_conflict"):
			conflictCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, okCount, "exactly one approval wins")
	assert.Equal(t, 1, conflictCount, "the other fails with a conflict")
	assert.Equal(t, 1, repo.ActiveSlotCount(), "exactly one slot exists afterwards")
}
