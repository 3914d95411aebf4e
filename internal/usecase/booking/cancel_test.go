package booking

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/domain/booking/bookingtest"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
)

func newCancel(repo *bookingtest.FakeRepo, sender *bookingtest.FakeSender) *CancelRequest {
	return NewCancelRequest(repo, sender, audit.NewDispatcher(nil), zerolog.Nop())
}

func TestCancelApprovedFreesInterval(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	approve := newApprove(repo, sender)
	_, _, err := approve.Execute(context.Background(), req.ID, 30, 1)
	require.NoError(t, err)
	require.Equal(t, 1, repo.ActiveSlotCount())

	cancel := newCancel(repo, sender)
	cancelled, err := cancel.Execute(context.Background(), req.ID, domain.CancelledByStaff, true)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.Equal(t, domain.CancelledByStaff, cancelled.CancelledBy)
	assert.Equal(t, 0, repo.ActiveSlotCount(), "slot is deleted, not soft-cancelled")

	// The freed interval is immediately bookable again.
	other := pendingRequest(repo, barber.ID, monday, "09:00")
	_, _, err = approve.Execute(context.Background(), other.ID, 30, 1)
	assert.NoError(t, err)
}

func TestCancelIsIdempotent(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	cancel := newCancel(repo, sender)
	_, err := cancel.Execute(context.Background(), req.ID, domain.CancelledByStaff, true)
	require.NoError(t, err)
	sentAfterFirst := sender.SentTo("+905550001122")

	// Second cancel: no error, no second notification.
	_, err = cancel.Execute(context.Background(), req.ID, domain.CancelledByStaff, true)
	require.NoError(t, err)
	assert.Equal(t, sentAfterFirst, sender.SentTo("+905550001122"))
}

func TestCancelRejectedIsInvalidState(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)

	req := pendingRequest(repo, barber.ID, monday, "09:00")
	req.Status = string(domain.StatusRejected)
	repo.Requests[req.ID] = req

	cancel := newCancel(repo, sender)
	_, err := cancel.Execute(context.Background(), req.ID, domain.CancelledByStaff, false)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelUnknownRequest(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	cancel := newCancel(repo, bookingtest.NewFakeSender())

	_, err := cancel.Execute(context.Background(), 777, domain.CancelledByStaff, false)
	assert.True(t, httperr.IsBusiness(err, "request_not_found"))
}

func TestCancelSeesCancellationCommittedUnderLock(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	barber := seedBarber(repo)
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	// An admin cancellation lands while this staff cancel waits on
	// the barber lock; the fresh read under the lock must turn the
	// call into a no-op instead of overwriting the admin attribution.
	wrapped := &adminCancelOnLockRepo{FakeRepo: repo, requestID: req.ID}
	cancel := NewCancelRequest(wrapped, sender, audit.NewDispatcher(nil), zerolog.Nop())

	_, err := cancel.Execute(context.Background(), req.ID, domain.CancelledByStaff, true)
	require.NoError(t, err)

	stored, _ := repo.GetRequest(context.Background(), req.ID)
	assert.Equal(t, domain.CancelledByAdmin, stored.CancelledBy, "first cancellation keeps its attribution")
	assert.Equal(t, 0, sender.SentTo("+905550001122"), "no duplicate notification")
}

func TestCancelSurvivesNotificationFailure(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	sender.FailFor["+905550001122"] = true
	barber := seedBarber(repo)
	req := pendingRequest(repo, barber.ID, monday, "09:00")

	cancel := newCancel(repo, sender)
	cancelled, err := cancel.Execute(context.Background(), req.ID, domain.CancelledByStaff, true)
	require.NoError(t, err, "notification failure never fails the cancellation")
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
}
