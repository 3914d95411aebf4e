package selfcancel

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/domain/booking/bookingtest"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/otp"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
)

const customerPhone = "+905550001122"

type fixture struct {
	svc    *Service
	repo   *bookingtest.FakeRepo
	store  *otp.MemoryStore
	sender *bookingtest.FakeSender
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:   bookingtest.NewFakeRepo(),
		sender: bookingtest.NewFakeSender(),
	}
	f.now, _ = time.Parse(time.RFC3339, "2026-03-09T09:00:00Z")
	clock := func() time.Time { return f.now }

	f.store = otp.NewMemoryStoreWithClock(clock)
	cancel := ucbooking.NewCancelRequest(f.repo, f.sender, audit.NewDispatcher(nil), zerolog.Nop())
	f.svc = New(f.repo, f.store, f.sender, cancel, zerolog.Nop())
	f.svc.now = clock
	return f
}

func (f *fixture) seedPending(date, start string) *models.AppointmentRequest {
	barber := f.repo.AddBarber(&models.Barber{Name: "Emre", IsActive: true, SlotDuration: 30})
	return f.repo.AddRequest(&models.AppointmentRequest{
		BarberID:           barber.ID,
		CustomerName:       "Ali",
		CustomerPhone:      customerPhone,
		Date:               date,
		RequestedStartTime: start,
		Status:             string(domain.StatusPending),
	})
}

// issuedCode reaches into the store for the code the SMS carried.
func (f *fixture) issuedCode(t *testing.T) string {
	t.Helper()
	ch, err := f.store.Get(context.Background(), customerPhone)
	require.NoError(t, err)
	require.NotNil(t, ch)
	return ch.Code
}

func TestIssueAndVerifyCancelsRequest(t *testing.T) {
	f := newFixture(t)
	req := f.seedPending("2026-03-10", "10:00")

	require.NoError(t, f.svc.Issue(context.Background(), customerPhone))
	assert.Equal(t, 1, f.sender.SentTo(customerPhone), "code delivered by sms")

	code := f.issuedCode(t)
	require.Len(t, code, 6)

	require.NoError(t, f.svc.Verify(context.Background(), customerPhone, code))

	stored, _ := f.repo.GetRequest(context.Background(), req.ID)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Equal(t, domain.CancelledByCustomer, stored.CancelledBy)

	// The challenge is single-use.
	err := f.svc.Verify(context.Background(), customerPhone, code)
	assert.Equal(t, "challenge_expired", httperr.BusinessCode(err))
}

func TestIssueRejectsWhenNothingToCancel(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Issue(context.Background(), customerPhone)
	assert.Equal(t, "no_active_appointment", httperr.BusinessCode(err))
	assert.Equal(t, 0, f.sender.SentTo(customerPhone))
}

func TestIssueRejectsApprovedAppointment(t *testing.T) {
	f := newFixture(t)
	req := f.seedPending("2026-03-10", "10:00")
	req.Status = string(domain.StatusApproved)

	err := f.svc.Issue(context.Background(), customerPhone)
	assert.Equal(t, "cannot_self_cancel_approved", httperr.BusinessCode(err))
}

func TestIssueRejectsPastAppointment(t *testing.T) {
	f := newFixture(t)
	f.seedPending("2026-03-09", "08:00") // now is 09:00 the same day

	err := f.svc.Issue(context.Background(), customerPhone)
	assert.Equal(t, "too_late_already_past", httperr.BusinessCode(err))
}

func TestVerifyLocksOutAfterThreeWrongCodes(t *testing.T) {
	f := newFixture(t)
	req := f.seedPending("2026-03-10", "10:00")
	require.NoError(t, f.svc.Issue(context.Background(), customerPhone))
	code := f.issuedCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := f.svc.Verify(context.Background(), customerPhone, wrong)
	assert.Equal(t, "wrong_code", httperr.BusinessCode(err))
	err = f.svc.Verify(context.Background(), customerPhone, wrong)
	assert.Equal(t, "wrong_code", httperr.BusinessCode(err))
	err = f.svc.Verify(context.Background(), customerPhone, wrong)
	assert.Equal(t, "too_many_attempts", httperr.BusinessCode(err))

	// The challenge is locked: even the right code keeps failing with
	// the same answer, not "expired".
	err = f.svc.Verify(context.Background(), customerPhone, code)
	assert.Equal(t, "too_many_attempts", httperr.BusinessCode(err))

	stored, _ := f.repo.GetRequest(context.Background(), req.ID)
	assert.Equal(t, string(domain.StatusPending), stored.Status)

	// Once the TTL runs out the lock goes with it.
	f.now = f.now.Add(ChallengeTTL + time.Minute)
	err = f.svc.Verify(context.Background(), customerPhone, code)
	assert.Equal(t, "challenge_expired", httperr.BusinessCode(err))
}

func TestVerifyExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	f.seedPending("2026-03-10", "10:00")
	require.NoError(t, f.svc.Issue(context.Background(), customerPhone))
	code := f.issuedCode(t)

	f.now = f.now.Add(ChallengeTTL + time.Minute)

	err := f.svc.Verify(context.Background(), customerPhone, code)
	assert.Equal(t, "challenge_expired", httperr.BusinessCode(err))
}

func TestReissueReplacesChallenge(t *testing.T) {
	f := newFixture(t)
	req := f.seedPending("2026-03-10", "10:00")

	require.NoError(t, f.svc.Issue(context.Background(), customerPhone))
	first := f.issuedCode(t)

	// Exactly one wrong attempt, then a fresh code resets the count.
	wrong := "000000"
	if wrong == first {
		wrong = "000001"
	}
	_ = f.svc.Verify(context.Background(), customerPhone, wrong)

	require.NoError(t, f.svc.Issue(context.Background(), customerPhone))
	second := f.issuedCode(t)

	require.NoError(t, f.svc.Verify(context.Background(), customerPhone, second))
	stored, _ := f.repo.GetRequest(context.Background(), req.ID)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
}
