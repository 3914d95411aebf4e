package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	domainbooking "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/domain/booking/bookingtest"
	domainsub "github.com/Tuksal-Software/barber-sub000/internal/domain/subscription"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
)

func fixedDay(date string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse("2006-01-02", date)
		return t.Add(8 * time.Hour)
	}
}

func strPtr(v string) *string { return &v }

func seedWeeklySub(repo *bookingtest.FakeRepo) *models.Subscription {
	barber := repo.AddBarber(&models.Barber{Name: "Emre", IsActive: true, SlotDuration: 30})
	return repo.AddSubscription(&models.Subscription{
		BarberID:        barber.ID,
		CustomerName:    "Ali",
		CustomerPhone:   "+905550001122",
		RecurrenceType:  domainsub.RecurrenceWeekly,
		DayOfWeek:       1, // Monday
		StartTime:       "10:00",
		DurationMinutes: 30,
		StartDate:       "2026-03-04",
		IsActive:        true,
	})
}

func newGenerate(repo *bookingtest.FakeRepo, today string) *GenerateOccurrences {
	uc := NewGenerateOccurrences(repo, zerolog.Nop())
	uc.now = fixedDay(today)
	return uc
}

func TestGenerateMaterializesNextOccurrence(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sub := seedWeeklySub(repo)

	uc := newGenerate(repo, "2026-03-05")
	created, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	reqs, err := repo.ListActiveRequestsForSubscription(context.Background(), sub.ID, "2026-03-05")
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	req := reqs[0]
	assert.Equal(t, "2026-03-09", req.Date)
	assert.Equal(t, "10:00", req.RequestedStartTime)
	assert.Equal(t, "10:30", req.RequestedEndTime)
	assert.Equal(t, string(domainbooking.StatusPending), req.Status)
	require.NotNil(t, req.SubscriptionID)
	assert.Equal(t, sub.ID, *req.SubscriptionID)

	stored, _ := repo.GetSubscription(context.Background(), sub.ID)
	assert.Equal(t, "2026-03-09", stored.LastGeneratedDate)

	// The following tick materializes the week after.
	created, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	stored, _ = repo.GetSubscription(context.Background(), sub.ID)
	assert.Equal(t, "2026-03-16", stored.LastGeneratedDate)
}

func TestGenerateSkipsPastOccurrencesSilently(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sub := seedWeeklySub(repo)

	// Rule dormant for weeks: past Mondays must be skipped, not
	// materialized.
	uc := newGenerate(repo, "2026-03-24")
	created, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	reqs, err := repo.ListActiveRequestsForSubscription(context.Background(), sub.ID, "2026-01-01")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "2026-03-30", reqs[0].Date, "first Monday on or after today")
}

func TestGenerateDeactivatesExhaustedRule(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sub := seedWeeklySub(repo)
	sub.EndDate = strPtr("2026-03-10")
	sub.LastGeneratedDate = "2026-03-09"
	repo.Subscriptions[sub.ID] = sub

	uc := newGenerate(repo, "2026-03-09")
	created, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	stored, _ := repo.GetSubscription(context.Background(), sub.ID)
	assert.False(t, stored.IsActive, "a rule past its end date is terminal")
}

func TestGenerateRespectsHorizon(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sub := seedWeeklySub(repo)
	sub.StartDate = "2026-06-01"
	repo.Subscriptions[sub.ID] = sub

	uc := newGenerate(repo, "2026-03-05")
	created, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created, "occurrences past the horizon wait for a later tick")
}

func TestDeactivateCancelsOnlyFutureOccurrences(t *testing.T) {
	repo := bookingtest.NewFakeRepo()
	sender := bookingtest.NewFakeSender()
	sub := seedWeeklySub(repo)

	past := repo.AddRequest(&models.AppointmentRequest{
		BarberID:           sub.BarberID,
		SubscriptionID:     &sub.ID,
		CustomerName:       sub.CustomerName,
		CustomerPhone:      sub.CustomerPhone,
		Date:               "2026-03-02",
		RequestedStartTime: "10:00",
		Status:             string(domainbooking.StatusPending),
	})
	future := repo.AddRequest(&models.AppointmentRequest{
		BarberID:           sub.BarberID,
		SubscriptionID:     &sub.ID,
		CustomerName:       sub.CustomerName,
		CustomerPhone:      sub.CustomerPhone,
		Date:               "2026-03-16",
		RequestedStartTime: "10:00",
		Status:             string(domainbooking.StatusPending),
	})

	cancel := ucbooking.NewCancelRequest(repo, sender, audit.NewDispatcher(nil), zerolog.Nop())
	uc := NewDeactivateSubscription(repo, cancel, audit.NewDispatcher(nil))
	uc.now = fixedDay("2026-03-10")

	cancelled, err := uc.Execute(context.Background(), sub.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)

	stored, _ := repo.GetSubscription(context.Background(), sub.ID)
	assert.False(t, stored.IsActive)

	pastReq, _ := repo.GetRequest(context.Background(), past.ID)
	futureReq, _ := repo.GetRequest(context.Background(), future.ID)
	assert.Equal(t, string(domainbooking.StatusPending), pastReq.Status, "past occurrences stay untouched")
	assert.Equal(t, string(domainbooking.StatusCancelled), futureReq.Status)
}
