package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/subscription"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
)

// DefaultHorizonDays bounds how far ahead of today an occurrence is
// materialized. One tick generates at most one request per
// subscription.
const DefaultHorizonDays = 30

type GenerateOccurrences struct {
	repo        booking.Repository
	horizonDays int
	now         func() time.Time
	log         zerolog.Logger
}

func NewGenerateOccurrences(repo booking.Repository, log zerolog.Logger) *GenerateOccurrences {
	return &GenerateOccurrences{
		repo:        repo,
		horizonDays: DefaultHorizonDays,
		now:         timezone.Now,
		log:         log,
	}
}

// Execute runs one expansion tick over all active subscriptions and
// returns how many requests were created. Generated requests are
// ordinary pending requests: they flow through staff approval like a
// manually booked one.
func (uc *GenerateOccurrences) Execute(ctx context.Context) (int, error) {
	subs, err := uc.repo.ListActiveSubscriptions(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range subs {
		ok, err := uc.tick(ctx, &subs[i])
		if err != nil {
			uc.log.Error().Err(err).Uint("subscription_id", subs[i].ID).Msg("expansion tick failed")
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// tick advances one subscription by at most one occurrence.
func (uc *GenerateOccurrences) tick(ctx context.Context, sub *models.Subscription) (bool, error) {
	today := uc.now().Format("2006-01-02")
	horizon := uc.now().AddDate(0, 0, uc.horizonDays).Format("2006-01-02")
	origLastGenerated := sub.LastGeneratedDate

	// Skip occurrences already in the past without materializing
	// them; a dormant rule catches up silently.
	for {
		next, ok, err := domain.NextOccurrence(sub)
		if err != nil {
			return false, err
		}
		if !ok {
			// Rule exhausted past its end date: terminal.
			sub.IsActive = false
			return false, uc.repo.UpdateSubscription(ctx, sub)
		}

		if next < today {
			sub.LastGeneratedDate = next
			continue
		}
		if next > horizon {
			// Nothing to materialize this tick; persist any
			// catch-up advance.
			if sub.LastGeneratedDate != origLastGenerated {
				return false, uc.repo.UpdateSubscription(ctx, sub)
			}
			return false, nil
		}

		endTime, err := timegrid.AddMinutes(sub.StartTime, sub.DurationMinutes)
		if err != nil {
			return false, err
		}

		req := &models.AppointmentRequest{
			BarberID:           sub.BarberID,
			SubscriptionID:     &sub.ID,
			CustomerName:       sub.CustomerName,
			CustomerPhone:      sub.CustomerPhone,
			Date:               next,
			RequestedStartTime: sub.StartTime,
			RequestedEndTime:   endTime,
			Status:             string(booking.InitialStatus()),
			Reference:          uuid.NewString(),
		}
		if err := uc.repo.CreateRequest(ctx, req); err != nil {
			return false, err
		}

		sub.LastGeneratedDate = next
		return true, uc.repo.UpdateSubscription(ctx, sub)
	}
}
