package booking

import (
	"context"
	"time"

	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  timezone.Now,
	}
}

// Execute returns the bookable start times for a barber on a date.
// Read-only: safe for repeated polling. The authoritative overlap
// check happens again inside the approval transaction.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = barber.SlotDuration
	}

	day, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	wh, err := uc.repo.GetWorkingHour(ctx, in.BarberID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	// A day off is an empty list, not an error.
	if wh == nil || !wh.IsWorking {
		return []domain.TimeSlot{}, nil
	}

	windowStart, err := timegrid.ToMinutes(wh.StartTime)
	if err != nil {
		return nil, err
	}
	windowEnd, err := timegrid.ToMinutes(wh.EndTime)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.blockedIntervals(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}

	// Steps on today whose start has already passed are gone.
	cutoff := -1
	now := uc.now()
	if in.Date == now.Format("2006-01-02") {
		cutoff = now.Hour()*60 + now.Minute()
	}

	slots := []domain.TimeSlot{}
	for cur := windowStart; cur+duration <= windowEnd; cur += duration {
		if cur <= cutoff {
			continue
		}

		free := true
		for _, iv := range blocked {
			if timegrid.Overlaps(cur, cur+duration, iv[0], iv[1]) {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start: timegrid.ToTime(cur),
			End:   timegrid.ToTime(cur + duration),
		})
	}

	return slots, nil
}

// blockedIntervals merges reserved slots and override windows into
// minute intervals.
func (uc *GetAvailability) blockedIntervals(
	ctx context.Context,
	barberID uint,
	date string,
) ([][2]int, error) {

	var blocked [][2]int

	reserved, err := uc.repo.ListSlotsForDay(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	for _, s := range reserved {
		start, err := timegrid.ToMinutes(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timegrid.ToMinutes(s.EndTime)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, [2]int{start, end})
	}

	overrides, err := uc.repo.ListOverridesForDay(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	for _, ov := range overrides {
		start, err := timegrid.ToMinutes(ov.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timegrid.ToMinutes(ov.EndTime)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, [2]int{start, end})
	}

	return blocked, nil
}
