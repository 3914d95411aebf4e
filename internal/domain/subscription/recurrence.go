package subscription

import (
	"time"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
)

const (
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
	RecurrenceMonthly  = "monthly"
)

const dateLayout = "2006-01-02"

// Validate checks a subscription's recurrence rule before it is
// persisted.
func Validate(sub *models.Subscription) error {
	switch sub.RecurrenceType {
	case RecurrenceWeekly, RecurrenceBiweekly:
		if sub.WeekOfMonth != nil {
			return httperr.ErrBusiness("week_of_month_not_allowed")
		}
	case RecurrenceMonthly:
		if sub.WeekOfMonth == nil || *sub.WeekOfMonth < 1 || *sub.WeekOfMonth > 5 {
			return httperr.ErrBusiness("week_of_month_required")
		}
	default:
		return httperr.ErrBusiness("invalid_recurrence_type")
	}

	if sub.DayOfWeek < 0 || sub.DayOfWeek > 6 {
		return httperr.ErrBusiness("invalid_day_of_week")
	}

	if _, err := timegrid.ToMinutes(sub.StartTime); err != nil {
		return err
	}
	if sub.DurationMinutes <= 0 {
		return httperr.ErrBusiness("invalid_duration")
	}

	if _, err := time.Parse(dateLayout, sub.StartDate); err != nil {
		return httperr.ErrBusiness("invalid_start_date")
	}
	if sub.EndDate != nil {
		end, err := time.Parse(dateLayout, *sub.EndDate)
		if err != nil {
			return httperr.ErrBusiness("invalid_end_date")
		}
		start, _ := time.Parse(dateLayout, sub.StartDate)
		if end.Before(start) {
			return httperr.ErrBusiness("end_before_start")
		}
	}

	return nil
}

// NextOccurrence computes the next occurrence date to materialize,
// based on the last generated date. ok=false means the rule is
// exhausted (past endDate).
func NextOccurrence(sub *models.Subscription) (string, bool, error) {
	start, err := time.Parse(dateLayout, sub.StartDate)
	if err != nil {
		return "", false, httperr.ErrBusiness("invalid_start_date")
	}

	var last *time.Time
	if sub.LastGeneratedDate != "" {
		t, err := time.Parse(dateLayout, sub.LastGeneratedDate)
		if err != nil {
			return "", false, httperr.ErrBusiness("invalid_last_generated_date")
		}
		last = &t
	}

	var next time.Time
	switch sub.RecurrenceType {
	case RecurrenceWeekly:
		next = nextByInterval(start, last, sub.DayOfWeek, 7)
	case RecurrenceBiweekly:
		next = nextByInterval(start, last, sub.DayOfWeek, 14)
	case RecurrenceMonthly:
		// Out-of-range values would make the month scan below loop
		// forever, so they are rejected here too, not only at intake.
		if sub.WeekOfMonth == nil || *sub.WeekOfMonth < 1 || *sub.WeekOfMonth > 5 {
			return "", false, httperr.ErrBusiness("week_of_month_required")
		}
		next = nextMonthly(start, last, sub.DayOfWeek, *sub.WeekOfMonth)
	default:
		return "", false, httperr.ErrBusiness("invalid_recurrence_type")
	}

	if sub.EndDate != nil {
		end, err := time.Parse(dateLayout, *sub.EndDate)
		if err != nil {
			return "", false, httperr.ErrBusiness("invalid_end_date")
		}
		if next.After(end) {
			return "", false, nil
		}
	}

	return next.Format(dateLayout), true, nil
}

// nextByInterval handles weekly and biweekly rules.
func nextByInterval(start time.Time, last *time.Time, dayOfWeek, intervalDays int) time.Time {
	if last != nil {
		return last.AddDate(0, 0, intervalDays)
	}

	// First occurrence: earliest date on the right weekday, not
	// before the start date.
	d := start
	for int(d.Weekday()) != dayOfWeek {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// nextMonthly finds the weekOfMonth-th dayOfWeek of the month after
// the last occurrence. Months that lack a fifth such weekday are
// skipped entirely, never downgraded to the fourth.
func nextMonthly(start time.Time, last *time.Time, dayOfWeek, weekOfMonth int) time.Time {
	var year int
	var month time.Month

	if last != nil {
		year, month = last.Year(), last.Month()
		year, month = advanceMonth(year, month)
	} else {
		year, month = start.Year(), start.Month()
	}

	for {
		if d, ok := nthWeekdayOfMonth(year, month, time.Weekday(dayOfWeek), weekOfMonth); ok {
			if last != nil || !d.Before(start) {
				return d
			}
		}
		year, month = advanceMonth(year, month)
	}
}

// nthWeekdayOfMonth returns the n-th (1-based) given weekday of a
// month, ok=false if the month has fewer than n of them.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) (time.Time, bool) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

func advanceMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
