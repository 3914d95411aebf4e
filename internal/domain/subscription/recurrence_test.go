package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func weeklySub() *models.Subscription {
	return &models.Subscription{
		RecurrenceType:  RecurrenceWeekly,
		DayOfWeek:       1, // Monday
		StartTime:       "10:00",
		DurationMinutes: 30,
		StartDate:       "2026-03-04", // a Wednesday
	}
}

func TestValidate(t *testing.T) {
	sub := weeklySub()
	assert.NoError(t, Validate(sub))

	sub = weeklySub()
	sub.RecurrenceType = "daily"
	assert.Error(t, Validate(sub))

	sub = weeklySub()
	sub.WeekOfMonth = intPtr(2)
	assert.Error(t, Validate(sub), "week_of_month only valid for monthly")

	sub = weeklySub()
	sub.RecurrenceType = RecurrenceMonthly
	assert.Error(t, Validate(sub), "monthly requires week_of_month")

	sub = weeklySub()
	sub.RecurrenceType = RecurrenceMonthly
	sub.WeekOfMonth = intPtr(6)
	assert.Error(t, Validate(sub))

	sub = weeklySub()
	sub.StartTime = "25:00"
	assert.Error(t, Validate(sub))

	sub = weeklySub()
	sub.EndDate = strPtr("2026-01-01")
	assert.Error(t, Validate(sub), "end before start")
}

func TestNextOccurrenceWeekly(t *testing.T) {
	sub := weeklySub()

	// First occurrence is the first Monday on or after the start date.
	next, ok, err := NextOccurrence(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-09", next)

	sub.LastGeneratedDate = next
	next, ok, err = NextOccurrence(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-16", next)
}

func TestNextOccurrenceBiweekly(t *testing.T) {
	sub := weeklySub()
	sub.RecurrenceType = RecurrenceBiweekly
	sub.LastGeneratedDate = "2026-03-09"

	next, ok, err := NextOccurrence(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-23", next)
}

func TestNextOccurrenceRespectsEndDate(t *testing.T) {
	sub := weeklySub()
	sub.LastGeneratedDate = "2026-03-09"
	sub.EndDate = strPtr("2026-03-15")

	_, ok, err := NextOccurrence(sub)
	require.NoError(t, err)
	assert.False(t, ok, "next Monday is past the end date")
}

func TestNextOccurrenceMonthly(t *testing.T) {
	sub := &models.Subscription{
		RecurrenceType:  RecurrenceMonthly,
		DayOfWeek:       5, // Friday
		WeekOfMonth:     intPtr(2),
		StartTime:       "10:00",
		DurationMinutes: 30,
		StartDate:       "2026-03-01",
	}

	// Second Friday of March 2026.
	next, ok, err := NextOccurrence(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-13", next)

	sub.LastGeneratedDate = next
	next, ok, err = NextOccurrence(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-04-10", next)
}

func TestNextOccurrenceMonthlyFifthWeekdaySkips(t *testing.T) {
	// February, March and April 2026 all have four Fridays; the next
	// month with a fifth is May (May 29).
	sub := &models.Subscription{
		RecurrenceType:  RecurrenceMonthly,
		DayOfWeek:       5, // Friday
		WeekOfMonth:     intPtr(5),
		StartTime:       "10:00",
		DurationMinutes: 30,
		StartDate:       "2026-01-01",
		// Fifth Friday of January 2026.
		LastGeneratedDate: "2026-01-30",
	}

	next, ok, err := NextOccurrence(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-05-29", next, "months without a fifth Friday are skipped, never downgraded to the fourth")
}

func TestNextOccurrenceMonthlyRejectsBadWeekOfMonth(t *testing.T) {
	// A corrupt row must error out instead of scanning months forever.
	sub := &models.Subscription{
		RecurrenceType:  RecurrenceMonthly,
		DayOfWeek:       5,
		WeekOfMonth:     intPtr(6),
		StartTime:       "10:00",
		DurationMinutes: 30,
		StartDate:       "2026-03-01",
	}

	_, _, err := NextOccurrence(sub)
	assert.Error(t, err)

	sub.WeekOfMonth = intPtr(0)
	_, _, err = NextOccurrence(sub)
	assert.Error(t, err)
}

func TestNthWeekdayOfMonth(t *testing.T) {
	// March 2026 starts on a Sunday.
	d, ok := nthWeekdayOfMonth(2026, 3, 0, 1) // 1st Sunday
	require.True(t, ok)
	assert.Equal(t, "2026-03-01", d.Format("2006-01-02"))

	d, ok = nthWeekdayOfMonth(2026, 3, 5, 4) // 4th Friday
	require.True(t, ok)
	assert.Equal(t, "2026-03-27", d.Format("2006-01-02"))

	_, ok = nthWeekdayOfMonth(2026, 4, 5, 5) // no 5th Friday in April 2026
	assert.False(t, ok)
}
