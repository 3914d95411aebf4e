package timezone

import "time"

// The business runs in a single fixed timezone. It is set once at
// startup from config and read everywhere else.

const DefaultTimezone = "Europe/Istanbul"

var businessLoc *time.Location

func init() {
	businessLoc, _ = time.LoadLocation(DefaultTimezone)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetBusiness configures the business timezone. Invalid names keep
// the default.
func SetBusiness(tz string) {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			businessLoc = loc
		}
	}
}

func Location() *time.Location {
	return businessLoc
}

func Now() time.Time {
	return time.Now().In(businessLoc)
}

// ParseDate parses a "2006-01-02" calendar date in the business
// timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, businessLoc)
}
