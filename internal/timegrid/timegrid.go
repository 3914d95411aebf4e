package timegrid

import (
	"fmt"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
)

// ErrInvalidFormat is returned for anything that is not a
// well-formed zero-padded "HH:MM" string.
var ErrInvalidFormat = httperr.ErrBusiness("invalid_time_format")

// ToMinutes converts "HH:MM" to minutes since midnight.
func ToMinutes(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, ErrInvalidFormat
	}

	h, ok1 := twoDigits(hm[0], hm[1])
	m, ok2 := twoDigits(hm[3], hm[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, ErrInvalidFormat
	}

	return h*60 + m, nil
}

// ToTime converts minutes since midnight back to "HH:MM".
func ToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd)
// and [bStart,bEnd) intersect. Arguments are minutes since midnight.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsHM is Overlaps over "HH:MM" strings.
func OverlapsHM(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := ToMinutes(aStart)
	if err != nil {
		return false, err
	}
	ae, err := ToMinutes(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := ToMinutes(bStart)
	if err != nil {
		return false, err
	}
	be, err := ToMinutes(bEnd)
	if err != nil {
		return false, err
	}
	return Overlaps(as, ae, bs, be), nil
}

// AddMinutes shifts an "HH:MM" time forward.
func AddMinutes(hm string, minutes int) (string, error) {
	m, err := ToMinutes(hm)
	if err != nil {
		return "", err
	}
	return ToTime(m + minutes), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
