package validators

import "strings"

// NormalizePhone strips spacing characters and validates an E.164-ish
// number. Returns "" when the input cannot be a phone number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separators are dropped
		default:
			return ""
		}
	}

	p := b.String()
	digits := strings.TrimPrefix(p, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return ""
	}
	return p
}
