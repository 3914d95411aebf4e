package notify

import "context"

// Sender delivers a text message to a phone number. Booking
// operations treat delivery as best-effort: failures are logged by
// callers and never surfaced as booking failures.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}
