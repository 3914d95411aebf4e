package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Challenge is the ephemeral one-time-code state for a customer
// self-cancellation. It lives only in the store, never in the
// database.
type Challenge struct {
	Phone                string    `json:"phone"`
	Code                 string    `json:"code"`
	AppointmentRequestID uint      `json:"appointment_request_id"`
	ExpiresAt            time.Time `json:"expires_at"`
	AttemptCount         int       `json:"attempt_count"`

	// Set after the attempt limit is reached. The challenge stays in
	// the store for its remaining TTL, code cleared, so further
	// attempts keep answering "too many" instead of "expired".
	Locked bool `json:"locked"`
}

// Store is a TTL-aware key-value store for challenges, keyed by
// phone. Get returns (nil, nil) for a missing or expired challenge.
type Store interface {
	// Put writes the challenge. ttl <= 0 keeps the remaining TTL of
	// an existing entry (used for attempt-count updates).
	Put(ctx context.Context, ch *Challenge, ttl time.Duration) error
	Get(ctx context.Context, phone string) (*Challenge, error)
	Delete(ctx context.Context, phone string) error
}

// GenerateCode produces a random 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
