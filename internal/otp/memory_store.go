package otp

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	challenge Challenge
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when no redis address is
// configured, and in tests (the clock is injectable).
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock builds a store with a fake clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = now
	return s
}

func (s *MemoryStore) Put(ctx context.Context, ch *Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(ttl)
	if ttl <= 0 {
		// Keep the remaining TTL of the existing entry.
		if existing, ok := s.entries[ch.Phone]; ok {
			expiresAt = existing.expiresAt
		} else {
			expiresAt = s.now()
		}
	}

	s.entries[ch.Phone] = memoryEntry{
		challenge: *ch,
		expiresAt: expiresAt,
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, phone string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[phone]
	if !ok {
		return nil, nil
	}

	// Lazy expiry, no background sweeper.
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, phone)
		return nil, nil
	}

	ch := entry.challenge
	return &ch, nil
}

func (s *MemoryStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, phone)
	return nil
}

var _ Store = (*MemoryStore)(nil)
