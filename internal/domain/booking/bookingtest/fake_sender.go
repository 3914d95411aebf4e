package bookingtest

import (
	"context"
	"errors"
	"sync"

	"github.com/Tuksal-Software/barber-sub000/internal/notify"
)

type SentMessage struct {
	Phone   string
	Message string
}

// FakeSender records sent messages and can be told to fail for
// specific phones.
type FakeSender struct {
	mu      sync.Mutex
	Sent    []SentMessage
	FailFor map[string]bool
}

func NewFakeSender() *FakeSender {
	return &FakeSender{FailFor: make(map[string]bool)}
}

func (s *FakeSender) Send(ctx context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailFor[phone] {
		return errors.New("sms gateway unavailable")
	}
	s.Sent = append(s.Sent, SentMessage{Phone: phone, Message: message})
	return nil
}

func (s *FakeSender) SentTo(phone string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, m := range s.Sent {
		if m.Phone == phone {
			n++
		}
	}
	return n
}

var _ notify.Sender = (*FakeSender)(nil)
