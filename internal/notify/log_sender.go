package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender only logs messages. Used when Twilio credentials are not
// configured (local development).
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, phone, message string) error {
	s.log.Info().Str("phone", phone).Str("message", message).Msg("sms (log only)")
	return nil
}

var _ Sender = (*LogSender)(nil)
