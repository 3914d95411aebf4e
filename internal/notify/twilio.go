package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioSender struct {
	client *twilio.RestClient
	from   string
	log    zerolog.Logger
}

func NewTwilioSender(accountSID, authToken, from string, log zerolog.Logger) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  log,
	}
}

func (s *TwilioSender) Send(ctx context.Context, phone, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("sms send failed")
		return err
	}

	if resp.Sid != nil {
		s.log.Info().Str("phone", phone).Str("sid", *resp.Sid).Msg("sms sent")
	} else {
		s.log.Warn().Str("phone", phone).Msg("sms sent but no sid returned")
	}
	return nil
}

var _ Sender = (*TwilioSender)(nil)
