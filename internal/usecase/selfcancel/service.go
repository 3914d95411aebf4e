package selfcancel

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/notify"
	"github.com/Tuksal-Software/barber-sub000/internal/otp"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
)

const (
	ChallengeTTL = 10 * time.Minute
	MaxAttempts  = 3
)

// Service runs the one-time-code flow that lets a customer cancel
// their own pending request without a staff session.
type Service struct {
	repo   domain.Repository
	store  otp.Store
	sender notify.Sender
	cancel *ucbooking.CancelRequest
	now    func() time.Time
	log    zerolog.Logger
}

func New(
	repo domain.Repository,
	store otp.Store,
	sender notify.Sender,
	cancel *ucbooking.CancelRequest,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		sender: sender,
		cancel: cancel,
		now:    timezone.Now,
		log:    log,
	}
}

// Issue checks the customer's active request and sends a 6-digit
// code by SMS. The challenge lives for 10 minutes.
func (s *Service) Issue(ctx context.Context, phone string) error {
	req, err := s.repo.FindActiveRequestByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if req == nil {
		return httperr.ErrBusiness("no_active_appointment")
	}

	past, err := s.isPast(req.Date, req.RequestedStartTime)
	if err != nil {
		return err
	}
	if past {
		return httperr.ErrBusiness("too_late_already_past")
	}

	// Approved appointments block a reserved interval; releasing one
	// is a staff decision.
	if domain.Status(req.Status) == domain.StatusApproved {
		return httperr.ErrBusiness("cannot_self_cancel_approved")
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	ch := &otp.Challenge{
		Phone:                phone,
		Code:                 code,
		AppointmentRequestID: req.ID,
		ExpiresAt:            s.now().Add(ChallengeTTL),
	}
	if err := s.store.Put(ctx, ch, ChallengeTTL); err != nil {
		return err
	}

	msg := fmt.Sprintf("Your cancellation code is %s. It expires in 10 minutes.", code)
	if err := s.sender.Send(ctx, phone, msg); err != nil {
		s.log.Warn().Err(err).Str("phone", phone).Msg("otp sms failed")
	}

	return nil
}

// Verify consumes the challenge. The third wrong code locks it for
// its remaining TTL; the right code executes the cancellation.
func (s *Service) Verify(ctx context.Context, phone, code string) error {
	ch, err := s.store.Get(ctx, phone)
	if err != nil {
		return err
	}
	if ch == nil {
		return httperr.ErrBusiness("challenge_expired")
	}

	// Wall-clock TTL is enforced here, not by a sweeper.
	if !s.now().Before(ch.ExpiresAt) {
		if err := s.store.Delete(ctx, phone); err != nil {
			return err
		}
		return httperr.ErrBusiness("challenge_expired")
	}

	if ch.Locked {
		return httperr.ErrBusiness("too_many_attempts")
	}

	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) != 1 {
		ch.AttemptCount++
		if ch.AttemptCount >= MaxAttempts {
			// Lock rather than delete: even a later correct code must
			// keep failing with "too many" until the TTL runs out.
			ch.Locked = true
			ch.Code = ""
			if err := s.store.Put(ctx, ch, 0); err != nil {
				return err
			}
			return httperr.ErrBusiness("too_many_attempts")
		}
		if err := s.store.Put(ctx, ch, 0); err != nil {
			return err
		}
		return httperr.ErrBusiness("wrong_code")
	}

	if _, err := s.cancel.Execute(ctx, ch.AppointmentRequestID, domain.CancelledByCustomer, true); err != nil {
		return err
	}

	return s.store.Delete(ctx, phone)
}

func (s *Service) isPast(date, startTime string) (bool, error) {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return false, httperr.ErrBusiness("invalid_date")
	}
	startMin, err := timegrid.ToMinutes(startTime)
	if err != nil {
		return false, err
	}
	return day.Add(time.Duration(startMin) * time.Minute).Before(s.now()), nil
}
