package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
	ucsubscription "github.com/Tuksal-Software/barber-sub000/internal/usecase/subscription"
)

// Scheduler drives the recurring-appointment expander. Occurrences
// are materialized by a nightly tick plus an hourly top-up so a rule
// created during the day does not wait until midnight.
type Scheduler struct {
	cron *cron.Cron
	gen  *ucsubscription.GenerateOccurrences
	log  zerolog.Logger
}

func New(gen *ucsubscription.GenerateOccurrences, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(timezone.Location())),
		gen:  gen,
		log:  log,
	}
}

func (s *Scheduler) Start() error {
	tick := func() {
		created, err := s.gen.Execute(context.Background())
		if err != nil {
			s.log.Error().Err(err).Msg("subscription expansion failed")
			return
		}
		if created > 0 {
			s.log.Info().Int("created", created).Msg("subscription occurrences generated")
		}
	}

	if _, err := s.cron.AddFunc("5 0 * * *", tick); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 * * * *", tick); err != nil {
		return err
	}

	s.cron.Start()

	// One tick at boot covers downtime that spanned a schedule point.
	go tick()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
