package app

import (
	"context"
	"time"

	"github.com/Dosada05/esports-hub/services"
	"github.com/rs/zerolog"
)

type scheduler struct {
	tournaments services.TournamentService
	payments    services.PaymentService
	interval    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

func newScheduler(tournaments services.TournamentService, payments services.PaymentService, interval time.Duration, logger zerolog.Logger) *scheduler {
	return &scheduler{
		tournaments: tournaments,
		payments:    payments,
		interval:    interval,
		logger:      logger.With().Str("component", "scheduler").Logger(),
		now:         time.Now,
	}
}

// Run executes once immediately, then on every tick until ctx is done.
func (s *scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *scheduler) tick(ctx context.Context) {
	now := s.now()

	updated, err := s.tournaments.AutoUpdateStatuses(ctx, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("tournament status update failed")
	} else if updated > 0 {
		s.logger.Info().Int("updated", updated).Msg("tournament statuses advanced")
	}

	expired, err := s.payments.ExpireStale(ctx, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("payment expiry failed")
	} else if expired > 0 {
		s.logger.Info().Int("expired", expired).Msg("stale payments expired")
	}
}
