package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"homestay/config"
	"homestay/infras/otel"
	bookingService "homestay/internal/domains/booking/service"
	reservationModel "homestay/internal/domains/reservation/model"
	reservationService "homestay/internal/domains/reservation/service"
	"homestay/shared/constant"
	"homestay/shared/timezone"
)

const batchSize = 200

// Expirer removes staged intents older than a cutoff.
type Expirer interface {
	Expire(ctx context.Context, source reservationModel.Source, cutoff time.Time, batch int) (int, error)
}

// Completer moves finished stays to completed.
type Completer interface {
	CompleteDue(ctx context.Context) (int, error)
}

var (
	_ Expirer   = (reservationService.Reservation)(nil)
	_ Completer = (bookingService.Booking)(nil)
)

// Sweeper drops abandoned checkout and cart intents on a fixed interval, and optionally
// completes confirmed bookings whose check-out has passed.
type Sweeper struct {
	intents  Expirer
	bookings Completer
	cfg      *config.Config
	otel     otel.Otel
	clock    timezone.Clock
}

func New(intents Expirer, bookings Completer, cfg *config.Config, otel otel.Otel, clock timezone.Clock) *Sweeper {
	return &Sweeper{
		intents:  intents,
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
		clock:    clock,
	}
}

func (s *Sweeper) interval() time.Duration {
	secs := s.cfg.Reservation.SweepIntervalSeconds
	if secs <= 0 {
		secs = constant.MinutesToSeconds
	}

	return time.Duration(secs) * time.Second
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval()).Msg("sweeper started")

	for {
		if err := s.Sweep(ctx); err != nil {
			log.Error().Err(err).Msg("sweep failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper stopped")

			return
		case <-ticker.C:
		}
	}
}

// Sweep runs one pass. Both sources are expired even when one of them fails.
func (s *Sweeper) Sweep(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".sweeper.Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()
	retention := map[reservationModel.Source]time.Duration{
		reservationModel.SourceCheckout: time.Duration(s.cfg.Reservation.CheckoutRetentionMinutes) * time.Minute,
		reservationModel.SourceCart:     time.Duration(s.cfg.Reservation.CartRetentionHours) * time.Hour,
	}

	var g errgroup.Group

	for source, keep := range retention {
		cutoff := now.Add(-keep)

		g.Go(func() error {
			n, err := s.intents.Expire(ctx, source, cutoff, batchSize)
			if err != nil {
				return fmt.Errorf("expire %s intents: %w", source, err)
			}

			if n > 0 {
				log.Info().Str("source", string(source)).Int("removed", n).Time("cutoff", cutoff).Msg("expired staged intents")
			}

			return nil
		})
	}

	if s.cfg.Reservation.AutoComplete {
		g.Go(func() error {
			n, err := s.bookings.CompleteDue(ctx)
			if err != nil {
				return fmt.Errorf("complete due bookings: %w", err)
			}

			if n > 0 {
				log.Info().Int("completed", n).Msg("completed finished stays")
			}

			return nil
		})
	}

	return g.Wait() //nolint:wrapcheck
}
