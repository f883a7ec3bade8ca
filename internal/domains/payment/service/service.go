package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"homestay/infras/metrics"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/infras/vnpay"
	"homestay/internal/domains/booking/event"
	bookingModel "homestay/internal/domains/booking/model"
	bookingRepository "homestay/internal/domains/booking/repository"
	"homestay/internal/domains/payment/model"
	reservationModel "homestay/internal/domains/reservation/model"
	reservationRepository "homestay/internal/domains/reservation/repository"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/orderref"
	"homestay/shared/timezone"
)

// maxAttempts bounds retries of a promotion that lost to a concurrent insert.
const maxAttempts = 3

const sourceAny = "any"

type Payment interface {
	HandleCallback(ctx context.Context, params url.Values, source reservationModel.Source) (model.Outcome, error)
	Reconcile(ctx context.Context, result model.PaymentResult) (model.Outcome, error)
}

type serviceImpl struct {
	tx        postgres.Transactor
	intents   reservationRepository.Reservation
	bookings  bookingRepository.Booking
	gateway   vnpay.Client
	publisher event.Publisher
	otel      otel.Otel
	clock     timezone.Clock
	metrics   *metrics.Metrics
}

func New(
	tx postgres.Transactor,
	intents reservationRepository.Reservation,
	bookings bookingRepository.Booking,
	gateway vnpay.Client,
	publisher event.Publisher,
	otel otel.Otel,
	clock timezone.Clock,
	m *metrics.Metrics,
) Payment {
	return &serviceImpl{
		tx:        tx,
		intents:   intents,
		bookings:  bookings,
		gateway:   gateway,
		publisher: publisher,
		otel:      otel,
		clock:     clock,
		metrics:   m,
	}
}

// HandleCallback verifies raw gateway parameters and reconciles them. An untrusted callback
// yields a verification_failed outcome and touches nothing.
func (s *serviceImpl) HandleCallback(ctx context.Context, params url.Values, source reservationModel.Source) (out model.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleCallback")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cb, err := s.gateway.VerifyCallback(ctx, params)
	if err != nil {
		out = model.Outcome{Kind: model.KindVerificationFailed}
		s.record(source, params.Get("vnp_TxnRef"), out, err)

		return out, nil
	}

	return s.Reconcile(ctx, model.FromCallback(cb, source))
}

// Reconcile applies a verified payment result exactly once. Any number of calls with the same
// result settle on one booking; repeats after the first report unknown. A returned error means
// the store failed and nothing was changed.
func (s *serviceImpl) Reconcile(ctx context.Context, result model.PaymentResult) (out model.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("order_reference", result.OrderReference)

	if !result.Success {
		out = model.Outcome{Kind: model.KindPaymentFailed, ResponseCode: result.ResponseCode}
		s.record(result.Source, result.OrderReference, out, nil)

		return out, nil
	}

	intentID, err := orderref.Parse(result.OrderReference)
	if err != nil {
		out = model.Outcome{Kind: model.KindInvalidReference, ResponseCode: result.ResponseCode}
		s.record(result.Source, result.OrderReference, out, err)

		return out, nil
	}

	scope.SetAttribute("intent_id", intentID)

	var (
		intent  reservationModel.StagedIntent
		booking bookingModel.Booking
	)

	for attempt := 1; ; attempt++ {
		out, intent, booking, err = s.promote(ctx, intentID, result.Source)
		if err == nil {
			break
		}

		retryable := postgres.HasCode(err,
			constant.PqErrorCodeExclusionViolation,
			constant.PqErrorCodeSerializationFailure,
			constant.PqErrorCodeDeadlockDetected,
		)
		if !retryable || attempt >= maxAttempts {
			log.Error().Err(err).Int64("intent_id", intentID).Int("attempt", attempt).Msg("failed to reconcile payment")

			return model.Outcome{}, fmt.Errorf("failed to reconcile payment: %w", err)
		}

		log.Warn().Err(err).Int64("intent_id", intentID).Int("attempt", attempt).Msg("promotion conflicted, retrying")
	}

	out.ResponseCode = result.ResponseCode

	if out.Kind == model.KindUnknown {
		out.Reconciled = s.reconciled(ctx, intentID)
	}

	s.announce(ctx, out, intent, booking)

	source := result.Source
	if intent.Source != "" {
		source = intent.Source
	}

	s.record(source, result.OrderReference, out, nil)

	return out, nil
}

// promote runs claim, lock, authoritative overlap check and insert in one transaction. The
// claim deletes the intent, so whichever of concurrent callers claims it alone goes on; the
// advisory lock keeps two promotions for the same property from both seeing no overlap.
func (s *serviceImpl) promote(ctx context.Context, intentID int64, source reservationModel.Source) (out model.Outcome, intent reservationModel.StagedIntent, booking bookingModel.Booking, err error) {
	out = model.Outcome{Kind: model.KindUnknown, IntentID: intentID}

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		claimed, ok, err := s.intents.ClaimTx(ctx, tx, intentID, source)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		intent = claimed
		out.PropertyID = intent.PropertyID

		if err := s.bookings.LockPropertyTx(ctx, tx, intent.PropertyID); err != nil {
			return err
		}

		overlap, err := s.bookings.HasOverlapTx(ctx, tx, intent.PropertyID, intent.Range())
		if err != nil {
			return err
		}

		if overlap {
			out.Kind = model.KindLostRace

			return nil
		}

		now := s.clock.Now()
		booking = bookingModel.Booking{
			ID:         uuid.NewString(),
			PropertyID: intent.PropertyID,
			UserID:     intent.UserID,
			IntentID:   intent.ID,
			CheckIn:    intent.CheckIn,
			CheckOut:   intent.CheckOut,
			Guests:     intent.Guests,
			TotalPrice: intent.TotalPrice,
			Status:     bookingModel.StatusPending,
			Metadata:   gModel.NewMetadata(now, intent.UserID),
		}

		if err := s.bookings.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		out.Kind = model.KindConfirmed
		out.BookingID = booking.ID

		return nil
	})
	if err != nil {
		return model.Outcome{}, reservationModel.StagedIntent{}, bookingModel.Booking{}, err
	}

	return out, intent, booking, nil
}

// reconciled reports whether a booking already exists for the intent. Lookup failures count
// as not reconciled; the outcome stays unknown either way.
func (s *serviceImpl) reconciled(ctx context.Context, intentID int64) bool {
	b, err := s.bookings.Get(ctx, gDto.And(gDto.Eq(bookingModel.FieldIntentID, intentID)))
	if err != nil {
		log.Warn().Err(err).Int64("intent_id", intentID).Msg("failed to look up booking for intent")

		return false
	}

	return b.ID != constant.Empty
}

func (s *serviceImpl) announce(ctx context.Context, out model.Outcome, intent reservationModel.StagedIntent, booking bookingModel.Booking) {
	now := s.clock.Now()

	switch out.Kind {
	case model.KindConfirmed:
		s.publisher.Publish(ctx, event.FromBooking(event.TypeConfirmed, booking, now))
	case model.KindLostRace:
		s.publisher.Publish(ctx, event.Event{
			Type:       event.TypeLostRace,
			IntentID:   intent.ID,
			PropertyID: intent.PropertyID,
			UserID:     intent.UserID,
			CheckIn:    intent.CheckIn.Format(constant.CalendarFormat),
			CheckOut:   intent.CheckOut.Format(constant.CalendarFormat),
			OccurredAt: now,
		})
	}
}

func (s *serviceImpl) record(source reservationModel.Source, ref string, out model.Outcome, cause error) {
	label := string(source)
	if label == "" {
		label = sourceAny
	}

	s.metrics.ObserveReconcile(label, string(out.Kind))

	level := zerolog.InfoLevel

	switch out.Kind {
	case model.KindLostRace, model.KindVerificationFailed, model.KindInvalidReference:
		level = zerolog.WarnLevel
	}

	evt := log.WithLevel(level)
	if cause != nil {
		evt = evt.Err(cause)
	}

	evt.
		Str("order_reference", ref).
		Int64("intent_id", out.IntentID).
		Str("source", label).
		Str("outcome", string(out.Kind)).
		Str("booking_id", out.BookingID).
		Str("response_code", out.ResponseCode).
		Msg("payment reconciled")
}
