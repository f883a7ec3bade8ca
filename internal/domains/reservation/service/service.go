package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"homestay/config"
	"homestay/infras/metrics"
	"homestay/infras/otel"
	"homestay/infras/vnpay"
	propertyDto "homestay/internal/domains/property/model/dto"
	propertyService "homestay/internal/domains/property/service"
	"homestay/internal/domains/reservation/model"
	"homestay/internal/domains/reservation/model/dto"
	"homestay/internal/domains/reservation/repository"
	"homestay/shared/constant"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/orderref"
	"homestay/shared/timezone"
)

const defaultExpireBatch = 100

// Catalog is the property lookup staging depends on.
type Catalog interface {
	Get(ctx context.Context, id string) (propertyDto.PropertyResponse, error)
}

// Availability answers whether a property is free for a range.
type Availability interface {
	IsAvailable(ctx context.Context, propertyID string, dates daterange.DateRange, excludeBookingID string) (bool, error)
}

type Reservation interface {
	StageCheckout(ctx context.Context, userID string, req dto.StageRequest, clientIP string) (dto.StageResponse, error)
	StageCartItem(ctx context.Context, userID string, req dto.StageRequest) (dto.IntentResponse, error)
	ListCart(ctx context.Context, userID string) (dto.CartResponse, error)
	DiscardCart(ctx context.Context, intentID int64, userID string) error
	InitiatePayment(ctx context.Context, intentID int64, source model.Source, userID, clientIP string) (dto.PaymentResponse, error)
	Expire(ctx context.Context, source model.Source, cutoff time.Time, batch int) (int, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	catalog      Catalog
	availability Availability
	gateway      vnpay.Client
	cfg          *config.Config
	otel         otel.Otel
	clock        timezone.Clock
	metrics      *metrics.Metrics
}

func New(
	repo repository.Reservation,
	catalog Catalog,
	availability Availability,
	gateway vnpay.Client,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
	m *metrics.Metrics,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		catalog:      catalog,
		availability: availability,
		gateway:      gateway,
		cfg:          cfg,
		otel:         otel,
		clock:        clock,
		metrics:      m,
	}
}

// StageCheckout stores a checkout intent and returns it with a signed payment URL.
func (s *serviceImpl) StageCheckout(ctx context.Context, userID string, req dto.StageRequest, clientIP string) (res dto.StageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.StageCheckout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	intent, err := s.stage(ctx, model.SourceCheckout, userID, req)
	if err != nil {
		return res, err
	}

	payment, err := s.payment(intent, clientIP)
	if err != nil {
		return res, err
	}

	res.Intent.FromModel(intent)
	res.OrderReference = payment.OrderReference
	res.PaymentURL = payment.PaymentURL

	return res, nil
}

// StageCartItem stores a cart intent. Cart items are only checked against bookings, never
// against each other.
func (s *serviceImpl) StageCartItem(ctx context.Context, userID string, req dto.StageRequest) (res dto.IntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.StageCartItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	intent, err := s.stage(ctx, model.SourceCart, userID, req)
	if err != nil {
		return res, err
	}

	res.FromModel(intent)

	return res, nil
}

func (s *serviceImpl) stage(ctx context.Context, source model.Source, userID string, req dto.StageRequest) (model.StagedIntent, error) {
	dates, err := req.Range()
	if err != nil {
		return model.StagedIntent{}, model.ErrInvalidRange
	}

	property, err := s.bookable(ctx, req.PropertyID, dates, req.Guests)
	if err != nil {
		return model.StagedIntent{}, err
	}

	intent := req.ToModel(source, userID, dates, property.PricePerNight, gModel.NewMetadata(s.clock.Now(), userID))

	intent, err = s.repo.InsertReturning(ctx, intent)
	if err != nil {
		log.Error().Err(err).Str("source", string(source)).Str("property_id", req.PropertyID).Msg("failed to stage intent")

		return model.StagedIntent{}, fmt.Errorf("failed to stage intent: %w", err)
	}

	s.metrics.ObserveStaged(string(source))

	log.Info().
		Int64("intent_id", intent.ID).
		Str("source", string(source)).
		Str("property_id", intent.PropertyID).
		Str("range", dates.String()).
		Int64("total_price", intent.TotalPrice).
		Msg("intent staged")

	return intent, nil
}

// bookable runs the staging checks in order: range, property, guests, then availability.
func (s *serviceImpl) bookable(ctx context.Context, propertyID string, dates daterange.DateRange, guests int) (propertyDto.PropertyResponse, error) {
	if dates.Nights() <= 0 {
		return propertyDto.PropertyResponse{}, model.ErrInvalidRange
	}

	property, err := s.catalog.Get(ctx, propertyID)
	if errors.Is(err, propertyService.ErrPropertyNotFound) {
		return property, model.ErrPropertyUnavailable
	}

	if err != nil {
		return property, fmt.Errorf("failed to get property: %w", err)
	}

	if !property.IsApproved {
		return property, model.ErrPropertyUnavailable
	}

	if property.MaxGuests > 0 && guests > property.MaxGuests {
		return property, model.ErrTooManyGuests
	}

	ok, err := s.availability.IsAvailable(ctx, propertyID, dates, "")
	if err != nil {
		return property, fmt.Errorf("failed to check availability: %w", err)
	}

	if !ok {
		return property, model.ErrDateConflict
	}

	return property, nil
}

func (s *serviceImpl) ListCart(ctx context.Context, userID string) (res dto.CartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListCart")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.And(
		gDto.Eq(model.FieldUserID, userID),
		gDto.Eq(model.FieldSource, string(model.SourceCart)),
	)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list cart")

		return res, fmt.Errorf("failed to list cart: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// DiscardCart removes one of the user's cart items. Items of other users look missing.
func (s *serviceImpl) DiscardCart(ctx context.Context, intentID int64, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.DiscardCart")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if userID == "" {
		return model.ErrIntentNotFound
	}

	n, err := s.repo.Delete(ctx, repository.IntentFilter(intentID, model.SourceCart, userID))
	if err != nil {
		log.Error().Err(err).Int64("intent_id", intentID).Msg("failed to discard cart item")

		return fmt.Errorf("failed to discard cart item: %w", err)
	}

	if n == 0 {
		return model.ErrIntentNotFound
	}

	return nil
}

// InitiatePayment mints a fresh order reference for an intent the user owns. Availability is
// checked again since cart items may have been staged long ago.
func (s *serviceImpl) InitiatePayment(ctx context.Context, intentID int64, source model.Source, userID, clientIP string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.InitiatePayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if userID == "" || !source.Valid() {
		return res, model.ErrIntentNotFound
	}

	intent, err := s.repo.Get(ctx, repository.IntentFilter(intentID, source, userID))
	if err != nil {
		log.Error().Err(err).Int64("intent_id", intentID).Msg("failed to get intent")

		return res, fmt.Errorf("failed to get intent: %w", err)
	}

	if intent.ID == 0 {
		return res, model.ErrIntentNotFound
	}

	ok, err := s.availability.IsAvailable(ctx, intent.PropertyID, intent.Range(), "")
	if err != nil {
		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	if !ok {
		return res, model.ErrDateConflict
	}

	return s.payment(intent, clientIP)
}

func (s *serviceImpl) payment(intent model.StagedIntent, clientIP string) (dto.PaymentResponse, error) {
	ref := orderref.New(intent.ID, s.clock.Now().UnixNano())
	description := dto.Description(intent)

	paymentURL, err := s.gateway.CreatePaymentURL(vnpay.PaymentRequest{
		OrderRef:    ref,
		Amount:      intent.TotalPrice,
		Description: description,
		OrderType:   string(intent.Source),
		ReturnURL:   s.returnURL(intent.Source),
		ClientIP:    clientIP,
	})
	if err != nil {
		log.Error().Err(err).Int64("intent_id", intent.ID).Msg("failed to create payment url")

		return dto.PaymentResponse{}, fmt.Errorf("failed to create payment url: %w", err)
	}

	return dto.PaymentResponse{
		IntentID:       intent.ID,
		OrderReference: ref,
		Amount:         intent.TotalPrice,
		Description:    description,
		PaymentURL:     paymentURL,
	}, nil
}

// returnURL routes the browser back to the handler for the intent's source.
func (s *serviceImpl) returnURL(source model.Source) string {
	base := s.cfg.Payment.VNPay.ReturnURL
	if base == "" {
		return ""
	}

	return strings.TrimSuffix(base, "/") + "/" + string(source)
}

// Expire deletes intents of source staged before cutoff. Each row is claimed with its own
// conditional delete, so a row a callback already took is simply skipped.
func (s *serviceImpl) Expire(ctx context.Context, source model.Source, cutoff time.Time, batch int) (n int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Expire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if batch <= 0 {
		batch = defaultExpireBatch
	}

	expired := repository.ExpiredFilter(source, cutoff)

	candidates, err := s.repo.GetAll(ctx, gDto.QueryParams{Limit: batch}, expired)
	if err != nil {
		log.Error().Err(err).Str("source", string(source)).Msg("failed to list expired intents")

		return 0, fmt.Errorf("failed to list expired intents: %w", err)
	}

	for _, c := range candidates {
		removed, err := s.repo.Delete(ctx, gDto.And(repository.IntentFilter(c.ID, source, ""), expired))
		if err != nil {
			log.Error().Err(err).Int64("intent_id", c.ID).Msg("failed to expire intent")

			return n, fmt.Errorf("failed to expire intent %d: %w", c.ID, err)
		}

		n += int(removed)
	}

	s.metrics.ObserveSwept(string(source), n)

	return n, nil
}
