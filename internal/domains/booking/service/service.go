package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"homestay/config"
	"homestay/infras/metrics"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/booking/event"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/repository"
	"homestay/shared"
	"homestay/shared/cache"
	"homestay/shared/constant"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
	"homestay/shared/timezone"
)

const (
	cacheGetBooking = "booking:get"
	sweptCompleted  = "completed"
)

type Booking interface {
	IsAvailable(ctx context.Context, propertyID string, dates daterange.DateRange, excludeBookingID string) (bool, error)
	Get(ctx context.Context, id string, actor model.Actor) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Transition(ctx context.Context, id string, action model.Action, actor model.Actor) (dto.BookingResponse, error)
	CompleteDue(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo      repository.Booking
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	clock     timezone.Clock
	metrics   *metrics.Metrics
	publisher event.Publisher
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock timezone.Clock, m *metrics.Metrics, publisher event.Publisher) Booking {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		clock:     clock,
		metrics:   m,
		publisher: publisher,
	}
}

// IsAvailable reports whether no pending or confirmed booking on the property overlaps dates.
// excludeBookingID leaves one booking out of the scan, for rescheduling checks.
func (s *serviceImpl) IsAvailable(ctx context.Context, propertyID string, dates daterange.DateRange, excludeBookingID string) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = dates.Validate(); err != nil {
		return false, err //nolint:wrapcheck
	}

	overlap, err := s.repo.HasOverlap(ctx, propertyID, dates, excludeBookingID)
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Str("range", dates.String()).Msg("failed to check availability")

		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return !overlap, nil
}

// Get returns the booking if actor owns it or is staff. The cached entry is the booking
// itself; visibility is decided per caller after the lookup.
func (s *serviceImpl) Get(ctx context.Context, id string, actor model.Actor) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	var found dto.BookingResponse
	if cacheErr := s.cache.Get(ctx, cacheKey, &found); cacheErr != nil {
		m, loadErr := s.load(ctx, id)
		if loadErr != nil {
			return res, loadErr
		}

		found.FromModel(m)
		cache.SaveAsync(ctx, s.cache, cacheKey, found, s.cfg.Cache.TTL)
	}

	// Bookings of other users are reported as missing.
	if found.UserID != actor.UserID && !privileged(actor) {
		return res, model.ErrBookingNotFound
	}

	return found, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, filter.ToFilter())
}

func (s *serviceImpl) GetMine(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, gDto.And(gDto.Eq(model.FieldUserID, userID)))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	params.AllowSort(dto.SortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Transition applies action to the booking. The write only lands while the row is still in
// one of the action's source states, so a concurrent transition makes this one fail.
func (s *serviceImpl) Transition(ctx context.Context, id string, action model.Action, actor model.Actor) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("action", string(action))

	m, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if !action.Allows(actor, m.UserID) || !action.CanApply(m.Status) {
		log.Warn().
			Str("booking_id", id).
			Str("action", string(action)).
			Str("status", string(m.Status)).
			Str("actor", actor.UserID).
			Msg("booking transition refused")

		return res, model.ErrInvalidTransition
	}

	from := m.Status
	to := action.Target()
	now := s.clock.Now()

	n, err := s.repo.Update(ctx, statusUpdate(to, actor.UserID, now), transitionFilter(id, action.Sources()))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Str("action", string(action)).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if n == 0 {
		// The row moved or vanished between the read and the write.
		if _, err := s.load(ctx, id); err != nil {
			return res, err
		}

		return res, model.ErrInvalidTransition
	}

	m.Status = to
	m.ModifiedAt = now
	m.ModifiedBy = actor.UserID

	s.metrics.ObserveTransition(string(from), string(to))

	if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to drop cached booking")
	}

	e := event.FromBooking(event.TypeStatusChanged, m, now)
	e.From = string(from)
	e.Actor = actor.UserID
	s.publisher.Publish(ctx, e)

	res.FromModel(m)

	return res, nil
}

// CompleteDue moves every confirmed booking whose checkout date has passed to completed.
func (s *serviceImpl) CompleteDue(ctx context.Context) (n int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CompleteDue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.And(
		gDto.Filter{Field: model.FieldStatus, ArgName: "from_status", Value: string(model.StatusConfirmed), Operator: gDto.FilterOperatorEq},
		gDto.Filter{Field: model.FieldCheckOut, Value: s.clock.Today(), Operator: gDto.FilterOperatorLessEq},
	)

	affected, err := s.repo.Update(ctx, statusUpdate(model.StatusCompleted, constant.RoleSystem, s.clock.Now()), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to complete due bookings")

		return 0, fmt.Errorf("failed to complete due bookings: %w", err)
	}

	n = int(affected)
	s.metrics.ObserveSwept(sweptCompleted, n)

	if n > 0 {
		log.Info().Int("count", n).Msg("completed past bookings")

		go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetBooking)
	}

	return n, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	m, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if postgres.HasCode(err, constant.PqErrorCodeInvalidTextRepresentation) {
		return m, model.ErrBookingNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return m, fmt.Errorf("failed to get booking: %w", err)
	}

	if m.ID == constant.Empty {
		return m, model.ErrBookingNotFound
	}

	return m, nil
}

func statusUpdate(to model.Status, by string, now time.Time) map[string]any {
	return map[string]any{
		model.FieldStatus:        string(to),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: by,
	}
}

func transitionFilter(id string, from []model.Status) gDto.FilterGroup {
	statuses := make([]string, 0, len(from))
	for _, st := range from {
		statuses = append(statuses, string(st))
	}

	return gDto.And(
		gDto.Eq(model.FieldID, id),
		gDto.Filter{Field: model.FieldStatus, ArgName: "from_status", Value: statuses, Operator: gDto.FilterOperatorIn},
	)
}

func privileged(actor model.Actor) bool {
	return actor.Role == constant.RoleAdmin || actor.Role == constant.RoleStaff
}
