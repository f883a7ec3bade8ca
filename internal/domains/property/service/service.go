package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Property=MockPropertyService

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"homestay/config"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/property/model"
	"homestay/internal/domains/property/model/dto"
	"homestay/internal/domains/property/repository"
	"homestay/shared"
	"homestay/shared/cache"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/timezone"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
)

var ErrPropertyNotFound = failure.New(http.StatusNotFound, "property not found")

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest) (dto.PropertyResponse, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Approve(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Property
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	clock timezone.Clock
	loads singleflight.Group
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock timezone.Clock) Property {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		clock: clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".property.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	m := req.ToModel(user, s.clock.Now())
	if err = s.repo.Insert(ctx, m); err != nil {
		log.Error().Err(err).Msg("failed to insert property")

		return res, fmt.Errorf("failed to insert property: %w", err)
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllProperty)

	res.FromModel(m)

	return res, nil
}

// Get is the catalog lookup the reservation flow depends on. Concurrent misses for the same
// id share one database read.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".property.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	v, err, _ := s.loads.Do(cacheKey, func() (any, error) {
		m, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if postgres.HasCode(err, constant.PqErrorCodeInvalidTextRepresentation) {
			return nil, ErrPropertyNotFound
		}

		if err != nil {
			return nil, err
		}

		if m.ID == constant.Empty {
			return nil, ErrPropertyNotFound
		}

		var out dto.PropertyResponse
		out.FromModel(m)

		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, out, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to save property to cache")
		}

		return out, nil
	})
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return res, ErrPropertyNotFound
		}

		log.Error().Err(err).Str("property_id", id).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	return v.(dto.PropertyResponse), nil //nolint:forcetypeassert
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".property.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cache.SaveAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

// Approve makes a listing bookable.
func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".property.Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	mod := shared.TransformFields(struct {
		IsApproved bool `db:"is_approved"`
	}{IsApproved: true}, user, s.clock.Now())

	n, err := s.repo.Update(ctx, mod, shared.FilterByID(id, model.FieldID, model.TableName))
	if postgres.HasCode(err, constant.PqErrorCodeInvalidTextRepresentation) {
		return ErrPropertyNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("property_id", id).Msg("failed to approve property")

		return fmt.Errorf("failed to approve property: %w", err)
	}

	if n == 0 {
		return ErrPropertyNotFound
	}

	c := context.WithoutCancel(ctx)
	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
		log.Warn().Err(err).Str("property_id", id).Msg("failed to drop cached property")
	}

	go shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)

	return nil
}
