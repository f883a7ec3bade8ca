//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"homestay/config"
	"homestay/infras/jwt"
	"homestay/infras/kafka"
	"homestay/infras/metrics"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/infras/redis"
	"homestay/infras/vnpay"
	"homestay/permissions"
	"homestay/shared/cache"
	"homestay/shared/timezone"
	"homestay/transport/http"
	"homestay/transport/http/middleware"
	"homestay/transport/http/router"

	bookingEvent "homestay/internal/domains/booking/event"
	bookingRepository "homestay/internal/domains/booking/repository"
	bookingService "homestay/internal/domains/booking/service"
	paymentService "homestay/internal/domains/payment/service"
	propertyRepository "homestay/internal/domains/property/repository"
	propertyService "homestay/internal/domains/property/service"
	reservationRepository "homestay/internal/domains/reservation/repository"
	reservationService "homestay/internal/domains/reservation/service"

	bookingHandler "homestay/internal/handlers/booking"
	paymentHandler "homestay/internal/handlers/payment"
	propertyHandler "homestay/internal/handlers/property"
	reservationHandler "homestay/internal/handlers/reservation"

	"homestay/internal/worker/sweeper"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
	vnpay.New,
	timezone.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvent.New,
	bookingService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
	wire.Bind(new(reservationService.Catalog), new(propertyService.Property)),
	wire.Bind(new(reservationService.Availability), new(bookingService.Booking)),
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var domains = wire.NewSet(
	propertyDomain,
	bookingDomain,
	reservationDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	propertyHandler.New,
	reservationHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSweeper() *sweeper.Sweeper {
	wire.Build(
		config.Get,
		infrastructures,
		sharedHelpers,
		domains,
		wire.Bind(new(sweeper.Expirer), new(reservationService.Reservation)),
		wire.Bind(new(sweeper.Completer), new(bookingService.Booking)),
		sweeper.New,
	)

	return &sweeper.Sweeper{}
}
