package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"homestay/config"
	_ "homestay/docs" // swagger docs
	"homestay/infras/metrics"
	"homestay/internal/handlers/booking"
	"homestay/internal/handlers/payment"
	"homestay/internal/handlers/property"
	"homestay/internal/handlers/reservation"
	"homestay/transport/http/middleware"
)

const requestTimeout = 30 * time.Second

type DomainHandlers struct {
	Property    property.Handler
	Reservation reservation.Handler
	Booking     booking.Handler
	Payment     payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	auth           middleware.AuthRole
	config         *config.Config
	metrics        *metrics.Metrics
}

// SetupRoutes installs the middleware chain and every route on router. It must run before
// any other route is added to router.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.Recoverer,
		chiMiddleware.Timeout(requestTimeout),
		r.app.Tracing,
		r.app.Metrics,
	)

	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(
		r.app.RateLimit(),
		r.auth.APIKey,
		r.auth.Auth,
		r.auth.RBAC,
	)

	router.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	auth middleware.AuthRole,
	cfg *config.Config,
	m *metrics.Metrics,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		auth:           auth,
		config:         cfg,
		metrics:        m,
	}
}
