package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/jwt"
	"homestay/infras/metrics"
	otelMocks "homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	paymentMocks "homestay/internal/domains/payment/mocks"
	propertyMocks "homestay/internal/domains/property/mocks"
	propertyDto "homestay/internal/domains/property/model/dto"
	reservationMocks "homestay/internal/domains/reservation/mocks"
	bookingHandler "homestay/internal/handlers/booking"
	paymentHandler "homestay/internal/handlers/payment"
	propertyHandler "homestay/internal/handlers/property"
	reservationHandler "homestay/internal/handlers/reservation"
	"homestay/permissions"
	"homestay/shared/timezone"
	"homestay/transport/http/middleware"
	"homestay/transport/http/router"
)

func newServer(t *testing.T) (*HTTP, *propertyMocks.MockPropertyService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Name = "homestay"
	cfg.JWT.AccessSecret = "access-secret"

	m := metrics.New()
	properties := propertyMocks.NewMockPropertyService(ctrl)

	handlers := router.DomainHandlers{
		Property:    propertyHandler.New(properties, ot),
		Reservation: reservationHandler.New(reservationMocks.NewMockReservationService(ctrl), ot),
		Booking:     bookingHandler.New(bookingMocks.NewMockBookingService(ctrl), ot),
		Payment:     paymentHandler.New(paymentMocks.NewMockPaymentService(ctrl), ot),
	}

	perms := permissions.Get()
	require.NotNil(t, perms)

	r := router.New(
		handlers,
		middleware.NewAppMiddleware(ot, cfg, nil, m),
		middleware.NewAuthRoleMiddleware(jwt.New(cfg, timezone.NewFixed(time.Now())), ot, perms, cfg),
		cfg,
		m,
	)

	return New(cfg, r), properties
}

func TestHealth(t *testing.T) {
	h, _ := newServer(t)
	mux := h.Handler()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h.state.Store(int32(ServerStateInGracePeriod))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

const propertyID = "4f1c2b8e-0d6e-4a7c-9a55-0b7f3f2d9a11"

func TestGate(t *testing.T) {
	h, properties := newServer(t)
	mux := h.Handler()

	properties.EXPECT().Get(gomock.Any(), propertyID).Return(propertyDto.PropertyResponse{ID: propertyID}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/properties/"+propertyID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h.state.Store(int32(ServerStateInCleanupPeriod))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/properties/"+propertyID, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouting_RequiresAuth(t *testing.T) {
	h, _ := newServer(t)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reservations/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouting_Metrics(t *testing.T) {
	h, _ := newServer(t)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
