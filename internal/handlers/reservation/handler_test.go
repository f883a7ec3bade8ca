package reservation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "homestay/infras/otel/mocks"
	reservationMocks "homestay/internal/domains/reservation/mocks"
	"homestay/internal/domains/reservation/model"
	"homestay/internal/domains/reservation/model/dto"
	"homestay/internal/handlers/reservation"
	"homestay/shared/constant"
)

const (
	propertyID = "4f1c2b8e-0d6e-4a7c-9a55-0b7f3f2d9a11"
	stageBody  = `{"property_id":"` + propertyID + `","check_in":"2025-01-10","check_out":"2025-01-12","guests":2}`
)

func setup(t *testing.T) (*reservationMocks.MockReservationService, http.Handler) {
	t.Helper()

	svc := reservationMocks.NewMockReservationService(gomock.NewController(t))
	h := reservation.New(svc, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Route("/v1", h.Router)

	return svc, r
}

func asUser(req *http.Request) *http.Request {
	req.RemoteAddr = "203.0.113.9:4000"

	return req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "u-1"))
}

func TestCheckout(t *testing.T) {
	want := dto.StageRequest{PropertyID: propertyID, CheckIn: "2025-01-10", CheckOut: "2025-01-12", Guests: 2}

	tests := []struct {
		name     string
		body     string
		setup    func(svc *reservationMocks.MockReservationService)
		wantCode int
	}{
		{
			name: "staged",
			body: stageBody,
			setup: func(svc *reservationMocks.MockReservationService) {
				svc.EXPECT().StageCheckout(gomock.Any(), "u-1", want, "203.0.113.9").
					Return(dto.StageResponse{OrderReference: "7_1", PaymentURL: "https://pay.example/?vnp_TxnRef=7_1"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "conflict",
			body: stageBody,
			setup: func(svc *reservationMocks.MockReservationService) {
				svc.EXPECT().StageCheckout(gomock.Any(), "u-1", want, "203.0.113.9").Return(dto.StageResponse{}, model.ErrDateConflict)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "zero guests",
			body:     `{"property_id":"` + propertyID + `","check_in":"2025-01-10","check_out":"2025-01-12","guests":0}`,
			setup:    func(*reservationMocks.MockReservationService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad json",
			body:     `{`,
			setup:    func(*reservationMocks.MockReservationService) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/v1/reservations/checkout", strings.NewReader(tt.body))))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCart(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().StageCartItem(gomock.Any(), "u-1", gomock.Any()).Return(dto.IntentResponse{ID: 3, Source: string(model.SourceCart)}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/v1/reservations/cart", strings.NewReader(stageBody))))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":3`)
	})

	t.Run("list", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().ListCart(gomock.Any(), "u-1").Return(dto.CartResponse{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodGet, "/v1/reservations/cart", nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("discard", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().DiscardCart(gomock.Any(), int64(3), "u-1").Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodDelete, "/v1/reservations/cart/3", nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("discard non numeric id", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodDelete, "/v1/reservations/cart/abc", nil)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reservations/cart", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestInitiatePayment(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().InitiatePayment(gomock.Any(), int64(3), model.SourceCart, "u-1", "203.0.113.9").
		Return(dto.PaymentResponse{IntentID: 3, OrderReference: "3_1"}, nil)
	svc.EXPECT().InitiatePayment(gomock.Any(), int64(4), model.Source("wishlist"), "u-1", "203.0.113.9").
		Return(dto.PaymentResponse{}, model.ErrIntentNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/v1/reservations/cart/3/payment", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"order_reference":"3_1"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/v1/reservations/wishlist/4/payment", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
