package reservation

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"homestay/infras/otel"
	"homestay/internal/domains/reservation/model"
	"homestay/internal/domains/reservation/model/dto"
	"homestay/internal/domains/reservation/service"
	"homestay/shared"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/validator"
	"homestay/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/checkout", handler.Checkout)
		routerGroup.Get("/cart", handler.GetCart)
		routerGroup.Post("/cart", handler.AddToCart)
		routerGroup.Delete("/cart/{id}", handler.DiscardCartItem)
		routerGroup.Post("/{source}/{id}/payment", handler.InitiatePayment)
	})
}

// intentID reads the numeric path id. Anything unparsable is reported as a missing intent.
func intentID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ErrIntentNotFound
	}

	return id, nil
}

func userFrom(r *http.Request) (string, error) {
	userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return "", failure.Unauthorized("unauthorized")
	}

	return userID, nil
}

// Checkout stages a direct checkout and hands back the signed payment URL.
// @Summary Checkout a stay
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.StageRequest true "Stage Request"
// @Success 201 {object} response.Data[dto.StageResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	userID, err := userFrom(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.StageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.StageCheckout(ctx, userID, req, shared.ClientIP(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to stage checkout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout staged by user " + userID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetCart lists the caller's cart.
// @Summary Get cart
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[dto.CartResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/cart [get]
// @Security BearerAuth
func (handler *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCart")
	defer scope.End()

	userID, err := userFrom(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	cart, err := handler.service.ListCart(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cart)
}

// AddToCart stages a cart item.
// @Summary Add to cart
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.StageRequest true "Stage Request"
// @Success 201 {object} response.Data[dto.IntentResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/cart [post]
// @Security BearerAuth
func (handler *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddToCart")
	defer scope.End()

	userID, err := userFrom(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.StageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.StageCartItem(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to add cart item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, item)
}

// DiscardCartItem removes one cart item.
// @Summary Discard cart item
// @Tags Reservation
// @Produce json
// @Param id path int true "Intent ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/cart/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DiscardCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DiscardCartItem")
	defer scope.End()

	userID, err := userFrom(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id, err := intentID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.DiscardCart(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("intent_id", id).Msg("failed to discard cart item")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Cart item removed successfully")
}

// InitiatePayment mints a new payment URL for a staged intent.
// @Summary Pay for an intent
// @Tags Reservation
// @Produce json
// @Param source path string true "checkout or cart"
// @Param id path int true "Intent ID"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{source}/{id}/payment [post]
// @Security BearerAuth
func (handler *Handler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitiatePayment")
	defer scope.End()

	userID, err := userFrom(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id, err := intentID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	source := model.Source(chi.URLParam(r, constant.RequestParamSource))

	res, err := handler.service.InitiatePayment(ctx, id, source, userID, shared.ClientIP(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("intent_id", id).Str("source", string(source)).Msg("failed to initiate payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
