package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"homestay/infras/otel"
	"homestay/internal/domains/payment/model"
	"homestay/internal/domains/payment/service"
	reservationModel "homestay/internal/domains/reservation/model"
	"homestay/shared/constant"
	"homestay/transport/http/response"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// IPNResponse is the acknowledgement body VNPay expects.
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments/vnpay", func(routerGroup chi.Router) {
		routerGroup.Get("/return/{source}", handler.Return)
		routerGroup.Get("/ipn", handler.IPN)
	})
}

// Return settles the payment the browser was redirected back with.
// @Summary VNPay return
// @Tags Payment
// @Produce json
// @Param source path string true "checkout or cart"
// @Success 200 {object} response.Data[model.Outcome]
// @Failure 400 {object} response.Data[model.Outcome]
// @Failure 401 {object} response.Data[model.Outcome]
// @Failure 402 {object} response.Data[model.Outcome]
// @Failure 409 {object} response.Data[model.Outcome]
// @Failure 500 {object} response.Error
// @Router /v1/payments/vnpay/return/{source} [get]
func (handler *Handler) Return(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentReturn")
	defer scope.End()

	source := reservationModel.Source(chi.URLParam(r, constant.RequestParamSource))
	if !source.Valid() {
		response.WithJSON(w, http.StatusBadRequest, model.Outcome{Kind: model.KindInvalidReference})

		return
	}

	outcome, err := handler.service.HandleCallback(ctx, r.URL.Query(), source)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("source", string(source)).Msg("failed to reconcile payment return")

		response.WithError(w, err)

		return
	}

	scope.SetAttributes(map[string]any{"payment.outcome": string(outcome.Kind)})

	response.WithJSON(w, outcome.HTTPStatus(), outcome)
}

// IPN is the server to server notification. It always answers 200 with a gateway code.
// @Summary VNPay IPN
// @Tags Payment
// @Produce json
// @Success 200 {object} IPNResponse
// @Router /v1/payments/vnpay/ipn [get]
func (handler *Handler) IPN(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentIPN")
	defer scope.End()

	outcome, err := handler.service.HandleCallback(ctx, r.URL.Query(), "")
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile payment notification")

		outcome = model.Outcome{}
	}

	code, message := outcome.IPN()

	scope.SetAttributes(map[string]any{"payment.outcome": string(outcome.Kind), "payment.rsp_code": code})

	response.WithRaw(w, http.StatusOK, IPNResponse{RspCode: code, Message: message})
}
