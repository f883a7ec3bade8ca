package model

import (
	"net/http"

	"homestay/infras/vnpay"
	reservationModel "homestay/internal/domains/reservation/model"
)

type Kind string

const (
	KindConfirmed          Kind = "confirmed"
	KindPaymentFailed      Kind = "payment_failed"
	KindInvalidReference   Kind = "invalid_reference"
	KindUnknown            Kind = "unknown"
	KindLostRace           Kind = "lost_race"
	KindVerificationFailed Kind = "verification_failed"
)

// IPN response codes expected by the gateway.
const (
	RspCodeOK               = "00"
	RspCodeOrderNotFound    = "01"
	RspCodeAlreadyConfirmed = "02"
	RspCodeInvalidSignature = "97"
	RspCodeUnknownError     = "99"
)

// PaymentResult is a verified gateway callback in gateway-neutral form. Source is empty when
// the callback does not say which staging path the order came from.
type PaymentResult struct {
	Success        bool
	OrderReference string
	ResponseCode   string
	TransactionNo  string
	Amount         int64
	Source         reservationModel.Source
}

func FromCallback(cb vnpay.Callback, source reservationModel.Source) PaymentResult {
	return PaymentResult{
		Success:        cb.Success(),
		OrderReference: cb.OrderRef,
		ResponseCode:   cb.ResponseCode,
		TransactionNo:  cb.TransactionNo,
		Amount:         cb.Amount,
		Source:         source,
	}
}

// Outcome is the single terminal effect of one reconciliation.
type Outcome struct {
	Kind         Kind   `json:"outcome"`
	IntentID     int64  `json:"intent_id,omitempty"`
	BookingID    string `json:"booking_id,omitempty"`
	PropertyID   string `json:"property_id,omitempty"`
	ResponseCode string `json:"response_code,omitempty"`
	// Reconciled is set on an unknown outcome when the intent was already promoted.
	Reconciled bool `json:"reconciled,omitempty"`
}

// IPN maps the outcome onto the gateway's acknowledgement contract. Failed and lost-race
// payments are still acknowledged since there is nothing the gateway can retry.
func (o Outcome) IPN() (string, string) {
	switch o.Kind {
	case KindConfirmed, KindLostRace, KindPaymentFailed:
		return RspCodeOK, "Confirm Success"
	case KindUnknown:
		if o.Reconciled {
			return RspCodeAlreadyConfirmed, "Order already confirmed"
		}

		return RspCodeOrderNotFound, "Order not found"
	case KindInvalidReference:
		return RspCodeOrderNotFound, "Order not found"
	case KindVerificationFailed:
		return RspCodeInvalidSignature, "Invalid signature"
	default:
		return RspCodeUnknownError, "Unknown error"
	}
}

// HTTPStatus is the status the browser return route answers with.
func (o Outcome) HTTPStatus() int {
	switch o.Kind {
	case KindConfirmed, KindUnknown:
		return http.StatusOK
	case KindPaymentFailed:
		return http.StatusPaymentRequired
	case KindInvalidReference:
		return http.StatusBadRequest
	case KindLostRace:
		return http.StatusConflict
	case KindVerificationFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
