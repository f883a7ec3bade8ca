package model

import (
	"net/http"
	"time"

	"homestay/shared/daterange"
	"homestay/shared/failure"
	"homestay/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldUserID     = "user_id"
	FieldIntentID   = "intent_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuests     = "guests"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
)

var (
	ErrBookingNotFound   = failure.New(http.StatusNotFound, "booking not found")
	ErrInvalidTransition = failure.New(http.StatusConflict, "booking status does not allow this action")
)

// Booking is the durable reservation. ModifiedAt doubles as the status change timestamp.
type Booking struct {
	ID         string    `db:"id"`
	PropertyID string    `db:"property_id"`
	UserID     string    `db:"user_id"`
	IntentID   int64     `db:"intent_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	TotalPrice int64     `db:"total_price"`
	Status     Status    `db:"status"`
	model.Metadata
}

func (b Booking) Range() daterange.DateRange {
	return daterange.New(b.CheckIn, b.CheckOut)
}
