package model

import (
	"net/http"
	"time"

	"homestay/shared/daterange"
	"homestay/shared/failure"
	"homestay/shared/model"
)

const (
	TableName  = "staged_intents"
	EntityName = "staged_intent"

	FieldID         = "id"
	FieldSource     = "source"
	FieldPropertyID = "property_id"
	FieldUserID     = "user_id"
)

var (
	ErrPropertyUnavailable = failure.New(http.StatusBadRequest, "property is not available for booking")
	ErrInvalidRange        = failure.New(http.StatusBadRequest, "check-out must be at least one night after check-in")
	ErrDateConflict        = failure.New(http.StatusConflict, "the selected dates are already booked")
	ErrIntentNotFound      = failure.New(http.StatusNotFound, "reservation not found")
	ErrTooManyGuests       = failure.New(http.StatusBadRequest, "guest count exceeds what the property allows")
)

// Source tells the two staging paths apart. Checkout intents back a single payment attempt;
// cart intents live until the user pays or removes them.
type Source string

const (
	SourceCheckout Source = "checkout"
	SourceCart     Source = "cart"
)

func (s Source) Valid() bool {
	return s == SourceCheckout || s == SourceCart
}

// StagedIntent is an unpaid reservation. It is never updated, only inserted and deleted.
type StagedIntent struct {
	ID         int64     `db:"id"          insert:"-"`
	Source     Source    `db:"source"`
	PropertyID string    `db:"property_id"`
	UserID     string    `db:"user_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	TotalPrice int64     `db:"total_price"`
	model.Metadata
}

func (s StagedIntent) Range() daterange.DateRange {
	return daterange.New(s.CheckIn, s.CheckOut)
}
