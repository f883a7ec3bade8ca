package dto

import (
	"net/http"

	"homestay/internal/domains/booking/model"
	"homestay/shared"
	"homestay/shared/constant"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
)

const (
	QueryPropertyID = "property_id"
	QueryStatus     = "status"
	QueryUserID     = "user_id"
	QueryCheckIn    = "check_in"
	QueryCheckOut   = "check_out"
	QueryExcludeID  = "exclude_booking_id"
)

// SortableFields may appear in sort_by.
var SortableFields = []string{constant.FieldCreatedAt, model.FieldCheckIn, model.FieldCheckOut, model.FieldTotalPrice, model.FieldStatus}

type BookingResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	UserID     string `json:"user_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	Guests     int    `json:"guests"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.UserID = m.UserID
	r.CheckIn = m.CheckIn.Format(constant.CalendarFormat)
	r.CheckOut = m.CheckOut.Format(constant.CalendarFormat)
	r.Nights = m.Range().Nights()
	r.Guests = m.Guests
	r.TotalPrice = m.TotalPrice
	r.Status = string(m.Status)
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, total, limit int) {
	g.Bookings = make([]BookingResponse, 0, len(models))

	for _, m := range models {
		var res BookingResponse
		res.FromModel(m)

		g.Bookings = append(g.Bookings, res)
	}

	g.TotalData = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	PropertyID string `validate:"omitempty,uuid"`
	UserID     string `validate:"omitempty"`
	Status     string `validate:"omitempty,oneof=pending confirmed completed cancelled rejected"`
}

func (l *ListFilter) FromRequest(r *http.Request) {
	q := r.URL.Query()

	l.PropertyID = q.Get(QueryPropertyID)
	l.UserID = q.Get(QueryUserID)
	l.Status = q.Get(QueryStatus)
}

func (l *ListFilter) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if l.PropertyID != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldPropertyID, Value: l.PropertyID, Operator: gDto.FilterOperatorEq})
	}

	if l.UserID != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldUserID, Value: l.UserID, Operator: gDto.FilterOperatorEq})
	}

	if l.Status != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldStatus, Value: l.Status, Operator: gDto.FilterOperatorEq})
	}

	return gDto.And(filters...)
}

type AvailabilityRequest struct {
	PropertyID       string `validate:"required,uuid"`
	CheckIn          string `validate:"required,calendar"`
	CheckOut         string `validate:"required,calendar"`
	ExcludeBookingID string `validate:"omitempty,uuid"`
}

func (a *AvailabilityRequest) FromRequest(r *http.Request, propertyID string) {
	q := r.URL.Query()

	a.PropertyID = propertyID
	a.CheckIn = q.Get(QueryCheckIn)
	a.CheckOut = q.Get(QueryCheckOut)
	a.ExcludeBookingID = q.Get(QueryExcludeID)
}

func (a *AvailabilityRequest) Range() (daterange.DateRange, error) {
	return daterange.Parse(a.CheckIn, a.CheckOut)
}

type AvailabilityResponse struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	Available  bool   `json:"available"`
}
