package dto

import (
	"fmt"

	"homestay/internal/domains/reservation/model"
	"homestay/shared/constant"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
)

type StageRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	CheckIn    string `json:"check_in"    validate:"required,calendar"`
	CheckOut   string `json:"check_out"   validate:"required,calendar"`
	Guests     int    `json:"guests"      validate:"required,min=1"`
}

func (r *StageRequest) Range() (daterange.DateRange, error) {
	return daterange.Parse(r.CheckIn, r.CheckOut)
}

// ToModel prices the stay at pricePerNight for every night of dates.
func (r *StageRequest) ToModel(source model.Source, userID string, dates daterange.DateRange, pricePerNight int64, meta gModel.Metadata) model.StagedIntent {
	return model.StagedIntent{
		Source:     source,
		PropertyID: r.PropertyID,
		UserID:     userID,
		CheckIn:    dates.CheckIn,
		CheckOut:   dates.CheckOut,
		Guests:     r.Guests,
		TotalPrice: pricePerNight * int64(dates.Nights()),
		Metadata:   meta,
	}
}

type IntentResponse struct {
	ID         int64  `json:"id"`
	Source     string `json:"source"`
	PropertyID string `json:"property_id"`
	UserID     string `json:"user_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	Guests     int    `json:"guests"`
	TotalPrice int64  `json:"total_price"`
	gDto.Metadata
}

func (r *IntentResponse) FromModel(m model.StagedIntent) {
	r.ID = m.ID
	r.Source = string(m.Source)
	r.PropertyID = m.PropertyID
	r.UserID = m.UserID
	r.CheckIn = m.CheckIn.Format(constant.CalendarFormat)
	r.CheckOut = m.CheckOut.Format(constant.CalendarFormat)
	r.Nights = m.Range().Nights()
	r.Guests = m.Guests
	r.TotalPrice = m.TotalPrice
	r.Metadata.FromModel(m.Metadata)
}

// StageResponse carries a checkout intent ready for payment.
type StageResponse struct {
	Intent         IntentResponse `json:"intent"`
	OrderReference string         `json:"order_reference"`
	PaymentURL     string         `json:"payment_url"`
}

type CartResponse struct {
	Items      []IntentResponse `json:"items"`
	TotalPrice int64            `json:"total_price"`
}

func (c *CartResponse) FromModels(models []model.StagedIntent) {
	c.Items = make([]IntentResponse, 0, len(models))

	for _, m := range models {
		var item IntentResponse
		item.FromModel(m)

		c.Items = append(c.Items, item)
		c.TotalPrice += m.TotalPrice
	}
}

type PaymentResponse struct {
	IntentID       int64  `json:"intent_id"`
	OrderReference string `json:"order_reference"`
	Amount         int64  `json:"amount"`
	Description    string `json:"description"`
	PaymentURL     string `json:"payment_url"`
}

func Description(m model.StagedIntent) string {
	return fmt.Sprintf("Homestay booking #%s %s", m.PropertyID, m.Range())
}
