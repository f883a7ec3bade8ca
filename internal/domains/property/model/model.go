package model

import "homestay/shared/model"

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID            = "id"
	FieldName          = "name"
	FieldAddress       = "address"
	FieldPricePerNight = "price_per_night"
	FieldMaxGuests     = "max_guests"
	FieldIsApproved    = "is_approved"
)

// Property is a bookable homestay listing. Price is in whole VND per night.
type Property struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Address       string `db:"address"`
	PricePerNight int64  `db:"price_per_night"`
	MaxGuests     int    `db:"max_guests"`
	IsApproved    bool   `db:"is_approved"`
	model.Metadata
}
