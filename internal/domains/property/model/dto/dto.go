package dto

import (
	"time"

	"github.com/google/uuid"

	"homestay/internal/domains/property/model"
	"homestay/shared"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
)

type CreatePropertyRequest struct {
	Name          string `json:"name"            validate:"required,max=150"`
	Address       string `json:"address"         validate:"required,max=255"`
	PricePerNight int64  `json:"price_per_night" validate:"required,gt=0"`
	MaxGuests     int    `json:"max_guests"      validate:"omitempty,min=1"`
}

// ToModel creates an unapproved listing; approval is a separate admin step.
func (c *CreatePropertyRequest) ToModel(user string, now time.Time) model.Property {
	return model.Property{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Address:       c.Address,
		PricePerNight: c.PricePerNight,
		MaxGuests:     c.MaxGuests,
		IsApproved:    false,
		Metadata:      gModel.NewMetadata(now, user),
	}
}

type PropertyResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	PricePerNight int64  `json:"price_per_night"`
	MaxGuests     int    `json:"max_guests"`
	IsApproved    bool   `json:"is_approved"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(m model.Property) {
	r.ID = m.ID
	r.Name = m.Name
	r.Address = m.Address
	r.PricePerNight = m.PricePerNight
	r.MaxGuests = m.MaxGuests
	r.IsApproved = m.IsApproved
	r.Metadata.FromModel(m.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (g *GetPropertiesResponse) FromModels(models []model.Property, total, limit int) {
	g.Properties = make([]PropertyResponse, 0, len(models))

	for _, m := range models {
		var res PropertyResponse
		res.FromModel(m)

		g.Properties = append(g.Properties, res)
	}

	g.TotalData = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
