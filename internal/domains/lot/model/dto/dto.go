package dto

import (
	"mime/multipart"

	"parking/internal/domains/lot/model"
	gDto "parking/shared/dto"
	gModel "parking/shared/model"
	"parking/shared/timezone"

	"github.com/google/uuid"
)

type CreateLotRequest struct {
	Name      string                `json:"name"      validate:"required,max=100"`
	Address   string                `json:"address"   validate:"required,max=255"`
	PinCode   string                `json:"pin_code"  validate:"required,max=10,numeric"`
	Price     float64               `json:"price"     validate:"required,gt=0"`
	MaxSpots  int                   `json:"max_spots" validate:"required,gt=0,max=1000"`
	Image     *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (c *CreateLotRequest) ToModel(user string, imageURL string) model.ParkingLot {
	now := timezone.Now()

	return model.ParkingLot{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Address:  c.Address,
		PinCode:  c.PinCode,
		Price:    c.Price,
		MaxSpots: c.MaxSpots,
		Image:    imageURL,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type UpdateLotRequest struct {
	Name      string                `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Address   string                `db:"address"   json:"address"   validate:"omitempty,max=255"`
	PinCode   string                `db:"pin_code"  json:"pin_code"  validate:"omitempty,max=10,numeric"`
	Price     float64               `db:"price"     json:"price"     validate:"omitempty,gt=0"`
	MaxSpots  int                   `db:"max_spots" json:"max_spots" validate:"omitempty,gt=0,max=1000"`
	Image     *multipart.FileHeader `db:"-"         json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `db:"-"         json:"-"`
}

type LotResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	PinCode  string  `json:"pin_code"`
	Price    float64 `json:"price"`
	MaxSpots int     `json:"max_spots"`
	Image    string  `json:"image"`
	gDto.Metadata
}

func (r *LotResponse) FromModel(m model.ParkingLot) {
	r.ID = m.ID
	r.Name = m.Name
	r.Address = m.Address
	r.PinCode = m.PinCode
	r.Price = m.Price
	r.MaxSpots = m.MaxSpots
	r.Image = m.Image
	r.Metadata.FromModel(m.Metadata)
}

type LotAvailabilityResponse struct {
	LotResponse
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

func (r *LotAvailabilityResponse) FromModel(m model.LotAvailability) {
	r.LotResponse.FromModel(m.ParkingLot)
	r.Available = m.Available
	r.Occupied = m.Occupied
}

type GetLotsResponse struct {
	Lots []LotAvailabilityResponse `json:"lots"`
}

func (r *GetLotsResponse) FromModels(models []model.LotAvailability) {
	r.Lots = make([]LotAvailabilityResponse, len(models))
	for i, mod := range models {
		r.Lots[i].FromModel(mod)
	}
}
