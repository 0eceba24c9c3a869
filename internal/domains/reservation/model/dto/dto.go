package dto

import (
	"parking/internal/domains/reservation/model"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	gModel "parking/shared/model"
	"parking/shared/timezone"
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

type BookRequest struct {
	LotID string `json:"lot_id" validate:"required,uuid"`
}

// NewReservation opens a reservation on the claimed spot. Cost holds the lot price until release.
func NewReservation(userID, spotID, lotID string, price float64, user string, now time.Time) model.Reservation {
	return model.Reservation{
		ID:        uuid.NewString(),
		UserID:    userID,
		SpotID:    null.StringFrom(spotID),
		LotID:     null.StringFrom(lotID),
		StartTime: now,
		Cost:      price,
		Metadata:  gModel.NewMetadata(user, now),
	}
}

type ReservationResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username,omitempty"`
	SpotID     *string `json:"spot_id"`
	SpotNumber *int64  `json:"spot_number"`
	LotID      *string `json:"lot_id"`
	LotName    *string `json:"lot_name"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Cost       float64 `json:"cost"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.Username = m.Username.String
	r.SpotID = m.SpotID.Ptr()
	r.SpotNumber = m.SpotNumber.Ptr()
	r.LotID = m.LotID.Ptr()
	r.LotName = m.LotName.Ptr()
	r.StartTime = timezone.Format(m.StartTime, constant.DateFormat)
	r.EndTime = nil
	r.Cost = m.Cost
	r.Active = m.IsActive()
	r.Metadata.FromModel(m.Metadata)

	if m.EndTime.Valid {
		end := timezone.Format(m.EndTime.Time, constant.DateFormat)
		r.EndTime = &end
	}
}

type BookResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	SpotNumber  int                 `json:"spot_number"`
}

type ReleaseResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Hours       float64             `json:"hours"`
	Cost        float64             `json:"cost"`
	Price       float64             `json:"price"`
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Pagination   gDto.Pagination       `json:"pagination"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, params gDto.QueryParams, total int, totalPage int) {
	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}

	r.Pagination = gDto.NewPagination(params, total, totalPage)
}
