package dto

import (
	"parking/internal/domains/spot/model"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/timezone"
)

type SpotResponse struct {
	ID     string `json:"id"`
	LotID  string `json:"lot_id"`
	Number int    `json:"number"`
	Status string `json:"status"`
	gDto.Metadata
}

func (r *SpotResponse) FromModel(m model.ParkingSpot) {
	r.ID = m.ID
	r.LotID = m.LotID
	r.Number = m.Number
	r.Status = string(m.Status)
	r.Metadata.FromModel(m.Metadata)
}

type GetSpotsResponse struct {
	Spots     []SpotResponse `json:"spots"`
	Available int            `json:"available"`
	Occupied  int            `json:"occupied"`
}

func (r *GetSpotsResponse) FromModels(models []model.ParkingSpot) {
	r.Spots = make([]SpotResponse, len(models))
	r.Available, r.Occupied = 0, 0

	for i, mod := range models {
		r.Spots[i].FromModel(mod)

		if mod.IsAvailable() {
			r.Available++
		} else {
			r.Occupied++
		}
	}
}

type LatestReservation struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Cost      float64 `json:"cost"`
	Active    bool    `json:"active"`
}

type SpotReservationResponse struct {
	SpotResponse
	Reservation *LatestReservation `json:"reservation"`
}

func (r *SpotReservationResponse) FromModel(m model.SpotReservation) {
	r.SpotResponse.FromModel(m.ParkingSpot)
	r.Reservation = nil

	if !m.ReservationID.Valid {
		return
	}

	latest := &LatestReservation{
		ID:        m.ReservationID.String,
		UserID:    m.UserID.String,
		Username:  m.Username.String,
		StartTime: timezone.Format(m.StartTime.Time, constant.DateFormat),
		Cost:      m.Cost.Float64,
		Active:    m.HasActiveReservation(),
	}

	if m.EndTime.Valid {
		end := timezone.Format(m.EndTime.Time, constant.DateFormat)
		latest.EndTime = &end
	}

	r.Reservation = latest
}

type GetSpotReservationsResponse struct {
	LotID string                    `json:"lot_id"`
	Spots []SpotReservationResponse `json:"spots"`
}

func (r *GetSpotReservationsResponse) FromModels(lotID string, models []model.SpotReservation) {
	r.LotID = lotID
	r.Spots = make([]SpotReservationResponse, len(models))

	for i, mod := range models {
		r.Spots[i].FromModel(mod)
	}
}
