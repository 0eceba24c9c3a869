package model

import (
	"parking/shared/model"
	"time"

	"gopkg.in/guregu/null.v4"
)

const (
	TableName  = "parking_spots"
	EntityName = "spot"

	FieldID     = "id"
	FieldLotID  = "lot_id"
	FieldNumber = "number"
	FieldStatus = "status"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
)

type ParkingSpot struct {
	ID     string `db:"id"`
	LotID  string `db:"lot_id"`
	Number int    `db:"number"`
	Status Status `db:"status"`
	model.Metadata
}

func (s ParkingSpot) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// SpotReservation is a spot joined with its most recent reservation, if any.
type SpotReservation struct {
	ParkingSpot
	ReservationID null.String `db:"reservation_id"`
	UserID        null.String `db:"user_id"`
	Username      null.String `db:"username"`
	StartTime     null.Time   `db:"start_time"`
	EndTime       null.Time   `db:"end_time"`
	Cost          null.Float  `db:"cost"`
}

func (s SpotReservation) HasActiveReservation() bool {
	return s.ReservationID.Valid && !s.EndTime.Valid
}

// NewSpots numbers count available spots for lotID starting after lastNumber.
func NewSpots(lotID string, lastNumber, count int, user string, now time.Time, newID func() string) []ParkingSpot {
	spots := make([]ParkingSpot, count)

	for i := range spots {
		spots[i] = ParkingSpot{
			ID:       newID(),
			LotID:    lotID,
			Number:   lastNumber + i + 1,
			Status:   StatusAvailable,
			Metadata: model.NewMetadata(user, now),
		}
	}

	return spots
}
