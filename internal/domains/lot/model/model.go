package model

import "parking/shared/model"

const (
	TableName  = "parking_lots"
	EntityName = "lot"

	FieldID       = "id"
	FieldName     = "name"
	FieldAddress  = "address"
	FieldPinCode  = "pin_code"
	FieldPrice    = "price"
	FieldMaxSpots = "max_spots"
	FieldImage    = "image"
)

type ParkingLot struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Address  string  `db:"address"`
	PinCode  string  `db:"pin_code"`
	Price    float64 `db:"price"`
	MaxSpots int     `db:"max_spots"`
	Image    string  `db:"image"`
	model.Metadata
}

// LotAvailability is a lot with its spot counts by status.
type LotAvailability struct {
	ParkingLot
	Available int `db:"available"`
	Occupied  int `db:"occupied"`
}
