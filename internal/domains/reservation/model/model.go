package model

import (
	"parking/shared/model"
	"time"

	"gopkg.in/guregu/null.v4"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldSpotID    = "spot_id"
	FieldLotID     = "lot_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldCost      = "cost"

	// SortByStartTime orders listings by booking time.
	SortByStartTime = TableName + "." + FieldStartTime

	ConstraintActiveSpot = "reservations_active_spot_idx"
	ConstraintActiveUser = "reservations_active_user_idx"
)

// Reservation is active while EndTime is null. SpotID and LotID are cleared when the
// referenced spot or lot is deleted.
type Reservation struct {
	ID         string      `db:"id"`
	UserID     string      `db:"user_id"`
	SpotID     null.String `db:"spot_id"`
	LotID      null.String `db:"lot_id"`
	StartTime  time.Time   `db:"start_time"`
	EndTime    null.Time   `db:"end_time"`
	Cost       float64     `db:"cost"`
	Username   null.String `db:"username"    table:"users"         column:"username"`
	SpotNumber null.Int    `db:"spot_number" table:"parking_spots" column:"number"`
	LotName    null.String `db:"lot_name"    table:"parking_lots"  column:"name"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return `LEFT JOIN users ON users.id = reservations.user_id
LEFT JOIN parking_spots ON parking_spots.id = reservations.spot_id
LEFT JOIN parking_lots ON parking_lots.id = reservations.lot_id`
}

func (r Reservation) IsActive() bool {
	return !r.EndTime.Valid
}
