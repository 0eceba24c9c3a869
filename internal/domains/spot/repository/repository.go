package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/internal/domains/spot/model"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/logger"
	gRepo "parking/shared/repository"
	"parking/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	claimQuery = `UPDATE parking_spots
SET status = :occupied, modified_at = :modified_at, modified_by = :modified_by
WHERE id = (
	SELECT id FROM parking_spots
	WHERE lot_id = :lot_id AND status = :available
	ORDER BY number
	LIMIT 1
	FOR UPDATE SKIP LOCKED
) AND status = :available
RETURNING id, lot_id, number, status, created_at, modified_at, created_by, modified_by`

	setStatusQuery = `UPDATE parking_spots
SET status = :to, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id AND status = :from`

	maxNumberQuery = `SELECT COALESCE(MAX(number), 0) FROM parking_spots WHERE lot_id = :lot_id`

	deleteHighestAvailableQuery = `DELETE FROM parking_spots
WHERE id IN (
	SELECT id FROM parking_spots
	WHERE lot_id = :lot_id AND status = :available
	ORDER BY number DESC
	LIMIT :count
	FOR UPDATE
)`

	latestReservationQuery = `SELECT parking_spots.*,
	latest.id AS reservation_id,
	latest.user_id,
	users.username,
	latest.start_time,
	latest.end_time,
	latest.cost
FROM parking_spots
LEFT JOIN LATERAL (
	SELECT reservations.id, reservations.user_id, reservations.start_time, reservations.end_time, reservations.cost
	FROM reservations
	WHERE reservations.spot_id = parking_spots.id
	ORDER BY reservations.start_time DESC
	LIMIT 1
) latest ON TRUE
LEFT JOIN users ON users.id = latest.user_id
WHERE parking_spots.lot_id = :lot_id
ORDER BY parking_spots.number`
)

type Spot interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ParkingSpot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ParkingSpot, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.ParkingSpot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.ParkingSpot) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	ClaimAvailableTx(ctx context.Context, sqltx *sqlx.Tx, lotID, user string) (model.ParkingSpot, error)
	SetStatusTx(ctx context.Context, sqltx *sqlx.Tx, id string, from, to model.Status, user string) (bool, error)
	MaxNumberTx(ctx context.Context, sqltx *sqlx.Tx, lotID string) (int, error)
	DeleteHighestAvailableTx(ctx context.Context, sqltx *sqlx.Tx, lotID string, count int) (int, error)
	GetAllWithLatestReservation(ctx context.Context, lotID string) ([]model.SpotReservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ParkingSpot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Spot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ParkingSpot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ClaimAvailableTx flips the lowest-numbered available spot of the lot to occupied.
// Spots row-locked by other transactions are skipped. A zero spot means none was free.
func (r *repositoryImpl) ClaimAvailableTx(ctx context.Context, sqltx *sqlx.Tx, lotID, user string) (model.ParkingSpot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".spot.ClaimAvailableTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, claimQuery)

	var spot model.ParkingSpot

	prepare, err := sqltx.PrepareNamedContext(ctx, claimQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return spot, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &spot, map[string]any{
		"lot_id":      lotID,
		"available":   model.StatusAvailable,
		"occupied":    model.StatusOccupied,
		"modified_at": timezone.Now(),
		"modified_by": user,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.ParkingSpot{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return spot, fmt.Errorf("failed to claim spot: %w", err)
	}

	return spot, nil
}

// SetStatusTx moves a spot from one status to another and reports whether a row changed.
func (r *repositoryImpl) SetStatusTx(ctx context.Context, sqltx *sqlx.Tx, id string, from, to model.Status, user string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".spot.SetStatusTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, setStatusQuery)

	result, err := sqltx.NamedExecContext(ctx, setStatusQuery, map[string]any{
		"id":          id,
		"from":        from,
		"to":          to,
		"modified_at": timezone.Now(),
		"modified_by": user,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to set spot status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

func (r *repositoryImpl) MaxNumberTx(ctx context.Context, sqltx *sqlx.Tx, lotID string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".spot.MaxNumberTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, maxNumberQuery)

	var number int

	prepare, err := sqltx.PrepareNamedContext(ctx, maxNumberQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &number, map[string]any{"lot_id": lotID}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get max spot number: %w", err)
	}

	return number, nil
}

// DeleteHighestAvailableTx removes up to count available spots, highest number first,
// and returns how many were removed.
func (r *repositoryImpl) DeleteHighestAvailableTx(ctx context.Context, sqltx *sqlx.Tx, lotID string, count int) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".spot.DeleteHighestAvailableTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, deleteHighestAvailableQuery)

	result, err := sqltx.NamedExecContext(ctx, deleteHighestAvailableQuery, map[string]any{
		"lot_id":    lotID,
		"available": model.StatusAvailable,
		"count":     count,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete spots: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return int(affected), nil
}

func (r *repositoryImpl) GetAllWithLatestReservation(ctx context.Context, lotID string) ([]model.SpotReservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".spot.GetAllWithLatestReservation")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, latestReservationQuery)

	var spots []model.SpotReservation

	prepare, err := r.db.Read.PrepareNamedContext(ctx, latestReservationQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return spots, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &spots, map[string]any{"lot_id": lotID}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return spots, fmt.Errorf("failed to get spots with reservations: %w", err)
	}

	return spots, nil
}

func FilterByLot(lotID string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldLotID, lotID))
}

func FilterByLotAndID(lotID, id string) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldID, id),
		gDto.Eq(model.TableName, model.FieldLotID, lotID),
	)
}

func FilterByLotAndStatus(lotID string, status model.Status) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldLotID, lotID),
		gDto.Eq(model.TableName, model.FieldStatus, status),
	)
}
