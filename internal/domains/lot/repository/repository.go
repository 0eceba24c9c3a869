package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/internal/domains/lot/model"
	spotModel "parking/internal/domains/spot/model"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/logger"
	gRepo "parking/shared/repository"

	"github.com/jmoiron/sqlx"
)

const availabilityQuery = `SELECT parking_lots.*,
	COUNT(parking_spots.id) FILTER (WHERE parking_spots.status = '%s') AS available,
	COUNT(parking_spots.id) FILTER (WHERE parking_spots.status = '%s') AS occupied
FROM parking_lots
LEFT JOIN parking_spots ON parking_spots.lot_id = parking_lots.id
%s
GROUP BY parking_lots.id
ORDER BY parking_lots.created_at DESC`

type Lot interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.ParkingLot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ParkingLot, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.ParkingLot, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.ParkingLot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	GetAllAvailability(ctx context.Context, filter gDto.FilterGroup) ([]model.LotAvailability, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ParkingLot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ParkingLot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetAllAvailability lists lots newest first with their available and occupied spot counts.
func (r *repositoryImpl) GetAllAvailability(ctx context.Context, filter gDto.FilterGroup) ([]model.LotAvailability, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lot.GetAllAvailability")
	defer scope.End()

	where, args := r.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf(availabilityQuery, spotModel.StatusAvailable, spotModel.StatusOccupied, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var lots []model.LotAvailability

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return lots, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &lots, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return lots, fmt.Errorf("failed to get lot availability: %w", err)
	}

	return lots, nil
}
