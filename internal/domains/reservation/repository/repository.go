package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/internal/domains/reservation/model"
	gDto "parking/shared/dto"
	gRepo "parking/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func FilterByUser(userID string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldUserID, userID))
}

func FilterActiveByUser(userID string) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldUserID, userID),
		gDto.IsNull(model.TableName, model.FieldEndTime),
	)
}
