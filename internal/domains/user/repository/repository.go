package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/internal/domains/user/model"
	gDto "parking/shared/dto"
	gRepo "parking/shared/repository"
)

// User stores accounts. Usernames are unique, so Insert surfaces a taken name as a conflict.
type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

func New(db *postgres.Connection, otel otel.Otel) User {
	repo := gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel)

	return &repo
}

func FilterByID(id string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldID, id))
}

func FilterByUsername(username string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldUsername, username))
}
