package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"lunabay/infras/otel"
	"lunabay/infras/postgres"
	"lunabay/internal/domains/guest/model"
	gDto "lunabay/shared/dto"
	gRepo "lunabay/shared/repository"
)

// Guest rows are written exclusively inside booking transactions, so the
// write surface is transaction-scoped.
type Guest interface {
	GetByEmailTx(ctx context.Context, sqltx *sqlx.Tx, email string) (model.Guest, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Guest) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Guest, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetByEmailTx(ctx context.Context, sqltx *sqlx.Tx, email string) (model.Guest, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    model.TableName,
			},
		},
	}

	return repo.GetTx(ctx, sqltx, filter)
}
