package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lunabay/infras/otel"
	"lunabay/infras/postgres"
	"lunabay/internal/domains/room/model"
	"lunabay/shared/constant"
	gDto "lunabay/shared/dto"
	"lunabay/shared/logger"
	gRepo "lunabay/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	GetFeatures(ctx context.Context) ([]model.Feature, error)
	GetFeatureTags(ctx context.Context, roomIDs []string) ([]model.FeatureTag, error)
	ReplaceFeaturesTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, featureIDs []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	featureRepo     gRepo.Repository[model.Feature]
	roomFeatureRepo gRepo.Repository[model.RoomFeature]
	db              *postgres.Connection
	otel            otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository:      gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		featureRepo:     gRepo.NewRepository[model.Feature](model.FeatureEntityName, model.FeatureTableName, model.FieldID, db, otel),
		roomFeatureRepo: gRepo.NewRepository[model.RoomFeature](model.RoomFeatureEntityName, model.RoomFeatureTableName, model.FieldRoomID, db, otel),
		db:              db,
		otel:            otel,
	}
}

func (repo *repositoryImpl) GetFeatures(ctx context.Context) ([]model.Feature, error) {
	params := gDto.QueryParams{SortBy: model.FieldFeatureName, SortDir: "ASC"}

	return repo.featureRepo.GetAll(ctx, params, gDto.FilterGroup{}) //nolint:wrapcheck
}

// GetFeatureTags resolves the feature names attached to each of the given
// rooms in a single query.
func (repo *repositoryImpl) GetFeatureTags(ctx context.Context, roomIDs []string) (tags []model.FeatureTag, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetFeatureTags")
	defer scope.End()

	if len(roomIDs) == 0 {
		return tags, nil
	}

	query, args, err := sqlx.In(
		"SELECT rf.room_id, f.name FROM room_features rf JOIN features f ON f.id = rf.feature_id WHERE rf.room_id IN (?) ORDER BY f.name",
		roomIDs,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return tags, fmt.Errorf("failed to build feature tags query: %w", err)
	}

	query = repo.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &tags, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return tags, fmt.Errorf("failed to get feature tags: %w", err)
	}

	return tags, nil
}

// ReplaceFeaturesTx swaps a room's feature links inside the given
// transaction.
func (repo *repositoryImpl) ReplaceFeaturesTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, featureIDs []string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ReplaceFeaturesTx")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.RoomFeatureTableName,
			},
		},
	}

	if _, err := repo.roomFeatureRepo.DeleteTx(ctx, sqltx, filter); err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	if len(featureIDs) == 0 {
		return nil
	}

	links := make([]model.RoomFeature, len(featureIDs))
	for i, featureID := range featureIDs {
		links[i] = model.RoomFeature{RoomID: roomID, FeatureID: featureID}
	}

	if err := repo.roomFeatureRepo.InsertBulkTx(ctx, sqltx, links); err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}
