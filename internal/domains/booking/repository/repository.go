package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lunabay/infras/otel"
	"lunabay/infras/postgres"
	"lunabay/internal/domains/booking/model"
	"lunabay/shared/constant"
	gDto "lunabay/shared/dto"
	"lunabay/shared/logger"
	gRepo "lunabay/shared/repository"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, exclude *model.Key) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error)
	CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detailRepo gRepo.Repository[model.BookingDetail]
	db         *postgres.Connection
	otel       otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldGuestID, db, otel),
		detailRepo: gRepo.NewRepository[model.BookingDetail](model.EntityName+"_detail", model.TableName, model.FieldGuestID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExistOverlapTx reports whether any booking for the room intersects the
// half-open interval [checkIn, checkOut). The caller must hold the room
// row lock in the same transaction so the answer stays valid until commit.
// When exclude is set, the booking with that key is ignored so an edit
// does not collide with itself.
func (repo *repositoryImpl) ExistOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, exclude *model.Key) (exist bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ExistOverlapTx")
	defer scope.End()

	query := "SELECT EXISTS(SELECT 1 FROM bookings WHERE room_id = :room_id AND check_in < :new_check_out AND check_out > :new_check_in"
	args := map[string]any{
		"room_id":       roomID,
		"new_check_in":  checkIn,
		"new_check_out": checkOut,
	}

	if exclude != nil {
		query += " AND NOT (guest_id = :exclude_guest_id AND check_in = :exclude_check_in)"
		args["exclude_guest_id"] = exclude.GuestID
		args["exclude_check_in"] = exclude.CheckIn
	}

	query += ")"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &exist, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return exist, nil
}

func (repo *repositoryImpl) GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
	return repo.detailRepo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.detailRepo.Count(ctx, filter) //nolint:wrapcheck
}
