package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/booking/model"
	"homestay/shared/constant"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
	"homestay/shared/logger"
	gRepo "homestay/shared/repository"
)

// hashtext keeps the lock key in the int4 space advisory locks accept for a text id.
const lockPropertyQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	HasOverlap(ctx context.Context, propertyID string, dates daterange.DateRange, excludeID string) (bool, error)
	HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, dates daterange.DateRange) (bool, error)
	LockPropertyTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// OverlapFilter matches blocking bookings on the property whose half-open range intersects dates.
func OverlapFilter(propertyID string, dates daterange.DateRange, excludeID string) gDto.FilterGroup {
	statuses := make([]string, 0, len(model.BlockingStatuses))
	for _, s := range model.BlockingStatuses {
		statuses = append(statuses, string(s))
	}

	filters := []any{
		gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq},
		gDto.Filter{Field: model.FieldStatus, Value: statuses, Operator: gDto.FilterOperatorIn},
		gDto.Filter{Field: model.FieldCheckIn, ArgName: "range_check_out", Value: dates.CheckOut, Operator: gDto.FilterOperatorLess},
		gDto.Filter{Field: model.FieldCheckOut, ArgName: "range_check_in", Value: dates.CheckIn, Operator: gDto.FilterOperatorGreater},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldID, ArgName: "exclude_id", Value: excludeID, Operator: gDto.FilterOperatorNotEq})
	}

	return gDto.And(filters...)
}

func (r *repositoryImpl) HasOverlap(ctx context.Context, propertyID string, dates daterange.DateRange, excludeID string) (bool, error) {
	return r.Exist(ctx, OverlapFilter(propertyID, dates, excludeID)) //nolint:wrapcheck
}

func (r *repositoryImpl) HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, dates daterange.DateRange) (bool, error) {
	return r.ExistTx(ctx, sqltx, OverlapFilter(propertyID, dates, "")) //nolint:wrapcheck
}

// LockPropertyTx serializes promotions for one property until the transaction ends.
func (r *repositoryImpl) LockPropertyTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LockPropertyTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockPropertyQuery)

	if _, err := sqltx.ExecContext(ctx, lockPropertyQuery, propertyID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock property %s: %w", propertyID, err)
	}

	return nil
}
