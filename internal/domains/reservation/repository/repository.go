package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/reservation/model"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gRepo "homestay/shared/repository"
)

type Reservation interface {
	InsertReturning(ctx context.Context, intent model.StagedIntent) (model.StagedIntent, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StagedIntent, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.StagedIntent, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	ClaimTx(ctx context.Context, sqltx *sqlx.Tx, id int64, source model.Source) (model.StagedIntent, bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.StagedIntent]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.StagedIntent](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// IntentFilter matches one intent. An empty source or userID widens the match.
func IntentFilter(id int64, source model.Source, userID string) gDto.FilterGroup {
	filters := []any{gDto.Filter{Table: model.TableName, Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq}}

	if source != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldSource, Value: string(source), Operator: gDto.FilterOperatorEq})
	}

	if userID != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq})
	}

	return gDto.And(filters...)
}

// ExpiredFilter matches intents of source staged before cutoff.
func ExpiredFilter(source model.Source, cutoff time.Time) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Table: model.TableName, Field: model.FieldSource, Value: string(source), Operator: gDto.FilterOperatorEq},
		gDto.Filter{Table: model.TableName, Field: constant.FieldCreatedAt, Value: cutoff, Operator: gDto.FilterOperatorLess},
	)
}

// ClaimTx deletes the intent and returns what was deleted. Only one of any number of
// concurrent callers gets ok == true for a given id.
func (r *repositoryImpl) ClaimTx(ctx context.Context, sqltx *sqlx.Tx, id int64, source model.Source) (model.StagedIntent, bool, error) {
	rows, err := r.DeleteReturningTx(ctx, sqltx, IntentFilter(id, source, ""))
	if err != nil {
		return model.StagedIntent{}, false, fmt.Errorf("claim intent %d: %w", id, err)
	}

	if len(rows) == 0 {
		return model.StagedIntent{}, false, nil
	}

	return rows[0], true, nil
}
