package queries

import (
	"context"

	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByDinner(ctx context.Context, dinnerID uuid.UUID) ([]*OrderView, error)
	History(ctx context.Context, orderID uuid.UUID) ([]*OrderHistoryView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByDinner(ctx context.Context, dinnerID uuid.UUID) ([]*OrderView, error)
	ListHistory(ctx context.Context, orderID uuid.UUID) ([]*OrderHistoryView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *orderQueriesImpl) ListByDinner(ctx context.Context, dinnerID uuid.UUID) ([]*OrderView, error) {
	return q.store.ListByDinner(ctx, dinnerID)
}

// History is returned oldest first
func (q *orderQueriesImpl) History(ctx context.Context, orderID uuid.UUID) ([]*OrderHistoryView, error) {
	if _, err := q.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return q.store.ListHistory(ctx, orderID)
}
