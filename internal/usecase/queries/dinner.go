package queries

import (
	"context"
	"time"

	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type DinnerQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DinnerView, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*DinnerView, error)
	// Chef resolves the dinner's explicit chef, else the cooking team's lead CHEF
	Chef(ctx context.Context, id uuid.UUID) (*ChefView, error)
}

type DinnerReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DinnerView, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*DinnerView, error)
}

type dinnerQueriesImpl struct {
	store DinnerReadStore
	uow   shared.UnitOfWork
}

func NewDinnerQueries(store DinnerReadStore, uow shared.UnitOfWork) DinnerQueries {
	return &dinnerQueriesImpl{store: store, uow: uow}
}

func (q *dinnerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*DinnerView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrDinnerNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *dinnerQueriesImpl) ListBetween(ctx context.Context, from, to time.Time) ([]*DinnerView, error) {
	if to.Before(from) {
		return nil, errs.Mark(errs.New("range end before start"), errs.ErrDomainValidation)
	}
	return q.store.ListBetween(ctx, from, to)
}

func (q *dinnerQueriesImpl) Chef(ctx context.Context, id uuid.UUID) (*ChefView, error) {
	var out *ChefView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Dinners().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrDinnerNotFound
			}
			return err
		}

		out = &ChefView{DinnerEventID: d.ID()}
		if d.ChefID() != nil {
			out.ChefID = d.ChefID()
			out.Explicit = true
			return nil
		}
		if d.SeasonID() == nil {
			return nil
		}
		_, roster, err := shared.LoadRoster(ctx, tx, *d.SeasonID())
		if err != nil {
			return err
		}
		if chef, ok := roster.ChefOf(nil, d.CookingTeamID()); ok {
			out.ChefID = &chef
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
