package commands

import (
	"context"
	"log/slog"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/team"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateDinnerRequest struct {
	SeasonID        uuid.UUID
	Date            time.Time
	MenuTitle       string
	MenuDescription string
	MenuPictureURL  *string
	// CookingTeamID overrides the rotation; nil takes the team on duty for the date
	CookingTeamID *uuid.UUID
	ChefID        *uuid.UUID
}

type AnnounceDinnerRequest struct {
	MenuTitle       string
	MenuDescription string
	MenuPictureURL  *string
	TotalCost       int64
	AllergenIDs     []uuid.UUID
}

type DinnerCommands interface {
	Create(ctx context.Context, req CreateDinnerRequest) (uuid.UUID, error)
	Announce(ctx context.Context, id uuid.UUID, req AnnounceDinnerRequest) error
	Consume(ctx context.Context, id uuid.UUID) error
	// Cancel cancels the dinner and every open order on it, returning the number of orders cancelled
	Cancel(ctx context.Context, id uuid.UUID) (int, error)
}

type dinnerUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewDinnerUseCase(uow shared.UnitOfWork, clk clock.Clock) DinnerCommands {
	return &dinnerUseCaseImpl{uow: uow, clock: clk}
}

func (uc *dinnerUseCaseImpl) Create(ctx context.Context, req CreateDinnerRequest) (uuid.UUID, error) {
	menu, err := dinner.NewMenu(req.MenuTitle, req.MenuDescription, req.MenuPictureURL)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, roster, err := shared.LoadRoster(ctx, tx, req.SeasonID)
		if err != nil {
			return classify(notFound(err, errs.ErrSeasonNotFound))
		}

		var cookingTeam *team.Team
		if req.CookingTeamID != nil {
			cookingTeam, err = tx.Teams().FindByID(ctx, *req.CookingTeamID)
			if err != nil {
				return notFound(err, errs.ErrTeamNotFound)
			}
		} else if len(roster.Teams()) > 0 && s.IsCookingDay(req.Date) {
			cookingTeam, err = roster.TeamForDate(req.Date)
			if err != nil {
				return classify(err)
			}
		}

		d, err := dinner.NewDinner(s, req.Date, cookingTeam, req.ChefID, menu, uc.clock.Now())
		if err != nil {
			return classify(err)
		}
		if err := tx.Dinners().Create(ctx, d); err != nil {
			return err
		}
		id = d.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	slog.Info("dinner scheduled", "dinner_event_id", id, "date", req.Date.Format(time.DateOnly))
	return id, nil
}

func (uc *dinnerUseCaseImpl) Announce(ctx context.Context, id uuid.UUID, req AnnounceDinnerRequest) error {
	menu, err := dinner.NewMenu(req.MenuTitle, req.MenuDescription, req.MenuPictureURL)
	if err != nil {
		return classify(err)
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Dinners().AllergyTypesExist(ctx, req.AllergenIDs)
		if err != nil {
			return err
		}
		if !ok {
			return classify(ErrUnknownAllergen)
		}
		d, err := tx.Dinners().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, errs.ErrDinnerNotFound)
		}
		if err := d.Announce(menu, req.TotalCost, req.AllergenIDs, uc.clock.Now()); err != nil {
			return classify(err)
		}
		return tx.Dinners().Update(ctx, d)
	})
}

func (uc *dinnerUseCaseImpl) Consume(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return consumeDinner(ctx, tx, id, uc.clock.Now())
	})
}

func consumeDinner(ctx context.Context, tx shared.Tx, id uuid.UUID, now time.Time) error {
	d, err := tx.Dinners().FindByIDForUpdate(ctx, id)
	if err != nil {
		return notFound(err, errs.ErrDinnerNotFound)
	}
	if err := d.Consume(now); err != nil {
		return classify(err)
	}
	return tx.Dinners().Update(ctx, d)
}

// Cancel runs as one transaction: the dinner and all its BOOKED/RELEASED orders change together, or nothing does
func (uc *dinnerUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (int, error) {
	var cancelled int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled = 0
		now := uc.clock.Now()

		d, err := tx.Dinners().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, errs.ErrDinnerNotFound)
		}
		if err := d.Cancel(now); err != nil {
			return classify(err)
		}
		if err := tx.Dinners().Update(ctx, d); err != nil {
			return err
		}

		orders, err := tx.Orders().ListOpenByDinnerForUpdate(ctx, id)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if err := o.Cancel(order.SystemActor(), "dinner cancelled", now); err != nil {
				return classify(err)
			}
			if err := tx.Orders().Update(ctx, o); err != nil {
				return err
			}
			if err := tx.History().Append(ctx, o.PullHistory()...); err != nil {
				return err
			}
			cancelled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	slog.Info("dinner cancelled", "dinner_event_id", id, "orders_cancelled", cancelled)
	return cancelled, nil
}
