package commands

import (
	"context"
	"log/slog"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookOrderRequest struct {
	DinnerEventID uuid.UUID
	InhabitantID  uuid.UUID
	DinnerMode    string
	IsGuestTicket bool
}

type OrderCommands interface {
	Book(ctx context.Context, req BookOrderRequest, actor order.Actor) (uuid.UUID, error)
	Release(ctx context.Context, orderID uuid.UUID, actor order.Actor) error
	Cancel(ctx context.Context, orderID uuid.UUID, reason string, actor order.Actor) error
	ChangeDiningMode(ctx context.Context, orderID uuid.UUID, mode string, actor order.Actor) error
	Claim(ctx context.Context, orderID, claimerID uuid.UUID, actor order.Actor) error
}

type orderUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOrderUseCase(uow shared.UnitOfWork, clk clock.Clock) OrderCommands {
	return &orderUseCaseImpl{uow: uow, clock: clk}
}

// Book takes a ticket. A second open ticket for the same eater is rejected by the unique index, not by locking.
func (uc *orderUseCaseImpl) Book(ctx context.Context, req BookOrderRequest, actor order.Actor) (uuid.UUID, error) {
	var mode order.DinnerMode
	if req.DinnerMode != "" {
		m, err := order.NewDinnerMode(req.DinnerMode)
		if err != nil {
			return uuid.Nil, classify(err)
		}
		mode = m
	}

	var bookedID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// the dinner row lock orders bookings against a concurrent cancellation cascade
		d, err := tx.Dinners().FindByIDForUpdate(ctx, req.DinnerEventID)
		if err != nil {
			return notFound(err, errs.ErrDinnerNotFound)
		}
		if d.SeasonID() == nil {
			return classify(ErrDinnerHasNoSeason)
		}
		inh, err := tx.Households().FindInhabitant(ctx, req.InhabitantID)
		if err != nil {
			return notFound(err, errs.ErrInhabitantNotFound)
		}
		prices, err := tx.Seasons().TicketPrices(ctx, *d.SeasonID())
		if err != nil {
			return err
		}

		o, err := order.Book(order.BookingRequest{
			Dinner:       d,
			InhabitantID: inh.ID(),
			BirthDate:    inh.BirthDate(),
			Prices:       prices,
			Mode:         mode,
			IsGuest:      req.IsGuestTicket,
			Actor:        actor,
		}, uc.clock.Now())
		if err != nil {
			return classify(err)
		}

		if err := tx.Orders().Create(ctx, o); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(ErrOrderConflict, errs.ErrConflict)
			}
			return err
		}
		if err := tx.History().Append(ctx, o.PullHistory()...); err != nil {
			return err
		}
		bookedID = o.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	slog.Info("order booked",
		"order_id", bookedID,
		"dinner_event_id", req.DinnerEventID,
		"inhabitant_id", req.InhabitantID,
		"guest", req.IsGuestTicket)
	return bookedID, nil
}

func (uc *orderUseCaseImpl) Release(ctx context.Context, orderID uuid.UUID, actor order.Actor) error {
	return uc.transition(ctx, orderID, func(o *order.Order, d *dinner.Dinner, s *season.Season) error {
		return o.Release(s, d.Date(), actor, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) Cancel(ctx context.Context, orderID uuid.UUID, reason string, actor order.Actor) error {
	return uc.transition(ctx, orderID, func(o *order.Order, _ *dinner.Dinner, _ *season.Season) error {
		return o.Cancel(actor, reason, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) ChangeDiningMode(ctx context.Context, orderID uuid.UUID, mode string, actor order.Actor) error {
	m, err := order.NewDinnerMode(mode)
	if err != nil {
		return classify(err)
	}
	return uc.transition(ctx, orderID, func(o *order.Order, d *dinner.Dinner, s *season.Season) error {
		return o.ChangeDiningMode(s, d.Date(), m, actor, uc.clock.Now())
	})
}

// Claim hands a released ticket to claimerID; the claimer must not already hold an open ticket
func (uc *orderUseCaseImpl) Claim(ctx context.Context, orderID, claimerID uuid.UUID, actor order.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Households().FindInhabitant(ctx, claimerID); err != nil {
			return notFound(err, errs.ErrInhabitantNotFound)
		}
		err := uc.apply(ctx, tx, orderID, func(o *order.Order, d *dinner.Dinner, s *season.Season) error {
			return o.Claim(s, d.Date(), claimerID, actor, uc.clock.Now())
		})
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(ErrOrderConflict, errs.ErrConflict)
		}
		return err
	})
}

func (uc *orderUseCaseImpl) transition(ctx context.Context, orderID uuid.UUID, fn func(*order.Order, *dinner.Dinner, *season.Season) error) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return uc.apply(ctx, tx, orderID, fn)
	})
}

// apply locks the order row, runs one domain transition and persists it with its history
func (uc *orderUseCaseImpl) apply(ctx context.Context, tx shared.Tx, orderID uuid.UUID, fn func(*order.Order, *dinner.Dinner, *season.Season) error) error {
	o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return notFound(err, errs.ErrOrderNotFound)
	}
	d, err := tx.Dinners().FindByID(ctx, o.DinnerEventID())
	if err != nil {
		return integrity(err, "dinner event")
	}
	seasonID := o.SeasonID()
	if seasonID == nil {
		seasonID = d.SeasonID()
	}
	if seasonID == nil {
		return classify(ErrDinnerHasNoSeason)
	}
	s, err := tx.Seasons().FindByID(ctx, *seasonID)
	if err != nil {
		return integrity(err, "season")
	}

	if err := fn(o, d, s); err != nil {
		return classify(err)
	}
	if err := tx.Orders().Update(ctx, o); err != nil {
		return err
	}
	return tx.History().Append(ctx, o.PullHistory()...)
}
