//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/usecase/shared"
	"commons-dinner/tests/common/builder"
	"commons-dinner/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// world is an in-memory community with one active season and the default prices
type world struct {
	t      *testing.T
	store  *memuow.Store
	clock  *clock.MockClock
	season *season.Season
}

func newWorld(t *testing.T, now time.Time) *world {
	t.Helper()
	s, err := builder.NewSeasonBuilder().BuildDomain()
	require.NoError(t, err)

	w := &world{t: t, store: memuow.New(), clock: clock.NewMockClock(now), season: s}
	w.store.Seed(t, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Seasons().Create(ctx, s); err != nil {
			return err
		}
		for _, p := range builder.DefaultTicketPrices(s.ID()) {
			if err := tx.Seasons().CreateTicketPrice(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	return w
}

func (w *world) household(names ...string) (*household.Household, []*household.Inhabitant) {
	w.t.Helper()
	h, err := builder.NewHouseholdBuilder().BuildDomain()
	require.NoError(w.t, err)

	inhabitants := make([]*household.Inhabitant, 0, len(names))
	for _, name := range names {
		inh, err := builder.NewInhabitantBuilder(h.ID()).With(func(b *builder.InhabitantBuilder) {
			b.Name = name
		}).BuildDomain()
		require.NoError(w.t, err)
		inhabitants = append(inhabitants, inh)
	}

	w.store.Seed(w.t, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Households().Create(ctx, h); err != nil {
			return err
		}
		for _, inh := range inhabitants {
			if err := tx.Households().CreateInhabitant(ctx, inh); err != nil {
				return err
			}
		}
		return nil
	})
	return h, inhabitants
}

func (w *world) dinner(date time.Time, state dinner.State) *dinner.Dinner {
	w.t.Helper()
	seasonID := w.season.ID()
	d, err := builder.NewDinnerBuilder().With(func(b *builder.DinnerBuilder) {
		b.SeasonID = &seasonID
		b.Date = date
		b.State = state
	}).BuildDomain()
	require.NoError(w.t, err)

	w.store.Seed(w.t, func(ctx context.Context, tx shared.Tx) error {
		return tx.Dinners().Create(ctx, d)
	})
	return d
}

func (w *world) order(d *dinner.Dinner, inh *household.Inhabitant, mutate ...func(*builder.OrderBuilder)) *order.Order {
	w.t.Helper()
	seasonID := w.season.ID()
	b := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) {
		b.DinnerEventID = d.ID()
		b.InhabitantID = inh.ID()
		b.HouseholdID = inh.HouseholdID()
		b.SeasonID = &seasonID
	})
	for _, m := range mutate {
		b.With(m)
	}
	o := b.BuildDomain()

	w.store.Seed(w.t, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Create(ctx, o)
	})
	return o
}

func countState(orders []*order.Order, state order.State) int {
	n := 0
	for _, o := range orders {
		if o.State() == state {
			n++
		}
	}
	return n
}

// faultyHistoryUoW fails the history append number failOn (1-based) inside a transaction
type faultyHistoryUoW struct {
	*memuow.Store
	failOn int
	err    error
}

func (u *faultyHistoryUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, &faultyHistoryTx{Tx: tx, uow: u})
	})
}

type faultyHistoryTx struct {
	shared.Tx
	uow   *faultyHistoryUoW
	calls int
}

func (t *faultyHistoryTx) History() shared.OrderHistoryRepository { return t }

func (t *faultyHistoryTx) Append(ctx context.Context, entries ...order.HistoryEntry) error {
	t.calls++
	if t.calls == t.uow.failOn {
		return t.uow.err
	}
	return t.Tx.History().Append(ctx, entries...)
}

// orphanUoW loses every inhabitant inside read-write transactions
type orphanUoW struct {
	*memuow.Store
}

func (u *orphanUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, &orphanTx{Tx: tx})
	})
}

type orphanTx struct {
	shared.Tx
}

func (t *orphanTx) Households() shared.HouseholdRepository {
	return orphanHouseholds{HouseholdRepository: t.Tx.Households()}
}

type orphanHouseholds struct {
	shared.HouseholdRepository
}

func (orphanHouseholds) FindInhabitant(context.Context, uuid.UUID) (*household.Inhabitant, error) {
	return nil, infra.NotFound("inhabitant not found")
}
