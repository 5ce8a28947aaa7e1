//go:build e2e

package repository_test

import (
	"context"
	"testing"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/readstore"
	"commons-dinner/internal/infra/uow"
	"commons-dinner/internal/usecase/shared"
	"commons-dinner/tests/common/builder"
	"commons-dinner/tests/common/dbtest"
	"commons-dinner/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// RepositorySuite runs the postgres repositories against the real schema
type RepositorySuite struct {
	e2e.SharedSuite
	uow       shared.UnitOfWork
	household uuid.UUID
	eater     uuid.UUID
	pbsID     int64
}

func TestRepositorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.uow = uow.NewPostgresUoW(s.DB)
}

func (s *RepositorySuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.household = dbtest.CreateTestHousehold(s.T(), s.DB, 101, "Skraaningen 3")
	s.eater = dbtest.CreateTestInhabitant(s.T(), s.DB, s.household, "Karen", nil)
	s.pbsID = 101 + 50000
}

func (s *RepositorySuite) within(fn func(ctx context.Context, tx shared.Tx) error) {
	s.T().Helper()
	s.Require().NoError(s.uow.Within(context.Background(), fn))
}

func (s *RepositorySuite) dinner(date time.Time) *dinner.Dinner {
	s.T().Helper()
	d, err := builder.NewDinnerBuilder().With(func(b *builder.DinnerBuilder) {
		b.Date = date
		b.State = dinner.StateConsumed
	}).BuildDomain()
	s.Require().NoError(err)
	s.within(func(ctx context.Context, tx shared.Tx) error {
		return tx.Dinners().Create(ctx, d)
	})
	return d
}

func (s *RepositorySuite) newOrder(d *dinner.Dinner, mutate ...func(*builder.OrderBuilder)) *order.Order {
	b := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) {
		b.DinnerEventID = d.ID()
		b.InhabitantID = s.eater
		b.HouseholdID = s.household
	})
	for _, m := range mutate {
		b.With(m)
	}
	return b.BuildDomain()
}

func (s *RepositorySuite) order(d *dinner.Dinner, mutate ...func(*builder.OrderBuilder)) *order.Order {
	s.T().Helper()
	o := s.newOrder(d, mutate...)
	s.within(func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Create(ctx, o)
	})
	return o
}

// transaction charges o at the given time without touching the order
func (s *RepositorySuite) transaction(o *order.Order, at time.Time) *billing.Transaction {
	s.T().Helper()
	t, err := billing.NewTransaction(o.Snapshot(), billing.UserSnapshot{
		InhabitantID: s.eater,
		Name:         "Karen",
		HouseholdID:  s.household,
	}, "karen", at)
	s.Require().NoError(err)
	s.within(func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Billing().CreateTransaction(ctx, t)
		s.True(created)
		return err
	})
	return t
}

func (s *RepositorySuite) invoiceFor(p billing.Period, now time.Time) *billing.Invoice {
	return billing.NewInvoice(p, time.UTC, 5, billing.InvoiceHousehold{
		ID:      s.household,
		PbsID:   &s.pbsID,
		Address: "Skraaningen 3",
	}, now)
}

func ids[T interface{ ID() uuid.UUID }](items []T) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func (s *RepositorySuite) TestOrderCreateDuplicateBooking() {
	may := s.dinner(time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC))
	s.order(may)

	err := s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Create(ctx, s.newOrder(may))
	})
	s.True(infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)

	// guest tickets are exempt
	guests := s.dinner(time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC))
	s.order(guests)
	s.order(guests, func(b *builder.OrderBuilder) { b.IsGuestTicket = true })
	s.order(guests, func(b *builder.OrderBuilder) { b.IsGuestTicket = true })

	// a cancelled ticket frees the slot
	rebooked := s.dinner(time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC))
	s.order(rebooked, func(b *builder.OrderBuilder) { b.State = order.StateCancelled })
	s.order(rebooked)
}

func (s *RepositorySuite) TestListOpenByDinnerForUpdate() {
	may := s.dinner(time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC))
	other := s.dinner(time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC))
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	at := func(minutes int, state order.State, guest bool) func(*builder.OrderBuilder) {
		return func(b *builder.OrderBuilder) {
			b.CreatedAt = base.Add(time.Duration(minutes) * time.Minute)
			b.State = state
			b.IsGuestTicket = guest
		}
	}

	released := s.order(may, at(1, order.StateReleased, true))
	booked := s.order(may, at(2, order.StateBooked, false))
	s.order(may, at(3, order.StateCancelled, false))
	s.order(may, at(4, order.StateClosed, true))
	s.order(other, at(0, order.StateBooked, false))

	s.within(func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Orders().ListOpenByDinnerForUpdate(ctx, may.ID())
		s.Require().NoError(err)
		s.Equal([]uuid.UUID{released.ID(), booked.ID()}, ids(open))
		return nil
	})
}

func (s *RepositorySuite) TestInvoiceUpsertLinkRecalculate() {
	may := billing.PeriodOf(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	now := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	d1 := s.dinner(time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC))
	d2 := s.dinner(time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC))
	t1 := s.transaction(s.order(d1), now)
	t2 := s.transaction(s.order(d2, func(b *builder.OrderBuilder) { b.PriceAtBooking = 350 }), now)

	first := s.invoiceFor(may, now)
	var stored *billing.Invoice
	s.within(func(ctx context.Context, tx shared.Tx) error {
		var err error
		stored, err = tx.Billing().UpsertInvoice(ctx, first)
		return err
	})
	s.Equal(first.ID(), stored.ID())

	// a second draft for the same household and period returns the existing row
	s.within(func(ctx context.Context, tx shared.Tx) error {
		again, err := tx.Billing().UpsertInvoice(ctx, s.invoiceFor(may, now.Add(time.Hour)))
		s.Require().NoError(err)
		s.Equal(first.ID(), again.ID())
		s.True(first.CreatedAt().Equal(again.CreatedAt()))

		if err := tx.Billing().LinkTransactions(ctx, again.ID(), []uuid.UUID{t1.ID(), t2.ID()}); err != nil {
			return err
		}
		linked, err := tx.Billing().ListTransactionsByInvoice(ctx, again.ID())
		s.Require().NoError(err)
		s.ElementsMatch([]uuid.UUID{t1.ID(), t2.ID()}, ids(linked))

		again.Recalculate(linked, now.Add(time.Hour))
		return tx.Billing().UpdateInvoice(ctx, again)
	})

	s.within(func(ctx context.Context, tx shared.Tx) error {
		invoices, err := tx.Billing().ListInvoicesByPeriod(ctx, "2024-05")
		s.Require().NoError(err)
		s.Require().Len(invoices, 1)
		s.Equal(int64(550), invoices[0].Amount())
		s.Equal(&s.pbsID, invoices[0].PbsID())
		return nil
	})

	// linked transactions are not moved to another invoice
	june := s.invoiceFor(billing.PeriodOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), now)
	s.within(func(ctx context.Context, tx shared.Tx) error {
		inv, err := tx.Billing().UpsertInvoice(ctx, june)
		s.Require().NoError(err)
		if err := tx.Billing().LinkTransactions(ctx, inv.ID(), []uuid.UUID{t1.ID()}); err != nil {
			return err
		}
		moved, err := tx.Billing().ListTransactionsByInvoice(ctx, inv.ID())
		s.Require().NoError(err)
		s.Empty(moved)
		return nil
	})

	view, err := readstore.NewBillingReadStore(s.DB).FindInvoice(context.Background(), first.ID())
	s.Require().NoError(err)
	s.Equal(int64(550), view.Amount)
	s.Equal("Household Skraaningen 3", view.HouseholdName)
}

func (s *RepositorySuite) TestListUninvoicedTransactionsWindow() {
	cutoff := billing.PeriodOf(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)).Cutoff(time.UTC)
	closedAt := time.Date(2024, 6, 10, 2, 0, 0, 0, time.UTC)

	inMay := s.transaction(s.order(s.dinner(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))), closedAt)
	s.transaction(s.order(s.dinner(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))), closedAt)

	// orders removed after billing leave transactions dated by their creation
	orphanIn := s.transaction(s.order(s.dinner(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))), time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	orphanOut := s.transaction(s.order(s.dinner(time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC))), closedAt)
	_, err := s.DB.Exec(context.Background(), `DELETE FROM orders WHERE id = ANY($1::uuid[])`,
		[]uuid.UUID{*orphanIn.OrderID(), *orphanOut.OrderID()})
	s.Require().NoError(err)

	s.Require().NoError(s.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		txs, err := tx.Billing().ListUninvoicedTransactions(ctx, cutoff)
		s.Require().NoError(err)
		s.ElementsMatch([]uuid.UUID{inMay.ID(), orphanIn.ID()}, ids(txs))
		for _, t := range txs {
			if t.ID() == orphanIn.ID() {
				s.Nil(t.OrderID())
			}
		}
		return nil
	}))
}

func (s *RepositorySuite) TestJobRunCompletesOnce() {
	start := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	run, err := job.Start(job.TypeMonthlyBilling, "scheduler", start)
	s.Require().NoError(err)
	s.within(func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Create(ctx, run)
	})

	// a second instance holding a stale RUNNING copy
	stale := job.ReconstructRun(run.ID(), run.Type(), job.StatusRunning, run.StartedAt(), nil, nil, nil, nil, run.TriggeredBy())

	s.Require().NoError(run.Complete(job.Result{Total: 3, Succeeded: 3, Summary: "3/3 closed"}, nil, start.Add(time.Minute)))
	s.within(func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Complete(ctx, run)
	})

	s.Require().NoError(stale.Complete(job.Result{Total: 3, Failed: 3}, nil, start.Add(2*time.Minute)))
	err = s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Complete(ctx, stale)
	})
	s.ErrorIs(err, job.ErrJobRunFinished)

	runs, err := readstore.NewJobRunReadStore(s.DB).List(context.Background(), nil, nil, nil, 10)
	s.Require().NoError(err)
	s.Require().Len(runs, 1)
	s.Equal(string(job.StatusSuccess), runs[0].Status)
	s.Require().NotNil(runs[0].ResultSummary)
	s.Equal("3/3 closed", *runs[0].ResultSummary)
}
