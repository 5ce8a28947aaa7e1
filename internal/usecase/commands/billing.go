package commands

import (
	"context"
	"log/slog"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

type BillingSettings struct {
	Location               *time.Location
	PaymentDaysAfterCutoff int
	Workers                int
	// ChargeReleased bills RELEASED tickets that nobody claimed
	ChargeReleased bool
}

type BillingCommands interface {
	// ClosePeriod bills every eligible order up to the period cutoff. Re-running resumes where a previous run stopped.
	ClosePeriod(ctx context.Context, period string) (job.Result, error)
	// ClosePreviousPeriod closes the month before now
	ClosePreviousPeriod(ctx context.Context) (job.Result, error)
	// ExportInvoices hands un-exported invoices to the payment export adapter
	ExportInvoices(ctx context.Context) (job.Result, error)
}

type billingUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher shared.InvoicePublisher
	clock     clock.Clock
	settings  BillingSettings
	invoices  *keyedMutex
}

func NewBillingUseCase(uow shared.UnitOfWork, publisher shared.InvoicePublisher, clk clock.Clock, settings BillingSettings) BillingCommands {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Workers <= 0 {
		settings.Workers = 1
	}
	return &billingUseCaseImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		settings:  settings,
		invoices:  newKeyedMutex(),
	}
}

func (uc *billingUseCaseImpl) ClosePreviousPeriod(ctx context.Context) (job.Result, error) {
	p := billing.PeriodOf(uc.clock.Now().In(uc.settings.Location)).Previous()
	return uc.ClosePeriod(ctx, p.Key())
}

func (uc *billingUseCaseImpl) ClosePeriod(ctx context.Context, period string) (job.Result, error) {
	p, err := billing.ParsePeriod(period)
	if err != nil {
		return job.Result{}, classify(err)
	}
	cutoff := p.Cutoff(uc.settings.Location)

	var ids []uuid.UUID
	err = uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ids, err = tx.Orders().ListBillableIDs(ctx, cutoff, uc.settings.ChargeReleased)
		return err
	})
	if err != nil {
		return job.Result{}, err
	}

	tally := job.NewTally(len(ids))
	var g errgroup.Group
	g.SetLimit(uc.settings.Workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := uc.closeOrder(ctx, id); err != nil {
				slog.Warn("order close failed", "order_id", id, "period", p.Key(), "error", err.Error())
				tally.Fail(errs.Wrapf(err, "order %s", id))
				return nil
			}
			tally.Succeed()
			return nil
		})
	}
	_ = g.Wait()
	res := tally.Result("closed")
	if res.Succeeded == 0 && res.Failed > 0 {
		slog.Error("billing period close failed for every order", "period", p.Key(), "failed", res.Failed)
		return res, nil
	}

	if err := uc.invoicePeriod(ctx, p, cutoff); err != nil {
		return res, err
	}
	if err := uc.summarize(ctx, p); err != nil {
		return res, err
	}

	slog.Info("billing period closed", "period", p.Key(), "summary", res.Summary, "failed", res.Failed)
	return res, nil
}

// closeOrder closes one order and writes its transaction in a single database transaction
func (uc *billingUseCaseImpl) closeOrder(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		o, err := tx.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return integrity(err, "order")
		}
		if o.IsClosed() {
			return nil
		}
		d, err := tx.Dinners().FindByID(ctx, o.DinnerEventID())
		if err != nil {
			return integrity(err, "dinner event")
		}
		inh, err := tx.Households().FindInhabitant(ctx, o.InhabitantID())
		if err != nil {
			return integrity(err, "inhabitant")
		}
		if _, err := tx.Households().FindByID(ctx, inh.HouseholdID()); err != nil {
			return integrity(err, "household")
		}

		var snap billing.UserSnapshot
		if err := copier.Copy(&snap, inh); err != nil {
			return errs.Wrap(err, "copy user snapshot")
		}
		snap.InhabitantID = inh.ID()
		handle := ""
		if inh.UserID() != nil {
			u, err := tx.Users().FindByID(ctx, *inh.UserID())
			if err != nil && !infra.IsKind(err, infra.KindNotFound) {
				return err
			}
			if u != nil {
				snap.Email = u.Email().Value()
				handle = u.Email().Handle()
			}
		}

		closed, err := o.Close(d.State(), uc.settings.ChargeReleased, now)
		if err != nil {
			return classify(err)
		}
		if !closed {
			return nil
		}

		t, err := billing.NewTransaction(o.Snapshot(), snap, handle, now)
		if err != nil {
			return classify(err)
		}
		if err := tx.Orders().Update(ctx, o); err != nil {
			return err
		}
		if err := tx.History().Append(ctx, o.PullHistory()...); err != nil {
			return err
		}
		_, err = tx.Billing().CreateTransaction(ctx, t)
		return err
	})
}

// invoicePeriod groups un-invoiced transactions by household and upserts one invoice each
func (uc *billingUseCaseImpl) invoicePeriod(ctx context.Context, p billing.Period, cutoff time.Time) error {
	var txs []*billing.Transaction
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		txs, err = tx.Billing().ListUninvoicedTransactions(ctx, cutoff)
		return err
	})
	if err != nil {
		return err
	}

	totals := billing.Fold(txs)
	var g errgroup.Group
	g.SetLimit(uc.settings.Workers)
	for _, hh := range totals.Households {
		g.Go(func() error {
			unlock := uc.invoices.Lock(p.Key() + "/" + hh.HouseholdID.String())
			defer unlock()
			return uc.upsertInvoice(ctx, p, hh)
		})
	}
	return g.Wait()
}

func (uc *billingUseCaseImpl) upsertInvoice(ctx context.Context, p billing.Period, hh billing.HouseholdTotal) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		household, err := tx.Households().FindByID(ctx, hh.HouseholdID)
		if err != nil {
			return integrity(err, "household")
		}

		draft := billing.NewInvoice(p, uc.settings.Location, uc.settings.PaymentDaysAfterCutoff, billing.InvoiceHousehold{
			ID:      household.ID(),
			PbsID:   household.PbsID(),
			Address: household.Address(),
		}, now)
		inv, err := tx.Billing().UpsertInvoice(ctx, draft)
		if err != nil {
			return err
		}
		if err := tx.Billing().LinkTransactions(ctx, inv.ID(), hh.TransactionIDs); err != nil {
			return err
		}
		linked, err := tx.Billing().ListTransactionsByInvoice(ctx, inv.ID())
		if err != nil {
			return err
		}
		inv.Recalculate(linked, now)
		return tx.Billing().UpdateInvoice(ctx, inv)
	})
}

// summarize recomputes the period summary from the period's invoiced transactions; the share token survives
func (uc *billingUseCaseImpl) summarize(ctx context.Context, p billing.Period) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		txs, err := tx.Billing().ListTransactionsByPeriod(ctx, p.Key())
		if err != nil {
			return err
		}
		totals := billing.Fold(txs)

		s, err := tx.Billing().FindSummaryByPeriod(ctx, p.Key())
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			s = billing.NewSummary(p, uc.settings.Location, uc.settings.PaymentDaysAfterCutoff, totals, now)
		case err != nil:
			return err
		default:
			s.Apply(totals, now)
		}
		if err := tx.Billing().UpsertSummary(ctx, s); err != nil {
			return err
		}

		invoices, err := tx.Billing().ListInvoicesByPeriod(ctx, p.Key())
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			if inv.SummaryID() != nil && *inv.SummaryID() == s.ID() {
				continue
			}
			inv.AttachSummary(s.ID())
			if err := tx.Billing().UpdateInvoice(ctx, inv); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *billingUseCaseImpl) ExportInvoices(ctx context.Context) (job.Result, error) {
	var pending []*billing.Invoice
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		pending, err = tx.Billing().ListUnexportedInvoices(ctx)
		return err
	})
	if err != nil {
		return job.Result{}, err
	}

	tally := job.NewTally(len(pending))
	for _, inv := range pending {
		if err := uc.exportInvoice(ctx, inv.ID()); err != nil {
			slog.Warn("invoice export failed", "invoice_id", inv.ID(), "error", err.Error())
			tally.Fail(errs.Wrapf(err, "invoice %s", inv.ID()))
			continue
		}
		tally.Succeed()
	}
	return tally.Result("exported"), nil
}

// exportInvoice publishes inside the row lock; a failed commit after publishing yields a redelivery, never a loss
func (uc *billingUseCaseImpl) exportInvoice(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inv, err := tx.Billing().FindInvoiceForUpdate(ctx, id)
		if err != nil {
			return notFound(err, errs.ErrInvoiceNotFound)
		}
		if inv.IsExported() {
			return nil
		}
		err = uc.publisher.Publish(ctx, shared.InvoiceExport{
			InvoiceID:     inv.ID(),
			PbsID:         inv.PbsID(),
			HouseholdID:   inv.HouseholdID(),
			BillingPeriod: inv.BillingPeriod(),
			Amount:        inv.Amount(),
			CutoffDate:    inv.CutoffDate(),
			PaymentDate:   inv.PaymentDate(),
			Address:       inv.Address(),
		})
		if err != nil {
			return errs.Wrap(err, "publish invoice")
		}
		inv.MarkExported(uc.clock.Now())
		return tx.Billing().UpdateInvoice(ctx, inv)
	})
}
