package queries

import (
	"context"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/errs"

	"github.com/google/uuid"
)

type BillingQueries interface {
	Period(ctx context.Context, period string) (*BillingPeriodView, error)
	Invoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
	// SummaryByToken is the public, unauthenticated read of a period summary
	SummaryByToken(ctx context.Context, token string) (*BillingSummaryView, error)
}

type BillingReadStore interface {
	FindSummaryByPeriod(ctx context.Context, period string) (*BillingSummaryView, error)
	FindSummaryByToken(ctx context.Context, token string) (*BillingSummaryView, error)
	ListInvoicesByPeriod(ctx context.Context, period string) ([]*InvoiceView, error)
	FindInvoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
	ListTransactionsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*TransactionView, error)
}

type billingQueriesImpl struct {
	store BillingReadStore
}

func NewBillingQueries(store BillingReadStore) BillingQueries {
	return &billingQueriesImpl{store: store}
}

func (q *billingQueriesImpl) Period(ctx context.Context, period string) (*BillingPeriodView, error) {
	p, err := billing.ParsePeriod(period)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	summary, err := q.store.FindSummaryByPeriod(ctx, p.Key())
	if err != nil {
		return nil, notFoundAs(err, errs.ErrPeriodNotFound)
	}
	invoices, err := q.store.ListInvoicesByPeriod(ctx, p.Key())
	if err != nil {
		return nil, err
	}
	return &BillingPeriodView{Summary: summary, Invoices: invoices}, nil
}

func (q *billingQueriesImpl) Invoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	inv, err := q.store.FindInvoice(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, errs.ErrInvoiceNotFound)
	}
	txs, err := q.store.ListTransactionsByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Transactions = txs
	return inv, nil
}

func (q *billingQueriesImpl) SummaryByToken(ctx context.Context, token string) (*BillingSummaryView, error) {
	if token == "" {
		return nil, errs.ErrPeriodNotFound
	}
	s, err := q.store.FindSummaryByToken(ctx, token)
	if err != nil {
		return nil, notFoundAs(err, errs.ErrPeriodNotFound)
	}
	s.ShareToken = ""
	return s, nil
}

func notFoundAs(err, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}
