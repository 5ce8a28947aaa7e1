package readstore

import (
	"context"

	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	summaryViewSelect = `
	SELECT id, billing_period, share_token, total_amount, household_count, ticket_count, cutoff_date, payment_date
	FROM billing_period_summaries`
	invoiceViewSelect = `
	SELECT i.id, i.billing_period, i.household_id, COALESCE(h.name, ''), i.pbs_id, i.address, i.amount,
	       i.cutoff_date, i.payment_date, i.exported_at
	FROM invoices i
	LEFT JOIN households h ON h.id = i.household_id`
)

type BillingReadStore struct {
	db db.DBTX
}

func NewBillingReadStore(db db.DBTX) *BillingReadStore {
	return &BillingReadStore{db: db}
}

func (r *BillingReadStore) FindSummaryByPeriod(ctx context.Context, period string) (*queries.BillingSummaryView, error) {
	return r.findSummary(ctx, summaryViewSelect+` WHERE billing_period = $1`, period)
}

func (r *BillingReadStore) FindSummaryByToken(ctx context.Context, token string) (*queries.BillingSummaryView, error) {
	return r.findSummary(ctx, summaryViewSelect+` WHERE share_token = $1`, token)
}

func (r *BillingReadStore) findSummary(ctx context.Context, query, arg string) (*queries.BillingSummaryView, error) {
	var v queries.BillingSummaryView
	err := r.db.QueryRow(ctx, query, arg).Scan(&v.ID, &v.BillingPeriod, &v.ShareToken, &v.TotalAmount,
		&v.HouseholdCount, &v.TicketCount, &v.CutoffDate, &v.PaymentDate)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("billing summary not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find billing summary", err)
	}
	return &v, nil
}

func (r *BillingReadStore) ListInvoicesByPeriod(ctx context.Context, period string) ([]*queries.InvoiceView, error) {
	rows, err := r.db.Query(ctx, invoiceViewSelect+` WHERE i.billing_period = $1 ORDER BY h.name, i.id`, period)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list invoices", err)
	}
	defer rows.Close()

	out := []*queries.InvoiceView{}
	for rows.Next() {
		v, err := scanInvoiceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan invoice", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invoices", err)
	}
	return out, nil
}

func (r *BillingReadStore) FindInvoice(ctx context.Context, id uuid.UUID) (*queries.InvoiceView, error) {
	v, err := scanInvoiceView(r.db.QueryRow(ctx, invoiceViewSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice", err)
	}
	return v, nil
}

func (r *BillingReadStore) ListTransactionsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*queries.TransactionView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, amount, user_email_handle, order_snapshot, user_snapshot, created_at
		FROM transactions WHERE invoice_id = $1 ORDER BY created_at, id`, invoiceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	defer rows.Close()

	out := []*queries.TransactionView{}
	for rows.Next() {
		var (
			v                   queries.TransactionView
			orderID             pgtype.UUID
			orderSnap, userSnap []byte
		)
		if err := rows.Scan(&v.ID, &orderID, &v.Amount, &v.UserEmailHandle, &orderSnap, &userSnap, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction", err)
		}
		v.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
		v.OrderSnapshot = orderSnap
		v.UserSnapshot = userSnap
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transactions", err)
	}
	return out, nil
}

func scanInvoiceView(row pgx.Row) (*queries.InvoiceView, error) {
	var (
		v           queries.InvoiceView
		householdID pgtype.UUID
		pbsID       pgtype.Int8
		exportedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.BillingPeriod, &householdID, &v.HouseholdName, &pbsID, &v.Address, &v.Amount,
		&v.CutoffDate, &v.PaymentDate, &exportedAt); err != nil {
		return nil, err
	}
	v.HouseholdID = pgconv.UUIDPtrFromPgtype(householdID)
	v.PbsID = pgconv.Int8PtrFromPgtype(pbsID)
	v.ExportedAt = pgconv.TimePtrFromPgtype(exportedAt)
	return &v, nil
}
