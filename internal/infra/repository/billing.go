package repository

import (
	"context"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	transactionColumns = `t.id, t.order_id, t.household_id, t.order_snapshot, t.user_snapshot, t.amount,
	t.user_email_handle, t.invoice_id, t.created_at`
	invoiceColumns = `id, cutoff_date, payment_date, billing_period, amount, household_id, billing_period_summary_id,
	pbs_id, address, exported_at, created_at, updated_at`
	summaryColumns = `id, billing_period, share_token, total_amount, household_count, ticket_count, cutoff_date,
	payment_date, created_at, updated_at`
)

type BillingRepository struct {
	db db.DBTX
}

func NewBillingRepository(db db.DBTX) *BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) CreateTransaction(ctx context.Context, t *billing.Transaction) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO transactions
		    (id, order_id, household_id, order_snapshot, user_snapshot, amount, user_email_handle, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (order_id) DO NOTHING`,
		t.ID(), pgconv.UUIDPtrToPgtype(t.OrderID()), t.HouseholdID(), []byte(t.OrderSnapshot()), []byte(t.UserSnapshot()),
		t.Amount(), t.UserEmailHandle(), pgconv.UUIDPtrToPgtype(t.InvoiceID()), t.CreatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to create transaction", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListUninvoicedTransactions returns transactions for dinners up to cutoff not yet on an invoice.
// Transactions whose order was removed fall back to their creation time.
func (r *BillingRepository) ListUninvoicedTransactions(ctx context.Context, cutoff time.Time) ([]*billing.Transaction, error) {
	return r.listTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN orders o ON o.id = t.order_id
		LEFT JOIN dinner_events d ON d.id = o.dinner_event_id
		WHERE t.invoice_id IS NULL AND COALESCE(d.date, t.created_at) <= $1
		ORDER BY t.household_id, t.created_at, t.id`, cutoff)
}

func (r *BillingRepository) ListTransactionsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*billing.Transaction, error) {
	return r.listTransactions(ctx, `
		SELECT `+transactionColumns+` FROM transactions t
		WHERE t.invoice_id = $1 ORDER BY t.created_at, t.id`, invoiceID)
}

func (r *BillingRepository) ListTransactionsByPeriod(ctx context.Context, period string) ([]*billing.Transaction, error) {
	return r.listTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN invoices i ON i.id = t.invoice_id
		WHERE i.billing_period = $1
		ORDER BY t.household_id, t.created_at, t.id`, period)
}

func (r *BillingRepository) listTransactions(ctx context.Context, query string, args ...any) ([]*billing.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	defer rows.Close()

	var out []*billing.Transaction
	for rows.Next() {
		var (
			id, householdID     uuid.UUID
			orderID, invoiceID  pgtype.UUID
			orderSnap, userSnap []byte
			amount              int64
			handle              string
			createdAt           time.Time
		)
		if err := rows.Scan(&id, &orderID, &householdID, &orderSnap, &userSnap, &amount, &handle, &invoiceID, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction", err)
		}
		out = append(out, billing.ReconstructTransaction(id, pgconv.UUIDPtrFromPgtype(orderID), householdID,
			orderSnap, userSnap, amount, handle, pgconv.UUIDPtrFromPgtype(invoiceID), createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transactions", err)
	}
	return out, nil
}

// UpsertInvoice relies on UNIQUE (billing_period, household_id); an existing row is returned unchanged
func (r *BillingRepository) UpsertInvoice(ctx context.Context, inv *billing.Invoice) (*billing.Invoice, error) {
	stored, err := scanInvoice(r.db.QueryRow(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (billing_period, household_id) DO UPDATE SET updated_at = invoices.updated_at
		RETURNING `+invoiceColumns,
		inv.ID(), inv.CutoffDate(), inv.PaymentDate(), inv.BillingPeriod(), inv.Amount(),
		pgconv.UUIDPtrToPgtype(inv.HouseholdID()), pgconv.UUIDPtrToPgtype(inv.SummaryID()),
		pgconv.Int8PtrToPgtype(inv.PbsID()), inv.Address(), pgconv.TimePtrToPgtype(inv.ExportedAt()),
		inv.CreatedAt(), inv.UpdatedAt(),
	))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert invoice", err)
	}
	return stored, nil
}

func (r *BillingRepository) LinkTransactions(ctx context.Context, invoiceID uuid.UUID, txIDs []uuid.UUID) error {
	if len(txIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		UPDATE transactions SET invoice_id = $1
		WHERE id = ANY($2::uuid[]) AND invoice_id IS NULL`, invoiceID, txIDs)
	if err != nil {
		return infra.WrapRepoErr("failed to link transactions", err)
	}
	return nil
}

func (r *BillingRepository) UpdateInvoice(ctx context.Context, inv *billing.Invoice) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET amount = $2, billing_period_summary_id = $3, exported_at = $4, updated_at = $5
		WHERE id = $1`,
		inv.ID(), inv.Amount(), pgconv.UUIDPtrToPgtype(inv.SummaryID()), pgconv.TimePtrToPgtype(inv.ExportedAt()),
		inv.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("invoice not found")
	}
	return nil
}

func (r *BillingRepository) ListInvoicesByPeriod(ctx context.Context, period string) ([]*billing.Invoice, error) {
	return r.listInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE billing_period = $1 ORDER BY household_id`, period)
}

func (r *BillingRepository) ListUnexportedInvoices(ctx context.Context) ([]*billing.Invoice, error) {
	return r.listInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE exported_at IS NULL ORDER BY billing_period, household_id`)
}

func (r *BillingRepository) FindInvoiceForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice", err)
	}
	return inv, nil
}

func (r *BillingRepository) listInvoices(ctx context.Context, query string, args ...any) ([]*billing.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list invoices", err)
	}
	defer rows.Close()

	var out []*billing.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan invoice", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invoices", err)
	}
	return out, nil
}

func (r *BillingRepository) FindSummaryByPeriod(ctx context.Context, period string) (*billing.Summary, error) {
	s, err := scanSummary(r.db.QueryRow(ctx, `SELECT `+summaryColumns+` FROM billing_period_summaries WHERE billing_period = $1`, period))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("billing summary not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find billing summary", err)
	}
	return s, nil
}

// UpsertSummary overwrites the totals; id and share_token of an existing row are kept
func (r *BillingRepository) UpsertSummary(ctx context.Context, s *billing.Summary) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO billing_period_summaries (`+summaryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (billing_period) DO UPDATE
		SET total_amount = EXCLUDED.total_amount, household_count = EXCLUDED.household_count,
		    ticket_count = EXCLUDED.ticket_count, updated_at = EXCLUDED.updated_at`,
		s.ID(), s.BillingPeriod(), s.ShareToken(), s.TotalAmount(), s.HouseholdCount(), s.TicketCount(),
		s.CutoffDate(), s.PaymentDate(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert billing summary", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*billing.Invoice, error) {
	var (
		id                     uuid.UUID
		cutoff, payment        time.Time
		period, address        string
		amount                 int64
		householdID, summaryID pgtype.UUID
		pbsID                  pgtype.Int8
		exportedAt             pgtype.Timestamptz
		createdAt, updatedAt   time.Time
	)
	if err := row.Scan(&id, &cutoff, &payment, &period, &amount, &householdID, &summaryID, &pbsID, &address,
		&exportedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return billing.ReconstructInvoice(id, cutoff, payment, period, amount,
		pgconv.UUIDPtrFromPgtype(householdID), pgconv.UUIDPtrFromPgtype(summaryID), pgconv.Int8PtrFromPgtype(pbsID),
		address, pgconv.TimePtrFromPgtype(exportedAt), createdAt, updatedAt), nil
}

func scanSummary(row pgx.Row) (*billing.Summary, error) {
	var (
		id                   uuid.UUID
		period, token        string
		total                int64
		households, tickets  int
		cutoff, payment      time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &period, &token, &total, &households, &tickets, &cutoff, &payment, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return billing.ReconstructSummary(id, period, token, total, households, tickets, cutoff, payment, createdAt, updatedAt), nil
}
