package repository

import (
	"context"
	"time"

	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, dinner_event_id, inhabitant_id, booked_by_user_id, ticket_price_id, price_at_booking,
	dinner_mode, state, is_guest_ticket, released_at, closed_at, season_id, created_at, updated_at`

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(db db.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID(), o.DinnerEventID(), o.InhabitantID(), pgconv.UUIDPtrToPgtype(o.BookedByUserID()),
		pgconv.UUIDPtrToPgtype(o.TicketPriceID()), o.PriceAtBooking(), string(o.DinnerMode()), string(o.State()),
		o.IsGuestTicket(), pgconv.TimePtrToPgtype(o.ReleasedAt()), pgconv.TimePtrToPgtype(o.ClosedAt()),
		pgconv.UUIDPtrToPgtype(o.SeasonID()), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

// Update writes the mutable columns. price_at_booking and ticket_price_id are never rewritten.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET inhabitant_id = $2, booked_by_user_id = $3, dinner_mode = $4, state = $5, is_guest_ticket = $6,
		    released_at = $7, closed_at = $8, updated_at = $9
		WHERE id = $1`,
		o.ID(), o.InhabitantID(), pgconv.UUIDPtrToPgtype(o.BookedByUserID()), string(o.DinnerMode()), string(o.State()),
		o.IsGuestTicket(), pgconv.TimePtrToPgtype(o.ReleasedAt()), pgconv.TimePtrToPgtype(o.ClosedAt()), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("order not found")
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return o, nil
}

func (r *OrderRepository) ListOpenByDinnerForUpdate(ctx context.Context, dinnerID uuid.UUID) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE dinner_event_id = $1 AND state IN ('BOOKED', 'RELEASED')
		ORDER BY created_at, id
		FOR UPDATE`, dinnerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open orders", err)
	}
	defer rows.Close()

	var out []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return out, nil
}

// ListBillableIDs returns orders on consumed dinners up to cutoff that have no transaction yet
func (r *OrderRepository) ListBillableIDs(ctx context.Context, cutoff time.Time, includeReleased bool) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id
		FROM orders o
		JOIN dinner_events d ON d.id = o.dinner_event_id
		LEFT JOIN transactions t ON t.order_id = o.id
		WHERE d.state = 'CONSUMED'
		  AND d.date <= $1
		  AND t.id IS NULL
		  AND (o.state = 'BOOKED' OR ($2 AND o.state = 'RELEASED'))
		ORDER BY d.date, o.created_at, o.id`, cutoff, includeReleased)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list billable orders", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan billable orders", err)
	}
	return ids, nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		id, dinnerID, inhabitantID  uuid.UUID
		bookedBy, priceID, seasonID pgtype.UUID
		price                       int64
		mode, state                 string
		guest                       bool
		releasedAt, closedAt        pgtype.Timestamptz
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(&id, &dinnerID, &inhabitantID, &bookedBy, &priceID, &price, &mode, &state, &guest,
		&releasedAt, &closedAt, &seasonID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return order.ReconstructOrder(id, dinnerID, inhabitantID,
		pgconv.UUIDPtrFromPgtype(bookedBy), pgconv.UUIDPtrFromPgtype(priceID), price,
		order.DinnerMode(mode), order.State(state), guest,
		pgconv.TimePtrFromPgtype(releasedAt), pgconv.TimePtrFromPgtype(closedAt),
		pgconv.UUIDPtrFromPgtype(seasonID), createdAt, updatedAt), nil
}
