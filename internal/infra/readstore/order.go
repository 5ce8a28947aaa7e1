package readstore

import (
	"context"
	"time"

	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderViewSelect = `
	SELECT o.id, o.dinner_event_id, d.date, o.inhabitant_id, i.name || CASE WHEN i.last_name = '' THEN '' ELSE ' ' || i.last_name END,
	       i.household_id, o.booked_by_user_id, tp.ticket_type, o.price_at_booking, o.dinner_mode, o.state,
	       o.is_guest_ticket, o.released_at, o.closed_at, o.created_at, o.updated_at
	FROM orders o
	JOIN dinner_events d ON d.id = o.dinner_event_id
	JOIN inhabitants i ON i.id = o.inhabitant_id
	LEFT JOIN ticket_prices tp ON tp.id = o.ticket_price_id`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	v, err := scanOrderView(r.db.QueryRow(ctx, orderViewSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order view", err)
	}
	return v, nil
}

func (r *OrderReadStore) ListByDinner(ctx context.Context, dinnerID uuid.UUID) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, orderViewSelect+` WHERE o.dinner_event_id = $1 ORDER BY o.created_at, o.id`, dinnerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by dinner", err)
	}
	defer rows.Close()

	out := []*queries.OrderView{}
	for rows.Next() {
		v, err := scanOrderView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order views", err)
	}
	return out, nil
}

func (r *OrderReadStore) ListHistory(ctx context.Context, orderID uuid.UUID) ([]*queries.OrderHistoryView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, action, performed_by_user_id, audit_data, inhabitant_id, dinner_event_id, season_id, created_at
		FROM order_history WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order history", err)
	}
	defer rows.Close()

	out := []*queries.OrderHistoryView{}
	for rows.Next() {
		var (
			v                                         queries.OrderHistoryView
			orderRef, performedBy, inhabitant, dinner pgtype.UUID
			seasonRef                                 pgtype.UUID
			audit                                     []byte
		)
		if err := rows.Scan(&v.ID, &orderRef, &v.Action, &performedBy, &audit, &inhabitant, &dinner, &seasonRef, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order history", err)
		}
		v.OrderID = pgconv.UUIDPtrFromPgtype(orderRef)
		v.PerformedByUserID = pgconv.UUIDPtrFromPgtype(performedBy)
		v.InhabitantID = pgconv.UUIDPtrFromPgtype(inhabitant)
		v.DinnerEventID = pgconv.UUIDPtrFromPgtype(dinner)
		v.SeasonID = pgconv.UUIDPtrFromPgtype(seasonRef)
		v.AuditData = audit
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order history", err)
	}
	return out, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var (
		v                    queries.OrderView
		bookedBy             pgtype.UUID
		ticketType           pgtype.Text
		releasedAt, closedAt pgtype.Timestamptz
		dinnerDate           time.Time
	)
	if err := row.Scan(&v.ID, &v.DinnerEventID, &dinnerDate, &v.InhabitantID, &v.InhabitantName, &v.HouseholdID,
		&bookedBy, &ticketType, &v.PriceAtBooking, &v.DinnerMode, &v.State, &v.IsGuestTicket,
		&releasedAt, &closedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.DinnerDate = dinnerDate
	v.BookedByUserID = pgconv.UUIDPtrFromPgtype(bookedBy)
	v.TicketType = pgconv.StringPtrFromPgtype(ticketType)
	v.ReleasedAt = pgconv.TimePtrFromPgtype(releasedAt)
	v.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
	return &v, nil
}
