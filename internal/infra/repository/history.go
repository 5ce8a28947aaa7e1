package repository

import (
	"context"

	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"
)

// OrderHistoryRepository only inserts; audit rows are never updated or deleted
type OrderHistoryRepository struct {
	db db.DBTX
}

func NewOrderHistoryRepository(db db.DBTX) *OrderHistoryRepository {
	return &OrderHistoryRepository{db: db}
}

func (r *OrderHistoryRepository) Append(ctx context.Context, entries ...order.HistoryEntry) error {
	for _, e := range entries {
		audit := e.AuditData
		if len(audit) == 0 {
			audit = []byte(`{}`)
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO order_history
			    (id, order_id, action, performed_by_user_id, audit_data, inhabitant_id, dinner_event_id, season_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, pgconv.UUIDPtrToPgtype(e.OrderID), string(e.Action), pgconv.UUIDPtrToPgtype(e.PerformedByUserID),
			audit, pgconv.UUIDPtrToPgtype(e.InhabitantID), pgconv.UUIDPtrToPgtype(e.DinnerEventID),
			pgconv.UUIDPtrToPgtype(e.SeasonID), e.CreatedAt,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to append order history", err)
		}
	}
	return nil
}
