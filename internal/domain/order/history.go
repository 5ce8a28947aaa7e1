package order

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one append-only audit row. The denormalized ids are for queries only.
type HistoryEntry struct {
	ID                uuid.UUID
	OrderID           *uuid.UUID
	Action            HistoryAction
	PerformedByUserID *uuid.UUID
	AuditData         json.RawMessage
	InhabitantID      *uuid.UUID
	DinnerEventID     *uuid.UUID
	SeasonID          *uuid.UUID
	CreatedAt         time.Time
}

type AuditData struct {
	From         State      `json:"from,omitempty"`
	To           State      `json:"to"`
	DinnerMode   DinnerMode `json:"dinnerMode"`
	PreviousMode DinnerMode `json:"previousMode,omitempty"`
	Price        int64      `json:"priceAtBooking"`
	InhabitantID *uuid.UUID `json:"inhabitantId,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

func (o *Order) record(action HistoryAction, actor Actor, data AuditData, now time.Time) {
	data.To = o.state
	data.DinnerMode = o.dinnerMode
	data.Price = o.priceAtBooking
	// AuditData only holds plain values
	raw, _ := json.Marshal(data)

	orderID := o.id
	inhabitantID := o.inhabitantID
	dinnerID := o.dinnerEventID
	o.pending = append(o.pending, HistoryEntry{
		ID:                uuid.New(),
		OrderID:           &orderID,
		Action:            action,
		PerformedByUserID: actor.UserID,
		AuditData:         raw,
		InhabitantID:      &inhabitantID,
		DinnerEventID:     &dinnerID,
		SeasonID:          o.seasonID,
		CreatedAt:         now,
	})
}

// PullHistory hands over the entries produced since the last call
func (o *Order) PullHistory() []HistoryEntry {
	out := o.pending
	o.pending = nil
	return out
}
