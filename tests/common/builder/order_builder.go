//go:build unit || e2e

package builder

import (
	"time"

	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID             uuid.UUID
	DinnerEventID  uuid.UUID
	InhabitantID   uuid.UUID
	HouseholdID    uuid.UUID
	SeasonID       *uuid.UUID
	BookedByUserID *uuid.UUID
	PriceAtBooking int64
	DinnerMode     order.DinnerMode
	State          order.State
	IsGuestTicket  bool
	CreatedAt      time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:             uuid.New(),
		DinnerEventID:  uuid.New(),
		InhabitantID:   uuid.New(),
		HouseholdID:    uuid.New(),
		PriceAtBooking: 200,
		DinnerMode:     order.ModeDineIn,
		State:          order.StateBooked,
		CreatedAt:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

func (o *OrderBuilder) BuildDomain() *order.Order {
	return order.ReconstructOrder(
		o.ID, o.DinnerEventID, o.InhabitantID,
		o.BookedByUserID, nil,
		o.PriceAtBooking, o.DinnerMode, o.State, o.IsGuestTicket,
		nil, nil, o.SeasonID,
		o.CreatedAt, o.CreatedAt,
	)
}

func (o *OrderBuilder) BuildView() *queries.OrderView {
	return &queries.OrderView{
		ID:             o.ID,
		DinnerEventID:  o.DinnerEventID,
		InhabitantID:   o.InhabitantID,
		HouseholdID:    o.HouseholdID,
		BookedByUserID: o.BookedByUserID,
		PriceAtBooking: o.PriceAtBooking,
		DinnerMode:     string(o.DinnerMode),
		State:          string(o.State),
		IsGuestTicket:  o.IsGuestTicket,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.CreatedAt,
	}
}
