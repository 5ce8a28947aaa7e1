package order

import (
	"errors"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/season"

	"github.com/google/uuid"
)

var (
	ErrTooLateToCancel     = errors.New("too late to cancel: cancellation cutoff has passed")
	ErrTooLateToChangeMode = errors.New("too late to change dining mode: edit window has closed")
	ErrOrderClosed         = errors.New("order is closed")
	ErrOrderTerminal       = errors.New("order is cancelled")
	ErrInvalidTransition   = errors.New("invalid order state transition")
	ErrDinnerNotConsumed   = errors.New("dinner has not been consumed")
	ErrSameInhabitant      = errors.New("ticket is already held by this inhabitant")
)

type Order struct {
	id             uuid.UUID
	dinnerEventID  uuid.UUID
	inhabitantID   uuid.UUID
	bookedByUserID *uuid.UUID
	ticketPriceID  *uuid.UUID
	priceAtBooking int64
	dinnerMode     DinnerMode
	state          State
	isGuestTicket  bool
	releasedAt     *time.Time
	closedAt       *time.Time
	seasonID       *uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time

	pending []HistoryEntry
}

type BookingRequest struct {
	Dinner       *dinner.Dinner
	InhabitantID uuid.UUID
	BirthDate    *time.Time
	Prices       []TicketPrice
	Mode         DinnerMode
	IsGuest      bool
	Actor        Actor
}

// Book creates a BOOKED order with the price snapshot taken now
func Book(req BookingRequest, now time.Time) (*Order, error) {
	if err := req.Dinner.EnsureBookable(); err != nil {
		return nil, err
	}
	mode := req.Mode
	if mode == "" {
		mode = ModeDineIn
	}
	if !mode.IsValid() {
		return nil, ErrInvalidDinnerMode
	}

	price, err := SelectTicketPrice(req.Prices, req.BirthDate, req.Dinner.Date(), req.IsGuest)
	if err != nil {
		return nil, err
	}
	priceID := price.ID

	o := &Order{
		id:             uuid.New(),
		dinnerEventID:  req.Dinner.ID(),
		inhabitantID:   req.InhabitantID,
		bookedByUserID: req.Actor.UserID,
		ticketPriceID:  &priceID,
		priceAtBooking: price.Price,
		dinnerMode:     mode,
		state:          StateBooked,
		isGuestTicket:  req.IsGuest,
		seasonID:       req.Dinner.SeasonID(),
		createdAt:      now,
		updatedAt:      now,
	}
	o.record(req.Actor.pick(ActionUserBooked, ActionSystemCreated), req.Actor, AuditData{}, now)
	return o, nil
}

func ReconstructOrder(
	id, dinnerEventID, inhabitantID uuid.UUID,
	bookedByUserID, ticketPriceID *uuid.UUID,
	priceAtBooking int64,
	dinnerMode DinnerMode,
	state State,
	isGuestTicket bool,
	releasedAt, closedAt *time.Time,
	seasonID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		dinnerEventID:  dinnerEventID,
		inhabitantID:   inhabitantID,
		bookedByUserID: bookedByUserID,
		ticketPriceID:  ticketPriceID,
		priceAtBooking: priceAtBooking,
		dinnerMode:     dinnerMode,
		state:          state,
		isGuestTicket:  isGuestTicket,
		releasedAt:     releasedAt,
		closedAt:       closedAt,
		seasonID:       seasonID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (o *Order) guardOpen() error {
	switch o.state {
	case StateClosed:
		return ErrOrderClosed
	case StateCancelled:
		return ErrOrderTerminal
	}
	return nil
}

// Release gives up a BOOKED ticket while the season's cancellation window is open
func (o *Order) Release(s *season.Season, dinnerDate time.Time, actor Actor, now time.Time) error {
	if err := o.guardOpen(); err != nil {
		return err
	}
	if o.state != StateBooked {
		return ErrInvalidTransition
	}
	if !s.CanReleaseTicket(now, dinnerDate) {
		return ErrTooLateToCancel
	}

	from := o.state
	o.state = StateReleased
	o.releasedAt = &now
	o.updatedAt = now
	o.record(actor.pick(ActionUserCancelled, ActionSystemUpdated), actor, AuditData{From: from}, now)
	return nil
}

// Cancel is the administrative or cascade path; no time window applies
func (o *Order) Cancel(actor Actor, reason string, now time.Time) error {
	if err := o.guardOpen(); err != nil {
		return err
	}

	from := o.state
	o.state = StateCancelled
	o.updatedAt = now
	o.record(actor.pick(ActionUserCancelled, ActionSystemDeleted), actor, AuditData{From: from, Reason: reason}, now)
	return nil
}

func (o *Order) ChangeDiningMode(s *season.Season, dinnerDate time.Time, mode DinnerMode, actor Actor, now time.Time) error {
	if err := o.guardOpen(); err != nil {
		return err
	}
	if o.state != StateBooked {
		return ErrInvalidTransition
	}
	if !mode.IsValid() {
		return ErrInvalidDinnerMode
	}
	if !s.CanEditDiningMode(now, dinnerDate) {
		return ErrTooLateToChangeMode
	}

	previous := o.dinnerMode
	o.dinnerMode = mode
	o.updatedAt = now
	o.record(actor.pick(ActionUserClaimed, ActionSystemUpdated), actor, AuditData{From: o.state, PreviousMode: previous}, now)
	return nil
}

// Claim hands a RELEASED ticket to another inhabitant before the cancellation cutoff.
// The price snapshot travels with the ticket.
func (o *Order) Claim(s *season.Season, dinnerDate time.Time, claimer uuid.UUID, actor Actor, now time.Time) error {
	if err := o.guardOpen(); err != nil {
		return err
	}
	if o.state != StateReleased {
		return ErrInvalidTransition
	}
	if claimer == o.inhabitantID {
		return ErrSameInhabitant
	}
	if !s.CanReleaseTicket(now, dinnerDate) {
		return ErrTooLateToCancel
	}

	from := o.state
	previousHolder := o.inhabitantID
	o.inhabitantID = claimer
	o.bookedByUserID = actor.UserID
	o.state = StateBooked
	o.releasedAt = nil
	o.isGuestTicket = false
	o.updatedAt = now
	o.record(ActionUserClaimed, actor, AuditData{From: from, InhabitantID: &previousHolder}, now)
	return nil
}

// Close marks the order billed. It reports false when the order was already closed.
func (o *Order) Close(dinnerState dinner.State, chargeReleased bool, now time.Time) (bool, error) {
	switch o.state {
	case StateClosed:
		return false, nil
	case StateCancelled:
		return false, ErrOrderTerminal
	case StateReleased:
		if !chargeReleased {
			return false, ErrInvalidTransition
		}
	}
	if dinnerState != dinner.StateConsumed {
		return false, ErrDinnerNotConsumed
	}

	from := o.state
	o.state = StateClosed
	o.closedAt = &now
	o.updatedAt = now
	o.record(ActionSystemUpdated, SystemActor(), AuditData{From: from, Reason: "billing close"}, now)
	return true, nil
}

func (o *Order) IsClosed() bool { return o.state == StateClosed }

func (o *Order) ID() uuid.UUID              { return o.id }
func (o *Order) DinnerEventID() uuid.UUID   { return o.dinnerEventID }
func (o *Order) InhabitantID() uuid.UUID    { return o.inhabitantID }
func (o *Order) BookedByUserID() *uuid.UUID { return o.bookedByUserID }
func (o *Order) TicketPriceID() *uuid.UUID  { return o.ticketPriceID }
func (o *Order) PriceAtBooking() int64      { return o.priceAtBooking }
func (o *Order) DinnerMode() DinnerMode     { return o.dinnerMode }
func (o *Order) State() State               { return o.state }
func (o *Order) IsGuestTicket() bool        { return o.isGuestTicket }
func (o *Order) ReleasedAt() *time.Time     { return o.releasedAt }
func (o *Order) ClosedAt() *time.Time       { return o.closedAt }
func (o *Order) SeasonID() *uuid.UUID       { return o.seasonID }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// Snapshot is the point-in-time copy stored on the billing transaction
type Snapshot struct {
	ID             uuid.UUID  `json:"id"`
	DinnerEventID  uuid.UUID  `json:"dinnerEventId"`
	InhabitantID   uuid.UUID  `json:"inhabitantId"`
	BookedByUserID *uuid.UUID `json:"bookedByUserId,omitempty"`
	TicketPriceID  *uuid.UUID `json:"ticketPriceId,omitempty"`
	PriceAtBooking int64      `json:"priceAtBooking"`
	DinnerMode     DinnerMode `json:"dinnerMode"`
	State          State      `json:"state"`
	IsGuestTicket  bool       `json:"isGuestTicket"`
	ReleasedAt     *time.Time `json:"releasedAt,omitempty"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:             o.id,
		DinnerEventID:  o.dinnerEventID,
		InhabitantID:   o.inhabitantID,
		BookedByUserID: o.bookedByUserID,
		TicketPriceID:  o.ticketPriceID,
		PriceAtBooking: o.priceAtBooking,
		DinnerMode:     o.dinnerMode,
		State:          o.state,
		IsGuestTicket:  o.isGuestTicket,
		ReleasedAt:     o.releasedAt,
		ClosedAt:       o.closedAt,
		CreatedAt:      o.createdAt,
	}
}
