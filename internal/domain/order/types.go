package order

import "errors"

type State string

const (
	StateBooked    State = "BOOKED"
	StateReleased  State = "RELEASED"
	StateCancelled State = "CANCELLED"
	StateClosed    State = "CLOSED"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateBooked, StateReleased, StateCancelled, StateClosed:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateCancelled || s == StateClosed
}

type DinnerMode string

const (
	ModeTakeaway   DinnerMode = "TAKEAWAY"
	ModeDineIn     DinnerMode = "DINEIN"
	ModeDineInLate DinnerMode = "DINEINLATE"
	ModeNone       DinnerMode = "NONE"
)

var (
	ErrInvalidState      = errors.New("invalid order state")
	ErrInvalidDinnerMode = errors.New("invalid dinner mode")
	ErrInvalidTicketType = errors.New("invalid ticket type")
)

func (m DinnerMode) String() string {
	return string(m)
}

func (m DinnerMode) IsValid() bool {
	switch m {
	case ModeTakeaway, ModeDineIn, ModeDineInLate, ModeNone:
		return true
	default:
		return false
	}
}

func NewDinnerMode(s string) (DinnerMode, error) {
	m := DinnerMode(s)
	if !m.IsValid() {
		return "", ErrInvalidDinnerMode
	}
	return m, nil
}

func NewState(s string) (State, error) {
	st := State(s)
	if !st.IsValid() {
		return "", ErrInvalidState
	}
	return st, nil
}

type TicketType string

const (
	TicketAdult TicketType = "ADULT"
	TicketChild TicketType = "CHILD"
	TicketBaby  TicketType = "BABY"
)

func (t TicketType) IsValid() bool {
	switch t {
	case TicketAdult, TicketChild, TicketBaby:
		return true
	default:
		return false
	}
}

func NewTicketType(s string) (TicketType, error) {
	t := TicketType(s)
	if !t.IsValid() {
		return "", ErrInvalidTicketType
	}
	return t, nil
}

type HistoryAction string

const (
	ActionUserBooked    HistoryAction = "USER_BOOKED"
	ActionUserCancelled HistoryAction = "USER_CANCELLED"
	ActionUserClaimed   HistoryAction = "USER_CLAIMED"
	ActionSystemCreated HistoryAction = "SYSTEM_CREATED"
	ActionSystemDeleted HistoryAction = "SYSTEM_DELETED"
	ActionSystemUpdated HistoryAction = "SYSTEM_UPDATED"
)

func (a HistoryAction) String() string {
	return string(a)
}
