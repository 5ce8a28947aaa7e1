package billing

import (
	"encoding/json"
	"errors"
	"time"

	"commons-dinner/internal/domain/order"

	"github.com/google/uuid"
)

var ErrNegativeAmount = errors.New("transaction amount cannot be negative")

// UserSnapshot is the billed identity captured at close time
type UserSnapshot struct {
	InhabitantID uuid.UUID  `json:"inhabitantId"`
	Name         string     `json:"name"`
	LastName     string     `json:"lastName"`
	HouseholdID  uuid.UUID  `json:"householdId"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	Email        string     `json:"email,omitempty"`
	HeynaboID    *int64     `json:"heynaboId,omitempty"`
}

// Transaction is created once per closed order and never changed
type Transaction struct {
	id              uuid.UUID
	orderID         *uuid.UUID
	householdID     uuid.UUID
	orderSnapshot   json.RawMessage
	userSnapshot    json.RawMessage
	amount          int64
	userEmailHandle string
	invoiceID       *uuid.UUID
	createdAt       time.Time
}

func NewTransaction(snap order.Snapshot, user UserSnapshot, emailHandle string, now time.Time) (*Transaction, error) {
	if snap.PriceAtBooking < 0 {
		return nil, ErrNegativeAmount
	}
	orderJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	orderID := snap.ID
	return &Transaction{
		id:              uuid.New(),
		orderID:         &orderID,
		householdID:     user.HouseholdID,
		orderSnapshot:   orderJSON,
		userSnapshot:    userJSON,
		amount:          snap.PriceAtBooking,
		userEmailHandle: emailHandle,
		createdAt:       now,
	}, nil
}

func ReconstructTransaction(
	id uuid.UUID,
	orderID *uuid.UUID,
	householdID uuid.UUID,
	orderSnapshot, userSnapshot json.RawMessage,
	amount int64,
	userEmailHandle string,
	invoiceID *uuid.UUID,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:              id,
		orderID:         orderID,
		householdID:     householdID,
		orderSnapshot:   orderSnapshot,
		userSnapshot:    userSnapshot,
		amount:          amount,
		userEmailHandle: userEmailHandle,
		invoiceID:       invoiceID,
		createdAt:       createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID                  { return t.id }
func (t *Transaction) OrderID() *uuid.UUID            { return t.orderID }
func (t *Transaction) HouseholdID() uuid.UUID         { return t.householdID }
func (t *Transaction) OrderSnapshot() json.RawMessage { return t.orderSnapshot }
func (t *Transaction) UserSnapshot() json.RawMessage  { return t.userSnapshot }
func (t *Transaction) Amount() int64                  { return t.amount }
func (t *Transaction) UserEmailHandle() string        { return t.userEmailHandle }
func (t *Transaction) InvoiceID() *uuid.UUID          { return t.invoiceID }
func (t *Transaction) CreatedAt() time.Time           { return t.createdAt }
