package shared

import (
	"context"
	"time"

	"commons-dinner/internal/domain/job"

	"github.com/google/uuid"
)

// HouseholdRecord is a normalized membership upsert from the Heynabo adapter
type HouseholdRecord struct {
	HeynaboID   int64
	PbsID       *int64
	Name        string
	Address     string
	Inhabitants []InhabitantRecord
}

type InhabitantRecord struct {
	HeynaboID   int64
	Name        string
	LastName    string
	BirthDate   *time.Time
	MoveInDate  *time.Time
	MoveOutDate *time.Time
	Email       *string
	Role        string
}

// ExternalEvent is a Heynabo calendar event used to reconcile dinners
type ExternalEvent struct {
	HeynaboEventID int64
	Date           time.Time
	Title          string
}

type MembershipSource interface {
	FetchHouseholds(ctx context.Context) ([]HouseholdRecord, error)
	FetchEvents(ctx context.Context, from, to time.Time) ([]ExternalEvent, error)
}

// InvoiceExport is the message handed to the payment export adapter
type InvoiceExport struct {
	InvoiceID     uuid.UUID  `json:"invoiceId"`
	PbsID         *int64     `json:"pbsId"`
	HouseholdID   *uuid.UUID `json:"householdId"`
	BillingPeriod string     `json:"billingPeriod"`
	Amount        int64      `json:"amount"`
	CutoffDate    time.Time  `json:"cutoffDate"`
	PaymentDate   time.Time  `json:"paymentDate"`
	Address       string     `json:"address"`
}

type InvoicePublisher interface {
	Publish(ctx context.Context, inv InvoiceExport) error
}

// JobLocker guards a job type across instances
type JobLocker interface {
	Acquire(ctx context.Context, t job.Type) (release func(), err error)
}
