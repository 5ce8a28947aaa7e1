package billing

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	id            uuid.UUID
	cutoffDate    time.Time
	paymentDate   time.Time
	billingPeriod string
	amount        int64
	householdID   *uuid.UUID
	summaryID     *uuid.UUID
	pbsID         *int64
	address       string
	exportedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type InvoiceHousehold struct {
	ID      uuid.UUID
	PbsID   *int64
	Address string
}

func NewInvoice(p Period, loc *time.Location, paymentDays int, hh InvoiceHousehold, now time.Time) *Invoice {
	householdID := hh.ID
	return &Invoice{
		id:            uuid.New(),
		cutoffDate:    p.Cutoff(loc),
		paymentDate:   p.PaymentDate(loc, paymentDays),
		billingPeriod: p.Key(),
		householdID:   &householdID,
		pbsID:         hh.PbsID,
		address:       hh.Address,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructInvoice(
	id uuid.UUID,
	cutoffDate, paymentDate time.Time,
	billingPeriod string,
	amount int64,
	householdID, summaryID *uuid.UUID,
	pbsID *int64,
	address string,
	exportedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Invoice {
	return &Invoice{
		id:            id,
		cutoffDate:    cutoffDate,
		paymentDate:   paymentDate,
		billingPeriod: billingPeriod,
		amount:        amount,
		householdID:   householdID,
		summaryID:     summaryID,
		pbsID:         pbsID,
		address:       address,
		exportedAt:    exportedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Recalculate sets the amount to the sum of the linked transactions
func (i *Invoice) Recalculate(linked []*Transaction, now time.Time) {
	var sum int64
	for _, tx := range linked {
		sum += tx.amount
	}
	i.amount = sum
	i.updatedAt = now
}

func (i *Invoice) AttachSummary(summaryID uuid.UUID) {
	i.summaryID = &summaryID
}

func (i *Invoice) MarkExported(now time.Time) {
	i.exportedAt = &now
	i.updatedAt = now
}

func (i *Invoice) IsExported() bool { return i.exportedAt != nil }

func (i *Invoice) ID() uuid.UUID          { return i.id }
func (i *Invoice) CutoffDate() time.Time  { return i.cutoffDate }
func (i *Invoice) PaymentDate() time.Time { return i.paymentDate }
func (i *Invoice) BillingPeriod() string  { return i.billingPeriod }
func (i *Invoice) Amount() int64          { return i.amount }
func (i *Invoice) HouseholdID() *uuid.UUID {
	return i.householdID
}
func (i *Invoice) SummaryID() *uuid.UUID  { return i.summaryID }
func (i *Invoice) PbsID() *int64          { return i.pbsID }
func (i *Invoice) Address() string        { return i.address }
func (i *Invoice) ExportedAt() *time.Time { return i.exportedAt }
func (i *Invoice) CreatedAt() time.Time   { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time   { return i.updatedAt }
