package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Summary struct {
	id             uuid.UUID
	billingPeriod  string
	shareToken     string
	totalAmount    int64
	householdCount int
	ticketCount    int
	cutoffDate     time.Time
	paymentDate    time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewSummary(p Period, loc *time.Location, paymentDays int, totals Totals, now time.Time) *Summary {
	s := &Summary{
		id:            uuid.New(),
		billingPeriod: p.Key(),
		shareToken:    newShareToken(),
		cutoffDate:    p.Cutoff(loc),
		paymentDate:   p.PaymentDate(loc, paymentDays),
		createdAt:     now,
	}
	s.Apply(totals, now)
	return s
}

func ReconstructSummary(
	id uuid.UUID,
	billingPeriod, shareToken string,
	totalAmount int64,
	householdCount, ticketCount int,
	cutoffDate, paymentDate time.Time,
	createdAt, updatedAt time.Time,
) *Summary {
	return &Summary{
		id:             id,
		billingPeriod:  billingPeriod,
		shareToken:     shareToken,
		totalAmount:    totalAmount,
		householdCount: householdCount,
		ticketCount:    ticketCount,
		cutoffDate:     cutoffDate,
		paymentDate:    paymentDate,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Apply overwrites the derived totals; id and share token are kept
func (s *Summary) Apply(t Totals, now time.Time) {
	s.totalAmount = t.TotalAmount
	s.householdCount = t.HouseholdCount
	s.ticketCount = t.TicketCount
	s.updatedAt = now
}

func (s *Summary) ID() uuid.UUID          { return s.id }
func (s *Summary) BillingPeriod() string  { return s.billingPeriod }
func (s *Summary) ShareToken() string     { return s.shareToken }
func (s *Summary) TotalAmount() int64     { return s.totalAmount }
func (s *Summary) HouseholdCount() int    { return s.householdCount }
func (s *Summary) TicketCount() int       { return s.ticketCount }
func (s *Summary) CutoffDate() time.Time  { return s.cutoffDate }
func (s *Summary) PaymentDate() time.Time { return s.paymentDate }
func (s *Summary) CreatedAt() time.Time   { return s.createdAt }
func (s *Summary) UpdatedAt() time.Time   { return s.updatedAt }

func newShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
