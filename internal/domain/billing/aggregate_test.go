//go:build unit

package billing_test

import (
	"testing"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(t *testing.T, household uuid.UUID, amount int64) *billing.Transaction {
	t.Helper()
	snap := order.Snapshot{ID: uuid.New(), PriceAtBooking: amount, State: order.StateClosed}
	out, err := billing.NewTransaction(snap, billing.UserSnapshot{InhabitantID: uuid.New(), HouseholdID: household}, "anna", time.Now())
	require.NoError(t, err)
	return out
}

func TestFold_May2024Scenario(t *testing.T) {
	h1, h2, h3 := uuid.New(), uuid.New(), uuid.New()
	txs := []*billing.Transaction{
		tx(t, h1, 200), tx(t, h1, 200), tx(t, h1, 100),
		tx(t, h2, 200), tx(t, h2, 300),
		tx(t, h3, 200), tx(t, h3, 200),
	}

	totals := billing.Fold(txs)

	assert.Equal(t, int64(1400), totals.TotalAmount)
	assert.Equal(t, 3, totals.HouseholdCount)
	assert.Equal(t, 7, totals.TicketCount)

	byHousehold := map[uuid.UUID]int64{}
	var sum int64
	for _, h := range totals.Households {
		byHousehold[h.HouseholdID] = h.Amount
		sum += h.Amount
	}
	assert.Equal(t, map[uuid.UUID]int64{h1: 500, h2: 500, h3: 400}, byHousehold)
	assert.Equal(t, totals.TotalAmount, sum)
}

func TestFold_IsIdempotent(t *testing.T) {
	h := uuid.New()
	a := tx(t, h, 150)
	txs := []*billing.Transaction{a, tx(t, uuid.New(), 50)}

	first := billing.Fold(txs)
	second := billing.Fold(txs)
	assert.Equal(t, first, second)

	withDuplicate := billing.Fold(append(txs, a))
	assert.Equal(t, first.TotalAmount, withDuplicate.TotalAmount)
	assert.Equal(t, first.TicketCount, withDuplicate.TicketCount)
}

func TestFold_Empty(t *testing.T) {
	totals := billing.Fold(nil)
	assert.Zero(t, totals.TotalAmount)
	assert.Zero(t, totals.HouseholdCount)
	assert.Empty(t, totals.Households)
}

func TestSummary_KeepsShareTokenOnRecompute(t *testing.T) {
	p, err := billing.ParsePeriod("2024-05")
	require.NoError(t, err)
	now := time.Date(2024, 6, 1, 4, 0, 0, 0, time.UTC)

	s := billing.NewSummary(p, time.UTC, 10, billing.Totals{TotalAmount: 100, HouseholdCount: 1, TicketCount: 1}, now)
	token := s.ShareToken()
	require.Len(t, token, 32)

	s.Apply(billing.Totals{TotalAmount: 1400, HouseholdCount: 3, TicketCount: 7}, now.Add(time.Hour))
	assert.Equal(t, token, s.ShareToken())
	assert.Equal(t, int64(1400), s.TotalAmount())
	assert.Equal(t, 3, s.HouseholdCount())
	assert.Equal(t, 7, s.TicketCount())
}

func TestInvoice_Recalculate(t *testing.T) {
	p, _ := billing.ParsePeriod("2024-05")
	h := uuid.New()
	inv := billing.NewInvoice(p, time.UTC, 10, billing.InvoiceHousehold{ID: h, Address: "Skraaningen 3"}, time.Now())

	inv.Recalculate([]*billing.Transaction{tx(t, h, 200), tx(t, h, 300)}, time.Now())
	assert.Equal(t, int64(500), inv.Amount())
	assert.Equal(t, "2024-05", inv.BillingPeriod())
	assert.Equal(t, "Skraaningen 3", inv.Address())
}
