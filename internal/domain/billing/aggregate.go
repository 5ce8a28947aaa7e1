package billing

import (
	"sort"

	"github.com/google/uuid"
)

type HouseholdTotal struct {
	HouseholdID    uuid.UUID
	Amount         int64
	TransactionIDs []uuid.UUID
}

type Totals struct {
	Households     []HouseholdTotal
	TotalAmount    int64
	HouseholdCount int
	TicketCount    int
}

// Fold groups transactions by household. It only reads transactions, so running it twice over
// the same set gives the same totals.
func Fold(txs []*Transaction) Totals {
	byHousehold := make(map[uuid.UUID]*HouseholdTotal)
	seen := make(map[uuid.UUID]struct{}, len(txs))
	var totals Totals

	for _, tx := range txs {
		if _, dup := seen[tx.id]; dup {
			continue
		}
		seen[tx.id] = struct{}{}

		h, ok := byHousehold[tx.householdID]
		if !ok {
			h = &HouseholdTotal{HouseholdID: tx.householdID}
			byHousehold[tx.householdID] = h
		}
		h.Amount += tx.amount
		h.TransactionIDs = append(h.TransactionIDs, tx.id)
		totals.TotalAmount += tx.amount
	}

	totals.Households = make([]HouseholdTotal, 0, len(byHousehold))
	for _, h := range byHousehold {
		totals.Households = append(totals.Households, *h)
	}
	sort.Slice(totals.Households, func(i, j int) bool {
		return totals.Households[i].HouseholdID.String() < totals.Households[j].HouseholdID.String()
	})
	totals.HouseholdCount = len(totals.Households)
	totals.TicketCount = len(seen)
	return totals
}
