//go:build unit || e2e

package builder

import (
	"sync/atomic"
	"time"

	"commons-dinner/internal/domain/household"

	"github.com/google/uuid"
)

type HouseholdBuilder struct {
	HeynaboID int64
	PbsID     *int64
	Name      string
	Address   string
	CreatedAt time.Time
}

var lastHeynaboID atomic.Int64

func NewHouseholdBuilder() *HouseholdBuilder {
	id := lastHeynaboID.Add(1) + 1000
	pbs := id + 50000
	return &HouseholdBuilder{
		HeynaboID: id,
		PbsID:     &pbs,
		Name:      "Skovgaard",
		Address:   "Fællesvej 1",
		CreatedAt: time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (h *HouseholdBuilder) With(mutate func(*HouseholdBuilder)) *HouseholdBuilder {
	mutate(h)
	return h
}

func (h *HouseholdBuilder) BuildDomain() (*household.Household, error) {
	return household.NewHousehold(h.HeynaboID, h.PbsID, h.Name, h.Address, h.CreatedAt)
}

type InhabitantBuilder struct {
	HouseholdID uuid.UUID
	HeynaboID   *int64
	UserID      *uuid.UUID
	Name        string
	LastName    string
	BirthDate   *time.Time
	CreatedAt   time.Time
}

func NewInhabitantBuilder(householdID uuid.UUID) *InhabitantBuilder {
	return &InhabitantBuilder{
		HouseholdID: householdID,
		Name:        "Karen",
		LastName:    "Skovgaard",
		CreatedAt:   time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (i *InhabitantBuilder) With(mutate func(*InhabitantBuilder)) *InhabitantBuilder {
	mutate(i)
	return i
}

func (i *InhabitantBuilder) BuildDomain() (*household.Inhabitant, error) {
	return household.NewInhabitant(i.HouseholdID, household.InhabitantDetails{
		HeynaboID: i.HeynaboID,
		UserID:    i.UserID,
		Name:      i.Name,
		LastName:  i.LastName,
		BirthDate: i.BirthDate,
	}, i.CreatedAt)
}
