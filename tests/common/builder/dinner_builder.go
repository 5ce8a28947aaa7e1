//go:build unit || e2e

package builder

import (
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
)

type DinnerBuilder struct {
	ID            uuid.UUID
	SeasonID      *uuid.UUID
	Date          time.Time
	MenuTitle     string
	State         dinner.State
	TotalCost     int64
	ChefID        *uuid.UUID
	CookingTeamID *uuid.UUID
	CreatedAt     time.Time
}

func NewDinnerBuilder() *DinnerBuilder {
	return &DinnerBuilder{
		ID:        uuid.New(),
		Date:      time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
		MenuTitle: "Lasagne",
		State:     dinner.StateScheduled,
		CreatedAt: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (d *DinnerBuilder) With(mutate func(*DinnerBuilder)) *DinnerBuilder {
	mutate(d)
	return d
}

func (d *DinnerBuilder) BuildDomain() (*dinner.Dinner, error) {
	menu, err := dinner.NewMenu(d.MenuTitle, "", nil)
	if err != nil {
		return nil, err
	}
	return dinner.ReconstructDinner(
		d.ID, d.Date, menu, d.State, d.TotalCost,
		d.ChefID, d.CookingTeamID, d.SeasonID,
		nil, nil, d.CreatedAt, d.CreatedAt,
	), nil
}

func (d *DinnerBuilder) BuildView() *queries.DinnerView {
	return &queries.DinnerView{
		ID:            d.ID,
		Date:          d.Date,
		MenuTitle:     d.MenuTitle,
		State:         string(d.State),
		TotalCost:     d.TotalCost,
		ChefID:        d.ChefID,
		CookingTeamID: d.CookingTeamID,
		SeasonID:      d.SeasonID,
		AllergenIDs:   []uuid.UUID{},
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.CreatedAt,
	}
}
