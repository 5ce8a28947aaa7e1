package dinner

import (
	"errors"
	"time"

	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/team"

	"github.com/google/uuid"
)

var (
	ErrEmptyMenuTitle    = errors.New("menu title cannot be empty")
	ErrNegativeCost      = errors.New("total cost cannot be negative")
	ErrNotCookingDay     = errors.New("dinner date is not a cooking day of the season")
	ErrNotBookable       = errors.New("dinner is not open for booking")
	ErrInvalidTransition = errors.New("invalid dinner state transition")
)

type Dinner struct {
	id             uuid.UUID
	date           time.Time
	menu           Menu
	state          State
	totalCost      int64
	chefID         *uuid.UUID
	cookingTeamID  *uuid.UUID
	seasonID       *uuid.UUID
	heynaboEventID *int64
	allergenIDs    []uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

// NewDinner schedules a dinner. With a season the date must be one of its cooking days,
// and a cooking team must belong to that season.
func NewDinner(s *season.Season, date time.Time, t *team.Team, chefID *uuid.UUID, menu Menu, now time.Time) (*Dinner, error) {
	var seasonID *uuid.UUID
	if s != nil {
		if !s.IsCookingDay(date) {
			return nil, ErrNotCookingDay
		}
		id := s.ID()
		seasonID = &id
	}
	if err := team.ValidateDinner(t, seasonID); err != nil {
		return nil, err
	}

	var teamID *uuid.UUID
	if t != nil {
		id := t.ID()
		teamID = &id
	}

	return &Dinner{
		id:            uuid.New(),
		date:          date,
		menu:          menu,
		state:         StateScheduled,
		chefID:        chefID,
		cookingTeamID: teamID,
		seasonID:      seasonID,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructDinner(
	id uuid.UUID,
	date time.Time,
	menu Menu,
	state State,
	totalCost int64,
	chefID, cookingTeamID, seasonID *uuid.UUID,
	heynaboEventID *int64,
	allergenIDs []uuid.UUID,
	createdAt, updatedAt time.Time,
) *Dinner {
	return &Dinner{
		id:             id,
		date:           date,
		menu:           menu,
		state:          state,
		totalCost:      totalCost,
		chefID:         chefID,
		cookingTeamID:  cookingTeamID,
		seasonID:       seasonID,
		heynaboEventID: heynaboEventID,
		allergenIDs:    allergenIDs,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Announce finalizes menu, cost and allergens. It may be repeated while the dinner is announced.
func (d *Dinner) Announce(menu Menu, totalCost int64, allergenIDs []uuid.UUID, now time.Time) error {
	if d.state != StateScheduled && d.state != StateAnnounced {
		return ErrInvalidTransition
	}
	if totalCost < 0 {
		return ErrNegativeCost
	}
	d.menu = menu
	d.totalCost = totalCost
	d.allergenIDs = dedupe(allergenIDs)
	d.state = StateAnnounced
	d.updatedAt = now
	return nil
}

func (d *Dinner) Consume(now time.Time) error {
	if d.state != StateAnnounced {
		return ErrInvalidTransition
	}
	d.state = StateConsumed
	d.updatedAt = now
	return nil
}

// Cancel only moves the dinner itself; its open orders are cancelled by the caller in the same transaction.
func (d *Dinner) Cancel(now time.Time) error {
	if d.state.IsTerminal() {
		return ErrInvalidTransition
	}
	d.state = StateCancelled
	d.updatedAt = now
	return nil
}

func (d *Dinner) LinkHeynaboEvent(eventID int64, now time.Time) {
	d.heynaboEventID = &eventID
	d.updatedAt = now
}

func (d *Dinner) EnsureBookable() error {
	if !d.IsBookable() {
		return ErrNotBookable
	}
	return nil
}

func (d *Dinner) IsBookable() bool {
	return d.state == StateScheduled || d.state == StateAnnounced
}

func (d *Dinner) IsConsumed() bool { return d.state == StateConsumed }

// TotalCostKnown reports whether totalCost is authoritative
func (d *Dinner) TotalCostKnown() bool {
	return d.state == StateAnnounced || d.state == StateConsumed
}

func (d *Dinner) ID() uuid.UUID             { return d.id }
func (d *Dinner) Date() time.Time           { return d.date }
func (d *Dinner) Menu() Menu                { return d.menu }
func (d *Dinner) State() State              { return d.state }
func (d *Dinner) TotalCost() int64          { return d.totalCost }
func (d *Dinner) ChefID() *uuid.UUID        { return d.chefID }
func (d *Dinner) CookingTeamID() *uuid.UUID { return d.cookingTeamID }
func (d *Dinner) SeasonID() *uuid.UUID      { return d.seasonID }
func (d *Dinner) HeynaboEventID() *int64    { return d.heynaboEventID }
func (d *Dinner) AllergenIDs() []uuid.UUID  { return d.allergenIDs }
func (d *Dinner) CreatedAt() time.Time      { return d.createdAt }
func (d *Dinner) UpdatedAt() time.Time      { return d.updatedAt }

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
