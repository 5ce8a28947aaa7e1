package team

import (
	"sort"
	"time"

	"commons-dinner/internal/domain/season"

	"github.com/google/uuid"
)

// Roster is the season-scoped set of teams and their assignments.
// Teams rotate in name order over blocks of consecutive cooking dates.
type Roster struct {
	season      *season.Season
	teams       []*Team
	assignments []*Assignment
	dateIndex   map[string]int
}

type Duty struct {
	Date time.Time
	Team *Team
}

type AllocationSummary struct {
	TeamID          uuid.UUID
	TeamName        string
	Members         int
	TotalAllocation int
	Chefs           int
}

func NewRoster(s *season.Season, teams []*Team, assignments []*Assignment) (*Roster, error) {
	sorted := make([]*Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	r := &Roster{season: s, teams: sorted, assignments: assignments}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	r.dateIndex = make(map[string]int)
	for i, d := range s.CookingDates() {
		r.dateIndex[d.Format(time.DateOnly)] = i
	}
	return r, nil
}

// Validate checks that every team belongs to the roster's season and every assignment to one of its teams
func (r *Roster) Validate() error {
	known := make(map[uuid.UUID]struct{}, len(r.teams))
	for _, t := range r.teams {
		if t.seasonID != r.season.ID() {
			return ErrSeasonMismatch
		}
		known[t.id] = struct{}{}
	}
	for _, a := range r.assignments {
		if _, ok := known[a.teamID]; !ok {
			return ErrUnknownTeam
		}
	}
	return nil
}

// ValidateDinner checks that a dinner's team (if any) is part of the dinner's season
func ValidateDinner(t *Team, dinnerSeasonID *uuid.UUID) error {
	if t == nil {
		return nil
	}
	if dinnerSeasonID == nil || *dinnerSeasonID != t.seasonID {
		return ErrSeasonMismatch
	}
	return nil
}

func (r *Roster) Teams() []*Team { return r.teams }

func (r *Roster) TeamForDate(date time.Time) (*Team, error) {
	if len(r.teams) == 0 {
		return nil, ErrNoTeams
	}
	idx, ok := r.dateIndex[date.Format(time.DateOnly)]
	if !ok {
		return nil, ErrNotCookingDay
	}
	block := idx / r.season.ConsecutiveCookingDays()
	return r.teams[block%len(r.teams)], nil
}

// TeamsForRange returns the responsible team for each cooking date in [from, to]
func (r *Roster) TeamsForRange(from, to time.Time) ([]Duty, error) {
	if len(r.teams) == 0 {
		return nil, ErrNoTeams
	}
	var duties []Duty
	for _, d := range r.season.CookingDates() {
		key := d.Format(time.DateOnly)
		if key < from.Format(time.DateOnly) || key > to.Format(time.DateOnly) {
			continue
		}
		t, err := r.TeamForDate(d)
		if err != nil {
			return nil, err
		}
		duties = append(duties, Duty{Date: d, Team: t})
	}
	return duties, nil
}

// ChefOf resolves the chef of a dinner: the explicit chef when set, otherwise the team's
// CHEF assignment with the highest allocation.
func (r *Roster) ChefOf(explicitChef, teamID *uuid.UUID) (uuid.UUID, bool) {
	if explicitChef != nil {
		return *explicitChef, true
	}
	if teamID == nil {
		return uuid.Nil, false
	}
	var best *Assignment
	for _, a := range r.assignments {
		if a.teamID != *teamID || a.role != RoleChef {
			continue
		}
		if best == nil || a.allocation > best.allocation {
			best = a
		}
	}
	if best == nil {
		return uuid.Nil, false
	}
	return best.inhabitantID, true
}

// AllocationReport sums allocation percentages per team. The totals are advisory only.
func (r *Roster) AllocationReport() []AllocationSummary {
	out := make([]AllocationSummary, 0, len(r.teams))
	for _, t := range r.teams {
		sum := AllocationSummary{TeamID: t.id, TeamName: t.name}
		for _, a := range r.assignments {
			if a.teamID != t.id {
				continue
			}
			sum.Members++
			sum.TotalAllocation += a.allocation
			if a.role == RoleChef {
				sum.Chefs++
			}
		}
		out = append(out, sum)
	}
	return out
}
