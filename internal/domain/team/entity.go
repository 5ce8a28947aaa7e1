package team

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTeamName     = errors.New("cooking team name cannot be empty")
	ErrInvalidAllocation = errors.New("allocation percentage must be between 1 and 100")
	ErrSeasonMismatch    = errors.New("cooking team belongs to a different season")
	ErrUnknownTeam       = errors.New("assignment references a team outside the roster")
	ErrNoTeams           = errors.New("season has no cooking teams")
	ErrNotCookingDay     = errors.New("date is not a cooking day of the season")
)

type Team struct {
	id        uuid.UUID
	seasonID  uuid.UUID
	name      string
	affinity  *string
	createdAt time.Time
	updatedAt time.Time
}

func NewTeam(seasonID uuid.UUID, name string, affinity *string, now time.Time) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTeamName
	}
	return &Team{
		id:        uuid.New(),
		seasonID:  seasonID,
		name:      name,
		affinity:  affinity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTeam(id, seasonID uuid.UUID, name string, affinity *string, createdAt, updatedAt time.Time) *Team {
	return &Team{
		id:        id,
		seasonID:  seasonID,
		name:      name,
		affinity:  affinity,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (t *Team) ID() uuid.UUID        { return t.id }
func (t *Team) SeasonID() uuid.UUID  { return t.seasonID }
func (t *Team) Name() string         { return t.name }
func (t *Team) Affinity() *string    { return t.affinity }
func (t *Team) CreatedAt() time.Time { return t.createdAt }
func (t *Team) UpdatedAt() time.Time { return t.updatedAt }

type Assignment struct {
	id           uuid.UUID
	teamID       uuid.UUID
	inhabitantID uuid.UUID
	role         Role
	allocation   int
	affinity     *string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAssignment treats a zero allocation as the default of 100
func NewAssignment(teamID, inhabitantID uuid.UUID, role Role, allocation int, affinity *string, now time.Time) (*Assignment, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if allocation == 0 {
		allocation = DefaultAllocationPercentage
	}
	if allocation < 1 || allocation > 100 {
		return nil, ErrInvalidAllocation
	}
	return &Assignment{
		id:           uuid.New(),
		teamID:       teamID,
		inhabitantID: inhabitantID,
		role:         role,
		allocation:   allocation,
		affinity:     affinity,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructAssignment(
	id, teamID, inhabitantID uuid.UUID,
	role Role,
	allocation int,
	affinity *string,
	createdAt, updatedAt time.Time,
) *Assignment {
	return &Assignment{
		id:           id,
		teamID:       teamID,
		inhabitantID: inhabitantID,
		role:         role,
		allocation:   allocation,
		affinity:     affinity,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Assignment) ID() uuid.UUID           { return a.id }
func (a *Assignment) TeamID() uuid.UUID       { return a.teamID }
func (a *Assignment) InhabitantID() uuid.UUID { return a.inhabitantID }
func (a *Assignment) Role() Role              { return a.role }
func (a *Assignment) AllocationPercentage() int {
	return a.allocation
}
func (a *Assignment) Affinity() *string    { return a.affinity }
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }
func (a *Assignment) UpdatedAt() time.Time { return a.updatedAt }
