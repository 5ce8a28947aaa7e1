package shared

import (
	"context"

	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/team"

	"github.com/google/uuid"
)

// LoadRoster reads a season with its teams and assignments
func LoadRoster(ctx context.Context, tx Tx, seasonID uuid.UUID) (*season.Season, *team.Roster, error) {
	s, err := tx.Seasons().FindByID(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}
	teams, err := tx.Teams().ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := tx.Teams().ListAssignmentsBySeason(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}
	roster, err := team.NewRoster(s, teams, assignments)
	if err != nil {
		return nil, nil, err
	}
	return s, roster, nil
}
