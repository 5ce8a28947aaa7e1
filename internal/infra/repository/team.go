package repository

import (
	"context"
	"time"

	"commons-dinner/internal/domain/team"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type TeamRepository struct {
	db db.DBTX
}

func NewTeamRepository(db db.DBTX) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cooking_teams (id, season_id, name, affinity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID(), t.SeasonID(), t.Name(), pgconv.StringPtrToPgtype(t.Affinity()), t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create cooking team", err)
	}
	return nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, season_id, name, affinity, created_at, updated_at
		FROM cooking_teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cooking team not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cooking team", err)
	}
	return t, nil
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]*team.Team, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, season_id, name, affinity, created_at, updated_at
		FROM cooking_teams WHERE season_id = $1 ORDER BY name`, seasonID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cooking teams", err)
	}
	defer rows.Close()

	var out []*team.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan cooking team", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cooking teams", err)
	}
	return out, nil
}

func (r *TeamRepository) CreateAssignment(ctx context.Context, a *team.Assignment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cooking_team_assignments
		    (id, cooking_team_id, inhabitant_id, role, allocation_percentage, affinity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID(), a.TeamID(), a.InhabitantID(), string(a.Role()), a.AllocationPercentage(),
		pgconv.StringPtrToPgtype(a.Affinity()), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create team assignment", err)
	}
	return nil
}

func (r *TeamRepository) ListAssignmentsBySeason(ctx context.Context, seasonID uuid.UUID) ([]*team.Assignment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.cooking_team_id, a.inhabitant_id, a.role, a.allocation_percentage, a.affinity,
		       a.created_at, a.updated_at
		FROM cooking_team_assignments a
		JOIN cooking_teams t ON t.id = a.cooking_team_id
		WHERE t.season_id = $1
		ORDER BY t.name, a.created_at`, seasonID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list team assignments", err)
	}
	defer rows.Close()

	var out []*team.Assignment
	for rows.Next() {
		var (
			id, teamID, inhabitantID uuid.UUID
			role                     string
			allocation               int
			affinity                 pgtype.Text
			createdAt, updatedAt     time.Time
		)
		if err := rows.Scan(&id, &teamID, &inhabitantID, &role, &allocation, &affinity, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan team assignment", err)
		}
		out = append(out, team.ReconstructAssignment(id, teamID, inhabitantID, team.Role(role), allocation,
			pgconv.StringPtrFromPgtype(affinity), createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate team assignments", err)
	}
	return out, nil
}

func scanTeam(row pgx.Row) (*team.Team, error) {
	var (
		id, seasonID         uuid.UUID
		name                 string
		affinity             pgtype.Text
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &seasonID, &name, &affinity, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return team.ReconstructTeam(id, seasonID, name, pgconv.StringPtrFromPgtype(affinity), createdAt, updatedAt), nil
}
