package readstore

import (
	"context"
	"time"

	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const dinnerViewSelect = `
	SELECT d.id, d.date, d.menu_title, d.menu_description, d.menu_picture_url, d.state, d.total_cost,
	       d.chef_id, d.cooking_team_id, t.name, d.season_id, d.heynabo_event_id,
	       COALESCE((SELECT array_agg(a.allergy_type_id ORDER BY a.allergy_type_id)
	                 FROM dinner_event_allergens a WHERE a.dinner_event_id = d.id), '{}'),
	       (SELECT count(*) FROM orders o WHERE o.dinner_event_id = d.id AND o.state IN ('BOOKED', 'CLOSED')),
	       (SELECT count(*) FROM orders o WHERE o.dinner_event_id = d.id AND o.state = 'RELEASED'),
	       d.created_at, d.updated_at
	FROM dinner_events d
	LEFT JOIN cooking_teams t ON t.id = d.cooking_team_id`

type DinnerReadStore struct {
	db db.DBTX
}

func NewDinnerReadStore(db db.DBTX) *DinnerReadStore {
	return &DinnerReadStore{db: db}
}

func (r *DinnerReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DinnerView, error) {
	v, err := scanDinnerView(r.db.QueryRow(ctx, dinnerViewSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("dinner event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find dinner view", err)
	}
	return v, nil
}

func (r *DinnerReadStore) ListBetween(ctx context.Context, from, to time.Time) ([]*queries.DinnerView, error) {
	rows, err := r.db.Query(ctx, dinnerViewSelect+` WHERE d.date >= $1 AND d.date <= $2 ORDER BY d.date`, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dinner views", err)
	}
	defer rows.Close()

	out := []*queries.DinnerView{}
	for rows.Next() {
		v, err := scanDinnerView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan dinner view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate dinner views", err)
	}
	return out, nil
}

func scanDinnerView(row pgx.Row) (*queries.DinnerView, error) {
	var (
		v                        queries.DinnerView
		picture, teamName        pgtype.Text
		chefID, teamID, seasonID pgtype.UUID
		heynaboEventID           pgtype.Int8
		booked, released         int64
	)
	if err := row.Scan(&v.ID, &v.Date, &v.MenuTitle, &v.MenuDescription, &picture, &v.State, &v.TotalCost,
		&chefID, &teamID, &teamName, &seasonID, &heynaboEventID, &v.AllergenIDs, &booked, &released,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.MenuPictureURL = pgconv.StringPtrFromPgtype(picture)
	v.ChefID = pgconv.UUIDPtrFromPgtype(chefID)
	v.CookingTeamID = pgconv.UUIDPtrFromPgtype(teamID)
	v.CookingTeamName = pgconv.StringPtrFromPgtype(teamName)
	v.SeasonID = pgconv.UUIDPtrFromPgtype(seasonID)
	v.HeynaboEventID = pgconv.Int8PtrFromPgtype(heynaboEventID)
	v.BookedCount = int(booked)
	v.ReleasedCount = int(released)
	return &v, nil
}
