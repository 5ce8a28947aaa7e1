package repository

import (
	"context"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const dinnerColumns = `d.id, d.date, d.menu_title, d.menu_description, d.menu_picture_url, d.state, d.total_cost,
	d.chef_id, d.cooking_team_id, d.season_id, d.heynabo_event_id, d.created_at, d.updated_at,
	COALESCE((SELECT array_agg(a.allergy_type_id ORDER BY a.allergy_type_id)
	          FROM dinner_event_allergens a WHERE a.dinner_event_id = d.id), '{}')`

type DinnerRepository struct {
	db db.DBTX
}

func NewDinnerRepository(db db.DBTX) *DinnerRepository {
	return &DinnerRepository{db: db}
}

func (r *DinnerRepository) Create(ctx context.Context, d *dinner.Dinner) error {
	m := d.Menu()
	_, err := r.db.Exec(ctx, `
		INSERT INTO dinner_events
		    (id, date, menu_title, menu_description, menu_picture_url, state, total_cost,
		     chef_id, cooking_team_id, season_id, heynabo_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		d.ID(), d.Date(), m.Title, m.Description, pgconv.StringPtrToPgtype(m.PictureURL), string(d.State()), d.TotalCost(),
		pgconv.UUIDPtrToPgtype(d.ChefID()), pgconv.UUIDPtrToPgtype(d.CookingTeamID()), pgconv.UUIDPtrToPgtype(d.SeasonID()),
		pgconv.Int8PtrToPgtype(d.HeynaboEventID()), d.CreatedAt(), d.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create dinner event", err)
	}
	return r.replaceAllergens(ctx, d)
}

func (r *DinnerRepository) Update(ctx context.Context, d *dinner.Dinner) error {
	m := d.Menu()
	tag, err := r.db.Exec(ctx, `
		UPDATE dinner_events
		SET menu_title = $2, menu_description = $3, menu_picture_url = $4, state = $5, total_cost = $6,
		    chef_id = $7, heynabo_event_id = $8, updated_at = $9
		WHERE id = $1`,
		d.ID(), m.Title, m.Description, pgconv.StringPtrToPgtype(m.PictureURL), string(d.State()), d.TotalCost(),
		pgconv.UUIDPtrToPgtype(d.ChefID()), pgconv.Int8PtrToPgtype(d.HeynaboEventID()), d.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update dinner event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("dinner event not found")
	}
	return r.replaceAllergens(ctx, d)
}

func (r *DinnerRepository) replaceAllergens(ctx context.Context, d *dinner.Dinner) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM dinner_event_allergens WHERE dinner_event_id = $1`, d.ID()); err != nil {
		return infra.WrapRepoErr("failed to clear dinner allergens", err)
	}
	if len(d.AllergenIDs()) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO dinner_event_allergens (dinner_event_id, allergy_type_id)
		SELECT $1, unnest($2::uuid[])`, d.ID(), d.AllergenIDs())
	if err != nil {
		return infra.WrapRepoErr("failed to store dinner allergens", err)
	}
	return nil
}

func (r *DinnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*dinner.Dinner, error) {
	return r.findOne(ctx, `SELECT `+dinnerColumns+` FROM dinner_events d WHERE d.id = $1`, id)
}

func (r *DinnerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*dinner.Dinner, error) {
	return r.findOne(ctx, `SELECT `+dinnerColumns+` FROM dinner_events d WHERE d.id = $1 FOR UPDATE OF d`, id)
}

func (r *DinnerRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*dinner.Dinner, error) {
	d, err := scanDinner(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("dinner event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find dinner event", err)
	}
	return d, nil
}

func (r *DinnerRepository) ListByStateBefore(ctx context.Context, state dinner.State, before time.Time) ([]*dinner.Dinner, error) {
	return r.list(ctx, `SELECT `+dinnerColumns+` FROM dinner_events d
		WHERE d.state = $1 AND d.date < $2 ORDER BY d.date`, string(state), before)
}

func (r *DinnerRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*dinner.Dinner, error) {
	return r.list(ctx, `SELECT `+dinnerColumns+` FROM dinner_events d
		WHERE d.date >= $1 AND d.date <= $2 ORDER BY d.date`, from, to)
}

func (r *DinnerRepository) AllergyTypesExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM allergy_types WHERE id = ANY($1::uuid[])`, ids).Scan(&n)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check allergy types", err)
	}
	return n == len(uniqueIDs(ids)), nil
}

func (r *DinnerRepository) list(ctx context.Context, query string, args ...any) ([]*dinner.Dinner, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dinner events", err)
	}
	defer rows.Close()

	var out []*dinner.Dinner
	for rows.Next() {
		d, err := scanDinner(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan dinner event", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate dinner events", err)
	}
	return out, nil
}

func scanDinner(row pgx.Row) (*dinner.Dinner, error) {
	var (
		id                        uuid.UUID
		date                      time.Time
		title, description, state string
		picture                   pgtype.Text
		totalCost                 int64
		chefID, teamID, seasonID  pgtype.UUID
		heynaboEventID            pgtype.Int8
		createdAt, updatedAt      time.Time
		allergens                 []uuid.UUID
	)
	if err := row.Scan(&id, &date, &title, &description, &picture, &state, &totalCost,
		&chefID, &teamID, &seasonID, &heynaboEventID, &createdAt, &updatedAt, &allergens); err != nil {
		return nil, err
	}
	menu := dinner.Menu{Title: title, Description: description, PictureURL: pgconv.StringPtrFromPgtype(picture)}
	return dinner.ReconstructDinner(id, date, menu, dinner.State(state), totalCost,
		pgconv.UUIDPtrFromPgtype(chefID), pgconv.UUIDPtrFromPgtype(teamID), pgconv.UUIDPtrFromPgtype(seasonID),
		pgconv.Int8PtrFromPgtype(heynaboEventID), allergens, createdAt, updatedAt), nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
