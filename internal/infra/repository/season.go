package repository

import (
	"context"
	"encoding/json"
	"time"

	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const seasonColumns = `id, short_name, period_start, period_end, is_active, cooking_days, holidays,
	ticket_is_cancellable_days_before, dining_mode_is_editable_minutes_before, consecutive_cooking_days,
	created_at, updated_at`

type SeasonRepository struct {
	db db.DBTX
}

func NewSeasonRepository(db db.DBTX) *SeasonRepository {
	return &SeasonRepository{db: db}
}

type holidayJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r *SeasonRepository) Create(ctx context.Context, s *season.Season) error {
	holidays, err := encodeHolidays(s.Holidays())
	if err != nil {
		return infra.WrapRepoErr("failed to encode holidays", err)
	}
	rules := s.Rules()
	_, err = r.db.Exec(ctx, `
		INSERT INTO seasons (`+seasonColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID(), s.ShortName(), s.Period().Start(), s.Period().End(), s.IsActive(), s.CookingDays().String(), holidays,
		rules.TicketIsCancellableDaysBefore, rules.DiningModeIsEditableMinutesBefore, rules.ConsecutiveCookingDays,
		s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create season", err)
	}
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, s *season.Season) error {
	rules := s.Rules()
	tag, err := r.db.Exec(ctx, `
		UPDATE seasons
		SET is_active = $2, ticket_is_cancellable_days_before = $3, dining_mode_is_editable_minutes_before = $4,
		    consecutive_cooking_days = $5, updated_at = $6
		WHERE id = $1`,
		s.ID(), s.IsActive(), rules.TicketIsCancellableDaysBefore, rules.DiningModeIsEditableMinutesBefore,
		rules.ConsecutiveCookingDays, s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update season", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("season not found")
	}
	return nil
}

func (r *SeasonRepository) FindByID(ctx context.Context, id uuid.UUID) (*season.Season, error) {
	row := r.db.QueryRow(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE id = $1`, id)
	s, err := scanSeason(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("season not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find season", err)
	}
	return s, nil
}

func (r *SeasonRepository) ListActive(ctx context.Context) ([]*season.Season, error) {
	rows, err := r.db.Query(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE is_active ORDER BY period_start`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active seasons", err)
	}
	defer rows.Close()

	var out []*season.Season
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan season", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seasons", err)
	}
	return out, nil
}

func (r *SeasonRepository) DeactivateOthers(ctx context.Context, keep uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE seasons SET is_active = false, updated_at = now() WHERE is_active AND id <> $1`, keep)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate seasons", err)
	}
	return nil
}

func (r *SeasonRepository) CreateTicketPrice(ctx context.Context, p order.TicketPrice) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ticket_prices (id, season_id, ticket_type, price, maximum_age_limit)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.SeasonID, string(p.TicketType), p.Price, pgconv.Int4PtrToPgtype(p.MaximumAgeLimit),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create ticket price", err)
	}
	return nil
}

func (r *SeasonRepository) TicketPrices(ctx context.Context, seasonID uuid.UUID) ([]order.TicketPrice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, season_id, ticket_type, price, maximum_age_limit
		FROM ticket_prices WHERE season_id = $1 ORDER BY price DESC`, seasonID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ticket prices", err)
	}
	defer rows.Close()

	var out []order.TicketPrice
	for rows.Next() {
		var (
			p        order.TicketPrice
			typ      string
			maxLimit pgtype.Int4
		)
		if err := rows.Scan(&p.ID, &p.SeasonID, &typ, &p.Price, &maxLimit); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticket price", err)
		}
		p.TicketType = order.TicketType(typ)
		p.MaximumAgeLimit = pgconv.Int4PtrFromPgtype(maxLimit)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate ticket prices", err)
	}
	return out, nil
}

func scanSeason(row pgx.Row) (*season.Season, error) {
	var (
		id                   uuid.UUID
		shortName, days      string
		start, end           time.Time
		active               bool
		holidaysRaw          []byte
		rules                season.Rules
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &shortName, &start, &end, &active, &days, &holidaysRaw,
		&rules.TicketIsCancellableDaysBefore, &rules.DiningModeIsEditableMinutesBefore, &rules.ConsecutiveCookingDays,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	period, err := season.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	cookingDays, err := season.ParseCookingDays(days)
	if err != nil {
		return nil, err
	}
	holidays, err := decodeHolidays(holidaysRaw)
	if err != nil {
		return nil, err
	}
	return season.ReconstructSeason(id, shortName, period, active, cookingDays, holidays, rules, createdAt, updatedAt), nil
}

func encodeHolidays(ranges []season.DateRange) ([]byte, error) {
	out := make([]holidayJSON, 0, len(ranges))
	for _, h := range ranges {
		out = append(out, holidayJSON{Start: h.Start().Format(time.DateOnly), End: h.End().Format(time.DateOnly)})
	}
	return json.Marshal(out)
}

func decodeHolidays(raw []byte) ([]season.DateRange, error) {
	var items []holidayJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	}
	out := make([]season.DateRange, 0, len(items))
	for _, h := range items {
		start, err := time.Parse(time.DateOnly, h.Start)
		if err != nil {
			return nil, err
		}
		end, err := time.Parse(time.DateOnly, h.End)
		if err != nil {
			return nil, err
		}
		r, err := season.NewDateRange(start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
