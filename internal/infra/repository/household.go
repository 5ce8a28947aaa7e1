package repository

import (
	"context"
	"time"

	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	householdColumns  = `id, heynabo_id, pbs_id, name, address, created_at, updated_at`
	inhabitantColumns = `id, household_id, heynabo_id, user_id, name, last_name, birth_date, move_in_date, move_out_date,
	created_at, updated_at`
)

type HouseholdRepository struct {
	db db.DBTX
}

func NewHouseholdRepository(db db.DBTX) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

func (r *HouseholdRepository) Create(ctx context.Context, h *household.Household) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO households (`+householdColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID(), h.HeynaboID(), pgconv.Int8PtrToPgtype(h.PbsID()), h.Name(), h.Address(), h.CreatedAt(), h.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create household", err)
	}
	return nil
}

func (r *HouseholdRepository) Update(ctx context.Context, h *household.Household) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE households SET pbs_id = $2, name = $3, address = $4, updated_at = $5 WHERE id = $1`,
		h.ID(), pgconv.Int8PtrToPgtype(h.PbsID()), h.Name(), h.Address(), h.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update household", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("household not found")
	}
	return nil
}

func (r *HouseholdRepository) FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	return r.findHousehold(ctx, `SELECT `+householdColumns+` FROM households WHERE id = $1`, id)
}

func (r *HouseholdRepository) FindByHeynaboID(ctx context.Context, heynaboID int64) (*household.Household, error) {
	return r.findHousehold(ctx, `SELECT `+householdColumns+` FROM households WHERE heynabo_id = $1`, heynaboID)
}

func (r *HouseholdRepository) findHousehold(ctx context.Context, query string, arg any) (*household.Household, error) {
	var (
		id                   uuid.UUID
		heynaboID            int64
		pbsID                pgtype.Int8
		name, address        string
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&id, &heynaboID, &pbsID, &name, &address, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("household not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find household", err)
	}
	return household.ReconstructHousehold(id, heynaboID, pgconv.Int8PtrFromPgtype(pbsID), name, address, createdAt, updatedAt), nil
}

func (r *HouseholdRepository) CreateInhabitant(ctx context.Context, i *household.Inhabitant) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inhabitants (`+inhabitantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		i.ID(), i.HouseholdID(), pgconv.Int8PtrToPgtype(i.HeynaboID()), pgconv.UUIDPtrToPgtype(i.UserID()),
		i.Name(), i.LastName(), pgconv.DatePtrToPgtype(i.BirthDate()), pgconv.DatePtrToPgtype(i.MoveInDate()),
		pgconv.DatePtrToPgtype(i.MoveOutDate()), i.CreatedAt(), i.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create inhabitant", err)
	}
	return nil
}

func (r *HouseholdRepository) UpdateInhabitant(ctx context.Context, i *household.Inhabitant) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inhabitants
		SET user_id = $2, name = $3, last_name = $4, birth_date = $5, move_in_date = $6, move_out_date = $7,
		    updated_at = $8
		WHERE id = $1`,
		i.ID(), pgconv.UUIDPtrToPgtype(i.UserID()), i.Name(), i.LastName(), pgconv.DatePtrToPgtype(i.BirthDate()),
		pgconv.DatePtrToPgtype(i.MoveInDate()), pgconv.DatePtrToPgtype(i.MoveOutDate()), i.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update inhabitant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("inhabitant not found")
	}
	return nil
}

func (r *HouseholdRepository) FindInhabitant(ctx context.Context, id uuid.UUID) (*household.Inhabitant, error) {
	return r.findInhabitant(ctx, `SELECT `+inhabitantColumns+` FROM inhabitants WHERE id = $1`, id)
}

func (r *HouseholdRepository) FindInhabitantByHeynaboID(ctx context.Context, heynaboID int64) (*household.Inhabitant, error) {
	return r.findInhabitant(ctx, `SELECT `+inhabitantColumns+` FROM inhabitants WHERE heynabo_id = $1`, heynaboID)
}

func (r *HouseholdRepository) findInhabitant(ctx context.Context, query string, arg any) (*household.Inhabitant, error) {
	i, err := scanInhabitant(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("inhabitant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find inhabitant", err)
	}
	return i, nil
}

func scanInhabitant(row pgx.Row) (*household.Inhabitant, error) {
	var (
		id, householdID        uuid.UUID
		heynaboID              pgtype.Int8
		userID                 pgtype.UUID
		name, lastName         string
		birth, moveIn, moveOut pgtype.Date
		createdAt, updatedAt   time.Time
	)
	if err := row.Scan(&id, &householdID, &heynaboID, &userID, &name, &lastName, &birth, &moveIn, &moveOut,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return household.ReconstructInhabitant(id, householdID, household.InhabitantDetails{
		HeynaboID:   pgconv.Int8PtrFromPgtype(heynaboID),
		UserID:      pgconv.UUIDPtrFromPgtype(userID),
		Name:        name,
		LastName:    lastName,
		BirthDate:   pgconv.DatePtrFromPgtype(birth),
		MoveInDate:  pgconv.DatePtrFromPgtype(moveIn),
		MoveOutDate: pgconv.DatePtrFromPgtype(moveOut),
	}, createdAt, updatedAt), nil
}
