package repository

import (
	"context"
	"time"

	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		SELECT id, email, role, heynabo_id, created_at, updated_at FROM users WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return u, nil
}

// Upsert keys on email. The role of an existing user is kept; heynabo_id is filled in when known.
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	stored, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, role, heynabo_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET heynabo_id = COALESCE(EXCLUDED.heynabo_id, users.heynabo_id), updated_at = EXCLUDED.updated_at
		RETURNING id, email, role, heynabo_id, created_at, updated_at`,
		u.ID(), u.Email().Value(), string(u.Role()), pgconv.Int8PtrToPgtype(u.HeynaboID()), u.CreatedAt(), u.UpdatedAt(),
	))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert user", err)
	}
	return stored, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   uuid.UUID
		email, role          string
		heynaboID            pgtype.Int8
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &email, &role, &heynaboID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, e, user.Role(role), pgconv.Int8PtrFromPgtype(heynaboID), createdAt, updatedAt), nil
}
