package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the login identity of an inhabitant. Imported from Heynabo, never edited by the dinner engine.
type User struct {
	id        uuid.UUID
	email     Email
	role      Role
	heynaboID *int64
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(email Email, role Role, heynaboID *int64, now time.Time) *User {
	return &User{
		id:        uuid.New(),
		email:     email,
		role:      role,
		heynaboID: heynaboID,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructUser(id uuid.UUID, email Email, role Role, heynaboID *int64, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		email:     email,
		role:      role,
		heynaboID: heynaboID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) HeynaboID() *int64    { return u.heynaboID }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
