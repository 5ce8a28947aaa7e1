//go:build unit || e2e

package builder

import (
	"time"

	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email     string
	Role      string
	HeynaboID *int64
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email: "karen@example.com",
		Role:  "MEMBER",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, role, u.HeynaboID, time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)), nil
}

func (u *UserBuilder) BuildView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:    uuid.New(),
		Email: u.Email,
		Role:  u.Role,
	}
}
