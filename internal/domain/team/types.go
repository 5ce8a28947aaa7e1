package team

import "errors"

type Role string

const (
	RoleChef         Role = "CHEF"
	RoleCook         Role = "COOK"
	RoleJuniorHelper Role = "JUNIORHELPER"
)

var ErrInvalidRole = errors.New("invalid cooking team role")

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleChef, RoleCook, RoleJuniorHelper:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

const DefaultAllocationPercentage = 100
