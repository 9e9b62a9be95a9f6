package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleReader Role = "reader"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleReader, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsPrivileged reports whether the role may perform staff operations:
// arbitrary lifecycle transitions, creating reservations for any reader,
// and editing reservations.
func (r Role) IsPrivileged() bool {
	return r == RoleStaff || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
