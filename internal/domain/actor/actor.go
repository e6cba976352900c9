package actor

import "errors"

// ErrPermissionDenied covers role and ownership mismatches across the core.
var ErrPermissionDenied = errors.New("permission denied")

// Role of an already-authenticated user. Authentication itself is an
// external capability; the core only consumes the validated descriptor.
type Role string

const (
	RoleClient  Role = "client"
	RoleSeller  Role = "seller"
	RoleAnalyst Role = "analyst"
	RoleAdmin   Role = "admin"
)

type Actor struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Privileged reports whether the actor may register payments and run
// administrative transitions.
func (a Actor) Privileged() bool {
	return a.Role == RoleSeller || a.Role == RoleAdmin
}

func ValidRole(r Role) bool {
	switch r {
	case RoleClient, RoleSeller, RoleAnalyst, RoleAdmin:
		return true
	}
	return false
}
