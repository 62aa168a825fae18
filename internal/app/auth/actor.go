package auth

import "github.com/affan/clubsphere/internal/app/models"

// Actor identifies who is performing an operation. It is built once per
// request from validated token claims and passed explicitly to every
// service operation, so authorization decisions are pure functions of
// (actor, request) and never depend on ambient state.
type Actor struct {
	ID   int64
	Role models.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Can reports whether the actor's role grants the given capability.
func (a Actor) Can(c Capability) bool {
	return roleCapabilities[a.Role][c]
}
