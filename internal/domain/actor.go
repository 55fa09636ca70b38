package domain

import "sort"

// RoleAdministrator sees everything and may book everything
const RoleAdministrator = "administrator"

// Actor is the identity a computation runs for. UserID 0 means anonymous.
type Actor struct {
	UserID int64
	Roles  []string
}

// IsAnonymous returns true if no user is logged in
func (a Actor) IsAnonymous() bool {
	return a.UserID == 0
}

// HasRole returns true if the actor has the role
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdministrator)
}

// SortedRoles returns a sorted copy of the roles
func (a Actor) SortedRoles() []string {
	roles := make([]string, len(a.Roles))
	copy(roles, a.Roles)
	sort.Strings(roles)
	return roles
}
