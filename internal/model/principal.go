// internal/model/principal.go
package model

import "github.com/google/uuid"

type Role string

const (
	RoleOrganization Role = "organization"
	RoleMember       Role = "member"
	RoleAdmin        Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrganization, RoleMember, RoleAdmin:
		return true
	}
	return false
}

// Principal is any authenticated actor: an Organization, a Member or an Admin.
type Principal interface {
	PrincipalID() uuid.UUID
	PrincipalRole() Role
}
