package model

// Role is one of the four account roles. Roles are a flat capability
// set, not a hierarchy: each operation lists the roles it accepts.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAdminMairie  Role = "admin_mairie"
	RoleAgent        Role = "agent"
	RoleConsultation Role = "consultation"
)

// AllRoles lists every known role in display order.
var AllRoles = []Role{RoleSuperAdmin, RoleAdminMairie, RoleAgent, RoleConsultation}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdminMairie, RoleAgent, RoleConsultation:
		return true
	}
	return false
}

// RequiresMairie reports whether accounts with this role must belong to a mairie.
func (r Role) RequiresMairie() bool { return r != RoleSuperAdmin }
