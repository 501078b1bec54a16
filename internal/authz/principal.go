// Package authz holds the caller identity, the tenant scoping rule and the
// declarative capability table consulted by the HTTP authorization gate.
package authz

import "github.com/iliyamo/civil-registry/internal/model"

// Principal is the authenticated caller as loaded from the users table.
type Principal struct {
	UserID   uint64
	FullName string
	Role     model.Role
	MairieID *uint64
}

// IsSuperAdmin reports whether the caller sees every tenant.
func (p Principal) IsSuperAdmin() bool { return p.Role == model.RoleSuperAdmin }

// ScopeByTenant returns the tenant filter to apply to a query.
//
// A super administrator gets the explicit filter if one was supplied and
// no filter otherwise. Every other caller is pinned to their own tenant and
// any client-supplied tenant id is ignored.
func (p Principal) ScopeByTenant(explicit *uint64) *uint64 {
	if p.IsSuperAdmin() {
		return explicit
	}
	if p.MairieID == nil {
		// no tenant: match nothing rather than everything
		none := uint64(0)
		return &none
	}
	id := *p.MairieID
	return &id
}

// CanAccess reports whether a row owned by mairieID is visible to the caller.
func (p Principal) CanAccess(mairieID uint64) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.MairieID != nil && *p.MairieID == mairieID
}

// CanAccessOptional is CanAccess for rows whose tenant may be NULL
// (super administrator accounts, system audit entries).
func (p Principal) CanAccessOptional(mairieID *uint64) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return mairieID != nil && p.CanAccess(*mairieID)
}
