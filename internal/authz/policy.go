package authz

import (
	"errors"

	"github.com/iliyamo/civil-registry/internal/model"
)

// ErrForbidden is returned when the caller's role is not in the allowed set.
var ErrForbidden = errors.New("forbidden")

// Operation names a protected action.
type Operation string

const (
	VilleRead           Operation = "ville.read"
	VilleWrite          Operation = "ville.write"
	ArrondissementRead  Operation = "arrondissement.read"
	ArrondissementWrite Operation = "arrondissement.write"
	MairieRead          Operation = "mairie.read"
	MairieCreate        Operation = "mairie.create"
	MairieUpdate        Operation = "mairie.update"
	MairieDelete        Operation = "mairie.delete"
	MairieStats         Operation = "mairie.stats"
	UserRead            Operation = "user.read"
	UserWrite           Operation = "user.write"
	MariageRead         Operation = "mariage.read"
	MariageCreate       Operation = "mariage.create"
	MariageUpdate       Operation = "mariage.update"
	MariageDelete       Operation = "mariage.delete"
	MariageValidate     Operation = "mariage.validate"
	ActeRead            Operation = "acte.read"
	ActeGenerate        Operation = "acte.generate"
	ActeValidate        Operation = "acte.validate"
	ActePrint           Operation = "acte.print"
	ActeCancel          Operation = "acte.cancel"
	DashboardRead       Operation = "dashboard.read"
)

var (
	everyone  = roles(model.RoleSuperAdmin, model.RoleAdminMairie, model.RoleAgent, model.RoleConsultation)
	superOnly = roles(model.RoleSuperAdmin)
	admins    = roles(model.RoleSuperAdmin, model.RoleAdminMairie)
	writers   = roles(model.RoleSuperAdmin, model.RoleAdminMairie, model.RoleAgent)
)

// capabilities maps every operation to the roles allowed to perform it.
// An operation missing from the table is denied to everyone.
var capabilities = map[Operation]map[model.Role]bool{
	VilleRead:           everyone,
	VilleWrite:          superOnly,
	ArrondissementRead:  everyone,
	ArrondissementWrite: superOnly,
	MairieRead:          everyone,
	MairieCreate:        superOnly,
	MairieUpdate:        admins,
	MairieDelete:        superOnly,
	MairieStats:         everyone,
	UserRead:            admins,
	UserWrite:           admins,
	MariageRead:         everyone,
	MariageCreate:       writers,
	MariageUpdate:       writers,
	MariageDelete:       admins,
	MariageValidate:     admins,
	ActeRead:            everyone,
	ActeGenerate:        writers,
	ActeValidate:        admins,
	ActePrint:           writers,
	ActeCancel:          superOnly,
	DashboardRead:       everyone,
}

func roles(rs ...model.Role) map[model.Role]bool {
	m := make(map[model.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role model.Role) bool {
	return capabilities[op][role]
}

// Check returns ErrForbidden when the principal's role may not perform op.
func Check(op Operation, p Principal) error {
	if !Allowed(op, p.Role) {
		return ErrForbidden
	}
	return nil
}

// CanManageRole reports whether actor may create, edit or remove an account
// holding target. Mairie administrators only manage agents and read-only users.
func CanManageRole(actor, target model.Role) bool {
	switch actor {
	case model.RoleSuperAdmin:
		return true
	case model.RoleAdminMairie:
		return target == model.RoleAgent || target == model.RoleConsultation
	}
	return false
}

// MairieFields lists the mairie attributes role may change. A nil result
// means every field.
func MairieFields(role model.Role) map[string]bool {
	if role == model.RoleSuperAdmin {
		return nil
	}
	return map[string]bool{
		"adresse":     true,
		"telephone":   true,
		"email":       true,
		"logo":        true,
		"cachet":      true,
		"prefixeActe": true,
	}
}
