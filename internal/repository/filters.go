package repository

import (
	"fmt"

	"github.com/iliyamo/civil-registry/internal/model"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// DependentsError is returned by deletes refused because rows in Table
// still reference the target. It matches ErrHasDependents with errors.Is.
type DependentsError struct {
	Table string
	Count int64
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%s: %d row(s) in %s", ErrHasDependents, e.Count, e.Table)
}

func (e *DependentsError) Is(target error) bool { return target == ErrHasDependents }

// VilleFilter narrows GET /villes.
type VilleFilter struct {
	ListQuery
}

// ArrondissementFilter narrows GET /arrondissements.
type ArrondissementFilter struct {
	ListQuery
	VilleID *uint64
}

// MairieFilter narrows GET /mairies. MairieID is the tenant scope.
type MairieFilter struct {
	ListQuery
	ArrondissementID *uint64
	MairieID         *uint64
}

// UserFilter narrows GET /users.
type UserFilter struct {
	ListQuery
	Role     *model.Role
	IsActive *bool
	MairieID *uint64
}

// MariageFilter narrows GET /mariages and the dashboard lists.
type MariageFilter struct {
	ListQuery
	MairieID  *uint64
	Statut    *model.StatutMariage
	DateDebut *model.Date
	DateFin   *model.Date
	CreatedBy *uint64
	// OrderByCreated sorts newest first by creation instead of by marriage date.
	OrderByCreated bool
}

// ActeFilter narrows GET /actes.
type ActeFilter struct {
	ListQuery
	MairieID *uint64
	Statut   *model.StatutActe
	Annee    *int
}
