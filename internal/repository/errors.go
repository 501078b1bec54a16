// Package repository holds the MySQL-backed stores. The sentinel errors
// below let services and handlers tell failure kinds apart without
// looking at driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested row does not exist. Tenant
// filtered lookups also return it for rows owned by another mairie.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller may not touch a resource.
// Handlers translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of the
// current state, such as generating a second certificate.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when a unique key would be violated.
var ErrDuplicate = errors.New("duplicate")

// ErrHasDependents is returned when a delete is refused because child rows
// still reference the target.
var ErrHasDependents = errors.New("has dependents")

// isDuplicate reports whether err is MySQL error 1062 (duplicate entry).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isForeignKey reports whether err is MySQL error 1451 or 1452 (foreign key
// violation on delete or insert).
func isForeignKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1451 || me.Number == 1452)
}
