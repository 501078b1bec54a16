package service

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/utils"
)

// AuthError rejects a caller's credentials or session. Msg is shown to the
// client and the handler answers 401.
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return e.Msg }

var (
	// ErrIdentifiants is used for both an unknown email and a wrong
	// password so the response does not reveal which accounts exist.
	ErrIdentifiants    = &AuthError{Msg: "Email ou mot de passe incorrect"}
	ErrCompteDesactive = &AuthError{Msg: "Votre compte a été désactivé. Veuillez contacter un administrateur."}
	ErrSessionInvalide = &AuthError{Msg: "Session invalide ou expirée"}
)

// ForbiddenError is a role refusal carrying its own message. It matches
// authz.ErrForbidden.
type ForbiddenError struct{ Msg string }

func (e *ForbiddenError) Error() string { return e.Msg }

func (e *ForbiddenError) Is(target error) bool { return target == authz.ErrForbidden }

var (
	ErrCreationRoleInterdite = &ForbiddenError{Msg: "Vous ne pouvez créer que des agents ou utilisateurs en consultation"}
	ErrRoleInterdit          = &ForbiddenError{Msg: model.ErrRoleNonAutorise.Msg}
	ErrAnnulationReservee    = &ForbiddenError{Msg: "Seul le super admin peut annuler un acte"}
)

// ValidationError lists malformed input fields. The handler answers 422.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// checks accumulates field errors; err returns nil when none were found.
type checks map[string]string

func (c checks) fail(field, msg string) {
	if _, ok := c[field]; !ok {
		c[field] = msg
	}
}

func (c checks) required(field, v string) bool {
	if strings.TrimSpace(v) == "" {
		c.fail(field, "Ce champ est requis")
		return false
	}
	return true
}

func (c checks) length(field, v string, min, max int) {
	if !c.required(field, v) {
		return
	}
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n < min || n > max {
		c.fail(field, fmt.Sprintf("Doit contenir entre %d et %d caractères", min, max))
	}
}

func (c checks) email(field, v string) {
	if !c.required(field, v) {
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(v)); err != nil {
		c.fail(field, "Adresse email invalide")
	}
}

func (c checks) password(field, v string) {
	if utf8.RuneCountInString(v) < utils.MinPasswordLength {
		c.fail(field, fmt.Sprintf("Doit contenir au moins %d caractères", utils.MinPasswordLength))
	}
}

func (c checks) err() error {
	if len(c) == 0 {
		return nil
	}
	return &ValidationError{Fields: c}
}

// dependentsRule translates a refused delete into the user-facing rule.
func dependentsRule(err error) error {
	var de *repository.DependentsError
	if !errors.As(err, &de) {
		return err
	}
	switch de.Table {
	case "arrondissements":
		return model.ErrVilleNonVide
	case "mairies":
		return model.ErrArrondissementNonVide
	case "users":
		return model.ErrMairieAvecUtilisateurs
	case "mariages":
		return model.ErrMairieAvecMariages
	}
	return err
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
