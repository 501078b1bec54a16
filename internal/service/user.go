package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/utils"
)

// UserService manages accounts. Mairie administrators only see and manage
// agents and read-only users of their own mairie.
type UserService struct {
	users      UserStore
	mairies    MairieStore
	tokens     TokenStore
	audit      *Recorder
	bcryptCost int
}

func NewUserService(users UserStore, mairies MairieStore, tokens TokenStore, audit *Recorder, bcryptCost int) *UserService {
	return &UserService{users: users, mairies: mairies, tokens: tokens, audit: audit, bcryptCost: bcryptCost}
}

// UserInput is the body of POST /users.
type UserInput struct {
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Telephone *string    `json:"telephone"`
	Role      model.Role `json:"role"`
	MairieID  *uint64    `json:"mairieId"`
	IsActive  *bool      `json:"isActive"`
}

// UserPatch is the body of PUT /users/:id; nil fields are left untouched.
type UserPatch struct {
	FullName  *string     `json:"fullName"`
	Email     *string     `json:"email"`
	Telephone *string     `json:"telephone"`
	Role      *model.Role `json:"role"`
	MairieID  *uint64     `json:"mairieId"`
	IsActive  *bool       `json:"isActive"`
	Avatar    *string     `json:"avatar"`
}

func userSnapshot(u *model.User) map[string]any {
	return map[string]any{"fullName": u.FullName, "email": u.Email, "role": u.Role}
}

// List returns a page of accounts visible to p.
func (s *UserService) List(ctx context.Context, p authz.Principal, f repository.UserFilter) (repository.Page[model.User], error) {
	f.ListQuery = f.ListQuery.Normalize(20)
	f.MairieID = p.ScopeByTenant(f.MairieID)
	items, total, err := s.users.List(ctx, f)
	if err != nil {
		return repository.Page[model.User]{}, err
	}
	return repository.NewPage(items, total, f.ListQuery), nil
}

// Get returns one account. Accounts of another mairie are reported as
// missing.
func (s *UserService) Get(ctx context.Context, p authz.Principal, id uint64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccessOptional(u.MairieID) {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

// resolveMairie applies the role/mairie pairing rule and returns the
// mairie the account must belong to.
func (s *UserService) resolveMairie(ctx context.Context, p authz.Principal, role model.Role, requested *uint64) (*uint64, error) {
	if !p.IsSuperAdmin() {
		return p.MairieID, nil
	}
	if role == model.RoleSuperAdmin {
		if requested != nil {
			return nil, model.ErrSuperAdminSansMairie
		}
		return nil, nil
	}
	if requested == nil {
		return nil, model.ErrMairieRequise
	}
	ok, err := s.mairies.Exists(ctx, *requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrMairieInconnue
	}
	return requested, nil
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, p authz.Principal, in UserInput) (*model.User, error) {
	c := checks{}
	c.length("fullName", in.FullName, 2, 255)
	c.email("email", in.Email)
	c.password("password", in.Password)
	if !in.Role.Valid() {
		c.fail("role", "Rôle invalide")
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	if !authz.CanManageRole(p.Role, in.Role) {
		return nil, ErrCreationRoleInterdite
	}
	mairieID, err := s.resolveMairie(ctx, p, in.Role, in.MairieID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        repository.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Telephone:    trimPtr(in.Telephone),
		Role:         in.Role,
		MairieID:     mairieID,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.ErrEmailExiste
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.ErrMairieInconnue
		}
		return nil, err
	}

	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      model.ActionCreate,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		New:         userSnapshot(u),
		Description: "Création de l'utilisateur " + u.FullName,
	})
	return s.users.GetByID(ctx, u.ID)
}

// Update changes profile, role, tenant or activation of an account.
func (s *UserService) Update(ctx context.Context, p authz.Principal, id uint64, in UserPatch) (*model.User, error) {
	u, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageRole(p.Role, u.Role) {
		return nil, ErrRoleInterdit
	}

	c := checks{}
	if in.FullName != nil {
		c.length("fullName", *in.FullName, 2, 255)
	}
	if in.Email != nil {
		c.email("email", *in.Email)
	}
	if in.Role != nil && !in.Role.Valid() {
		c.fail("role", "Rôle invalide")
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	old := userSnapshot(u)
	old["isActive"] = u.IsActive

	role := u.Role
	if in.Role != nil {
		if !authz.CanManageRole(p.Role, *in.Role) {
			return nil, ErrRoleInterdit
		}
		role = *in.Role
	}
	if p.IsSuperAdmin() {
		requested := u.MairieID
		if in.MairieID != nil {
			requested = in.MairieID
		}
		if role == model.RoleSuperAdmin {
			requested = nil
		}
		mairieID, err := s.resolveMairie(ctx, p, role, requested)
		if err != nil {
			return nil, err
		}
		u.MairieID = mairieID
	}
	u.Role = role

	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		u.Email = repository.NormalizeEmail(*in.Email)
	}
	if in.Telephone != nil {
		u.Telephone = trimPtr(in.Telephone)
	}
	if in.Avatar != nil {
		u.Avatar = trimPtr(in.Avatar)
	}
	if in.IsActive != nil {
		if *in.IsActive != u.IsActive && u.ID == p.UserID {
			return nil, model.ErrStatutSoiMeme
		}
		u.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.ErrEmailExiste
		}
		return nil, err
	}

	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      model.ActionUpdate,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		Old:         old,
		New:         userSnapshot(u),
		Description: "Modification de l'utilisateur " + u.FullName,
	})
	return s.users.GetByID(ctx, u.ID)
}

// Delete removes an account. The audit entry keeps the snapshot read
// before the delete.
func (s *UserService) Delete(ctx context.Context, p authz.Principal, id uint64) error {
	if id == p.UserID {
		return model.ErrSuppressionSoiMeme
	}
	u, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	if !authz.CanManageRole(p.Role, u.Role) {
		return ErrRoleInterdit
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      model.ActionDelete,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		Old:         userSnapshot(u),
		Description: "Suppression de l'utilisateur " + u.FullName,
	})
	return nil
}

// ToggleStatus flips the activation flag. Deactivation also revokes the
// account's refresh tokens.
func (s *UserService) ToggleStatus(ctx context.Context, p authz.Principal, id uint64) (*model.User, error) {
	if id == p.UserID {
		return nil, model.ErrStatutSoiMeme
	}
	u, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageRole(p.Role, u.Role) {
		return nil, ErrRoleInterdit
	}
	active := !u.IsActive
	if err := s.users.SetActive(ctx, u.ID, active); err != nil {
		return nil, err
	}
	u.IsActive = active

	action, verb := model.ActionActivate, "Activation"
	if !active {
		action, verb = model.ActionDeactivate, "Désactivation"
	}
	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      action,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		Description: verb + " de l'utilisateur " + u.FullName,
	})
	if !active {
		if err := s.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
			return nil, err
		}
	}
	return u, nil
}
