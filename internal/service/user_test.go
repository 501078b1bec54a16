package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service/mocks"
)

func newUserService(f *fixture) *UserService {
	return NewUserService(f.store.Users(), f.store.Mairies(), f.store.Tokens(), f.audit, 4)
}

func TestUserCreateByMairieAdmin(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()

	u, err := svc.Create(ctx, f.admin, UserInput{
		FullName: "Nouvel Agent", Email: "Nouvel.Agent@EtatCivil.cm", Password: "secret123",
		Role: model.RoleAgent, MairieID: &f.other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "nouvel.agent@etatcivil.cm", u.Email)
	require.NotNil(t, u.MairieID)
	assert.Equal(t, f.mairie.ID, *u.MairieID, "the admin's own mairie is forced")

	_, err = svc.Create(ctx, f.admin, UserInput{
		FullName: "Autre Admin", Email: "autre@etatcivil.cm", Password: "secret123", Role: model.RoleAdminMairie,
	})
	assert.ErrorIs(t, err, ErrCreationRoleInterdite)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	_, err = svc.Create(ctx, f.admin, UserInput{
		FullName: "Doublon", Email: "agent@etatcivil.cm", Password: "secret123", Role: model.RoleAgent,
	})
	assert.ErrorIs(t, err, model.ErrEmailExiste)
}

func TestUserCreateMairiePairing(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.super, UserInput{
		FullName: "Sans Mairie", Email: "sans@etatcivil.cm", Password: "secret123", Role: model.RoleAgent,
	})
	assert.ErrorIs(t, err, model.ErrMairieRequise)

	_, err = svc.Create(ctx, f.super, UserInput{
		FullName: "Super Deux", Email: "super2@etatcivil.cm", Password: "secret123",
		Role: model.RoleSuperAdmin, MairieID: &f.mairie.ID,
	})
	assert.ErrorIs(t, err, model.ErrSuperAdminSansMairie)

	missing := uint64(999)
	_, err = svc.Create(ctx, f.super, UserInput{
		FullName: "Perdu", Email: "perdu@etatcivil.cm", Password: "secret123",
		Role: model.RoleAgent, MairieID: &missing,
	})
	assert.ErrorIs(t, err, model.ErrMairieInconnue)
}

func TestUserTenantScoping(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()

	_, err := svc.Get(ctx, f.admin, f.outside.UserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Get(ctx, f.admin, f.super.UserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	page, err := svc.List(ctx, f.admin, repository.UserFilter{MairieID: &f.other.ID})
	require.NoError(t, err)
	for _, u := range page.Data {
		assert.Equal(t, f.mairie.ID, *u.MairieID)
	}
	assert.EqualValues(t, 3, page.Meta.Total)
}

func TestUserSelfProtection(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, f.admin, f.admin.UserID), model.ErrSuppressionSoiMeme)
	_, err := svc.ToggleStatus(ctx, f.admin, f.admin.UserID)
	assert.ErrorIs(t, err, model.ErrStatutSoiMeme)
}

func TestUserDeactivationRevokesRefreshTokens(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()
	tokens := f.store.Tokens()
	require.NoError(t, tokens.StoreRefresh(ctx, f.agent.UserID, "agent-hash", time.Now().Add(time.Hour)))

	u, err := svc.ToggleStatus(ctx, f.admin, f.agent.UserID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	_, err = tokens.ValidateRefresh(ctx, "agent-hash")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	logs, err := f.audit.Latest(ctx, &f.mairie.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ActionDeactivate, logs[0].Action)

	u, err = svc.ToggleStatus(ctx, f.admin, f.agent.UserID)
	require.NoError(t, err)
	assert.True(t, u.IsActive)
}

func TestUserAdminCannotTouchAdmins(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()
	other := f.addUser(t, "Second Admin", "admin2@etatcivil.cm", model.RoleAdminMairie, &f.mairie.ID)

	assert.ErrorIs(t, svc.Delete(ctx, f.admin, other.UserID), authz.ErrForbidden)

	promote := model.RoleAdminMairie
	_, err := svc.Update(ctx, f.admin, f.agent.UserID, UserPatch{Role: &promote})
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

type userMocks struct {
	users  *mocks.MockUserStore
	tokens *mocks.MockTokenStore
	audit  *mocks.MockAuditStore
	svc    *UserService
}

func newMockedUserService(t *testing.T) userMocks {
	ctrl := gomock.NewController(t)
	m := userMocks{
		users:  mocks.NewMockUserStore(ctrl),
		tokens: mocks.NewMockTokenStore(ctrl),
		audit:  mocks.NewMockAuditStore(ctrl),
	}
	rec := NewRecorder(m.audit)
	rec.spawn = func(fn func()) { fn() }
	m.svc = NewUserService(m.users, mocks.NewMockMairieStore(ctrl), m.tokens, rec, 4)
	return m
}

func TestUserDeleteAuditsOnlyAfterDelete(t *testing.T) {
	ctx := context.Background()
	super := authz.Principal{UserID: 1, Role: model.RoleSuperAdmin}
	mairieID := uint64(2)
	agent := &model.User{ID: 7, FullName: "Agent Douala", Role: model.RoleAgent, MairieID: &mairieID, IsActive: true}

	m := newMockedUserService(t)
	m.users.EXPECT().GetByID(ctx, uint64(7)).Return(agent, nil)
	m.users.EXPECT().Delete(ctx, uint64(7)).Return(errors.New("lock wait timeout"))
	assert.Error(t, m.svc.Delete(ctx, super, 7))

	m = newMockedUserService(t)
	m.users.EXPECT().GetByID(ctx, uint64(7)).Return(agent, nil)
	gomock.InOrder(
		m.users.EXPECT().Delete(ctx, uint64(7)).Return(nil),
		m.audit.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *model.AuditLog) error {
			assert.Equal(t, model.ActionDelete, e.Action)
			require.NotNil(t, e.OldValues)
			assert.Contains(t, *e.OldValues, "Agent Douala")
			return nil
		}),
	)
	require.NoError(t, m.svc.Delete(ctx, super, 7))
}

func TestUserDeactivationAuditedWhenRevocationFails(t *testing.T) {
	ctx := context.Background()
	super := authz.Principal{UserID: 1, Role: model.RoleSuperAdmin}
	mairieID := uint64(2)
	agent := &model.User{ID: 7, FullName: "Agent Douala", Role: model.RoleAgent, MairieID: &mairieID, IsActive: true}

	m := newMockedUserService(t)
	m.users.EXPECT().GetByID(ctx, uint64(7)).Return(agent, nil)
	gomock.InOrder(
		m.users.EXPECT().SetActive(ctx, uint64(7), false).Return(nil),
		m.audit.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *model.AuditLog) error {
			assert.Equal(t, model.ActionDeactivate, e.Action)
			return nil
		}),
		m.tokens.EXPECT().RevokeAllForUser(ctx, uint64(7)).Return(errors.New("connection reset")),
	)
	_, err := m.svc.ToggleStatus(ctx, super, 7)
	assert.Error(t, err)
}
