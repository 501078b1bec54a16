package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/civil-registry/internal/model"
)

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		op      Operation
		allowed []model.Role
	}{
		{VilleWrite, []model.Role{model.RoleSuperAdmin}},
		{MairieUpdate, []model.Role{model.RoleSuperAdmin, model.RoleAdminMairie}},
		{UserWrite, []model.Role{model.RoleSuperAdmin, model.RoleAdminMairie}},
		{MariageCreate, []model.Role{model.RoleSuperAdmin, model.RoleAdminMairie, model.RoleAgent}},
		{MariageValidate, []model.Role{model.RoleSuperAdmin, model.RoleAdminMairie}},
		{MariageDelete, []model.Role{model.RoleSuperAdmin, model.RoleAdminMairie}},
		{ActeGenerate, []model.Role{model.RoleSuperAdmin, model.RoleAdminMairie, model.RoleAgent}},
		{ActeCancel, []model.Role{model.RoleSuperAdmin}},
		{DashboardRead, model.AllRoles},
		{MariageRead, model.AllRoles},
	}
	for _, tc := range cases {
		allowed := map[model.Role]bool{}
		for _, r := range tc.allowed {
			allowed[r] = true
		}
		for _, r := range model.AllRoles {
			assert.Equal(t, allowed[r], Allowed(tc.op, r), "%s for %s", tc.op, r)
		}
	}
}

func TestConsultationIsReadOnly(t *testing.T) {
	for op := range capabilities {
		if Allowed(op, model.RoleConsultation) {
			assert.Contains(t, []Operation{
				VilleRead, ArrondissementRead, MairieRead, MairieStats,
				MariageRead, ActeRead, DashboardRead,
			}, op)
		}
	}
}

func TestUnknownOperationDenied(t *testing.T) {
	assert.False(t, Allowed(Operation("audit.purge"), model.RoleSuperAdmin))
	assert.ErrorIs(t, Check(Operation("audit.purge"), Principal{Role: model.RoleSuperAdmin}), ErrForbidden)
}

func TestCheck(t *testing.T) {
	assert.ErrorIs(t, Check(MariageValidate, Principal{Role: model.RoleAgent}), ErrForbidden)
	assert.NoError(t, Check(MariageValidate, Principal{Role: model.RoleAdminMairie}))
}

func TestCanManageRole(t *testing.T) {
	assert.True(t, CanManageRole(model.RoleSuperAdmin, model.RoleAdminMairie))
	assert.True(t, CanManageRole(model.RoleAdminMairie, model.RoleAgent))
	assert.True(t, CanManageRole(model.RoleAdminMairie, model.RoleConsultation))
	assert.False(t, CanManageRole(model.RoleAdminMairie, model.RoleAdminMairie))
	assert.False(t, CanManageRole(model.RoleAdminMairie, model.RoleSuperAdmin))
	assert.False(t, CanManageRole(model.RoleAgent, model.RoleConsultation))
}

func TestMairieFields(t *testing.T) {
	assert.Nil(t, MairieFields(model.RoleSuperAdmin))
	fields := MairieFields(model.RoleAdminMairie)
	assert.True(t, fields["prefixeActe"])
	assert.False(t, fields["code"])
	assert.False(t, fields["isActive"])
}
