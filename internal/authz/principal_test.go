package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func TestScopeByTenant(t *testing.T) {
	super := Principal{UserID: 1, Role: model.RoleSuperAdmin}
	agent := Principal{UserID: 2, Role: model.RoleAgent, MairieID: u64(10)}

	t.Run("super admin without filter sees every tenant", func(t *testing.T) {
		assert.Nil(t, super.ScopeByTenant(nil))
	})

	t.Run("super admin explicit filter is honored", func(t *testing.T) {
		got := super.ScopeByTenant(u64(42))
		require.NotNil(t, got)
		assert.Equal(t, uint64(42), *got)
	})

	t.Run("tenant user is pinned to own tenant", func(t *testing.T) {
		got := agent.ScopeByTenant(nil)
		require.NotNil(t, got)
		assert.Equal(t, uint64(10), *got)
	})

	t.Run("foreign tenant filter is silently overridden", func(t *testing.T) {
		got := agent.ScopeByTenant(u64(99))
		require.NotNil(t, got)
		assert.Equal(t, uint64(10), *got)
	})

	t.Run("tenant user without mairie matches nothing", func(t *testing.T) {
		got := Principal{Role: model.RoleAgent}.ScopeByTenant(u64(5))
		require.NotNil(t, got)
		assert.Equal(t, uint64(0), *got)
	})
}

func TestCanAccess(t *testing.T) {
	super := Principal{Role: model.RoleSuperAdmin}
	admin := Principal{Role: model.RoleAdminMairie, MairieID: u64(3)}

	assert.True(t, super.CanAccess(99))
	assert.True(t, admin.CanAccess(3))
	assert.False(t, admin.CanAccess(4))

	assert.True(t, super.CanAccessOptional(nil))
	assert.False(t, admin.CanAccessOptional(nil))
	assert.True(t, admin.CanAccessOptional(u64(3)))
}
