package entity_test

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/rankforge/audit-service/internal/entity"
)

func TestResolveScope(t *testing.T) {
	t.Parallel()

	tenantID := uuid.Must(uuid.NewV4())
	agencyID := uuid.Must(uuid.NewV4())
	clientID := uuid.Must(uuid.NewV4())

	t.Run("system admin needs only a tenant", func(t *testing.T) {
		t.Parallel()

		scope, err := entity.ResolveScope(entity.Identity{
			Role:     entity.RoleSystemAdmin,
			TenantID: tenantID,
		})
		require.NoError(t, err)
		require.Equal(t, tenantID, scope.TenantID)
		require.False(t, scope.ClientBound())
	})

	t.Run("agency admin needs an agency binding", func(t *testing.T) {
		t.Parallel()

		scope, err := entity.ResolveScope(entity.Identity{
			Role:     entity.RoleAgencyAdmin,
			TenantID: tenantID,
			AgencyID: agencyID,
		})
		require.NoError(t, err)
		require.Equal(t, agencyID, scope.AgencyID)

		_, err = entity.ResolveScope(entity.Identity{
			Role:     entity.RoleAgencyAdmin,
			TenantID: tenantID,
		})
		require.ErrorIs(t, err, entity.ErrUnresolvedScope)
	})

	t.Run("agency staff carries assigned clients", func(t *testing.T) {
		t.Parallel()

		assigned := []uuid.UUID{uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())}

		scope, err := entity.ResolveScope(entity.Identity{
			Role:      entity.RoleAgencyStaff,
			TenantID:  tenantID,
			AgencyID:  agencyID,
			ClientIDs: assigned,
		})
		require.NoError(t, err)
		require.Equal(t, assigned, scope.ClientIDs)
	})

	t.Run("client roles need a client binding", func(t *testing.T) {
		t.Parallel()

		for _, role := range []entity.Role{entity.RoleClientAdmin, entity.RoleClientStaff} {
			scope, err := entity.ResolveScope(entity.Identity{
				Role:     role,
				TenantID: tenantID,
				AgencyID: agencyID,
				ClientID: clientID,
			})
			require.NoError(t, err)
			require.True(t, scope.ClientBound())

			_, err = entity.ResolveScope(entity.Identity{
				Role:     role,
				TenantID: tenantID,
				AgencyID: agencyID,
			})
			require.ErrorIs(t, err, entity.ErrUnresolvedScope)
		}
	})

	t.Run("missing tenant always fails", func(t *testing.T) {
		t.Parallel()

		_, err := entity.ResolveScope(entity.Identity{
			Role:     entity.RoleSystemAdmin,
			AgencyID: agencyID,
			ClientID: clientID,
		})
		require.ErrorIs(t, err, entity.ErrUnresolvedScope)
	})

	t.Run("unknown role fails validation", func(t *testing.T) {
		t.Parallel()

		_, err := entity.ResolveScope(entity.Identity{
			Role:     entity.Role("SUPER_USER"),
			TenantID: tenantID,
		})
		require.ErrorIs(t, err, entity.ErrValidation)
	})
}
