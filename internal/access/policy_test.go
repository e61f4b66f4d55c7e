package access_test

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/rankforge/audit-service/internal/access"
	"github.com/rankforge/audit-service/internal/entity"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tenantID := uuid.Must(uuid.NewV4())
	agencyID := uuid.Must(uuid.NewV4())
	clientID := uuid.Must(uuid.NewV4())
	otherClientID := uuid.Must(uuid.NewV4())

	target := entity.Ownership{TenantID: tenantID, AgencyID: agencyID, ClientID: clientID}

	tests := []struct {
		name     string
		identity entity.Identity
		action   access.Action
		target   entity.Ownership
		allowed  bool
	}{
		{
			name:     "system admin may do anything",
			identity: entity.Identity{Role: entity.RoleSystemAdmin, TenantID: tenantID},
			action:   access.ActionDeleteAudit,
			target:   target,
			allowed:  true,
		},
		{
			name:     "system admin crosses tenants",
			identity: entity.Identity{Role: entity.RoleSystemAdmin, TenantID: uuid.Must(uuid.NewV4())},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  true,
		},
		{
			name:     "agency admin approves intakes in own agency",
			identity: entity.Identity{Role: entity.RoleAgencyAdmin, TenantID: tenantID, AgencyID: agencyID},
			action:   access.ActionApproveIntake,
			target:   target,
			allowed:  true,
		},
		{
			name:     "agency admin denied outside own agency",
			identity: entity.Identity{Role: entity.RoleAgencyAdmin, TenantID: tenantID, AgencyID: uuid.Must(uuid.NewV4())},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  false,
		},
		{
			name: "agency staff reads any client in agency",
			identity: entity.Identity{
				Role: entity.RoleAgencyStaff, TenantID: tenantID, AgencyID: agencyID,
				ClientIDs: []uuid.UUID{otherClientID},
			},
			action:  access.ActionReadAudit,
			target:  target,
			allowed: true,
		},
		{
			name: "agency staff writes only to assigned clients",
			identity: entity.Identity{
				Role: entity.RoleAgencyStaff, TenantID: tenantID, AgencyID: agencyID,
				ClientIDs: []uuid.UUID{otherClientID},
			},
			action:  access.ActionSubmitIntake,
			target:  target,
			allowed: false,
		},
		{
			name: "agency staff writes to an assigned client",
			identity: entity.Identity{
				Role: entity.RoleAgencyStaff, TenantID: tenantID, AgencyID: agencyID,
				ClientIDs: []uuid.UUID{clientID},
			},
			action:  access.ActionSubmitIntake,
			target:  target,
			allowed: true,
		},
		{
			name:     "client admin submits own intake",
			identity: entity.Identity{Role: entity.RoleClientAdmin, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionSubmitIntake,
			target:   target,
			allowed:  true,
		},
		{
			name:     "client admin requests runs",
			identity: entity.Identity{Role: entity.RoleClientAdmin, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionRequestRun,
			target:   target,
			allowed:  true,
		},
		{
			name:     "client admin may not approve intakes",
			identity: entity.Identity{Role: entity.RoleClientAdmin, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionApproveIntake,
			target:   target,
			allowed:  false,
		},
		{
			name:     "client admin may not cancel runs",
			identity: entity.Identity{Role: entity.RoleClientAdmin, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionCancelRun,
			target:   target,
			allowed:  false,
		},
		{
			name:     "client admin denied on another client",
			identity: entity.Identity{Role: entity.RoleClientAdmin, TenantID: tenantID, AgencyID: agencyID, ClientID: otherClientID},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  false,
		},
		{
			name:     "client staff reads own client",
			identity: entity.Identity{Role: entity.RoleClientStaff, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  true,
		},
		{
			name:     "client staff updates findings",
			identity: entity.Identity{Role: entity.RoleClientStaff, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionUpdateFinding,
			target:   target,
			allowed:  true,
		},
		{
			name:     "client staff may not delete",
			identity: entity.Identity{Role: entity.RoleClientStaff, TenantID: tenantID, AgencyID: agencyID, ClientID: clientID},
			action:   access.ActionDeleteAudit,
			target:   target,
			allowed:  false,
		},
		{
			name:     "sales consultant reads leads",
			identity: entity.Identity{Role: entity.RoleSalesConsultant, TenantID: tenantID, AgencyID: agencyID},
			action:   access.ActionReadLead,
			target:   target,
			allowed:  true,
		},
		{
			name:     "sales consultant never touches audits",
			identity: entity.Identity{Role: entity.RoleSalesConsultant, TenantID: tenantID, AgencyID: agencyID},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  false,
		},
		{
			name:     "cross tenant always denied",
			identity: entity.Identity{Role: entity.RoleAgencyAdmin, TenantID: uuid.Must(uuid.NewV4()), AgencyID: agencyID},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  false,
		},
		{
			name:     "unknown role denied",
			identity: entity.Identity{Role: entity.Role("INTERN"), TenantID: tenantID},
			action:   access.ActionReadAudit,
			target:   target,
			allowed:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := access.Authorize(tt.identity, tt.action, tt.target)

			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, entity.ErrForbidden)
			}
		})
	}
}

func TestAuthorize_DenialRevealsNoEntityContents(t *testing.T) {
	t.Parallel()

	target := entity.Ownership{
		TenantID: uuid.Must(uuid.NewV4()),
		AgencyID: uuid.Must(uuid.NewV4()),
		ClientID: uuid.Must(uuid.NewV4()),
	}

	identity := entity.Identity{
		Role:     entity.RoleClientAdmin,
		TenantID: uuid.Must(uuid.NewV4()),
		ClientID: uuid.Must(uuid.NewV4()),
	}

	err := access.Authorize(identity, access.ActionReadAudit, target)
	require.ErrorIs(t, err, entity.ErrForbidden)
	require.NotContains(t, err.Error(), target.TenantID.String())
	require.NotContains(t, err.Error(), target.ClientID.String())
}
