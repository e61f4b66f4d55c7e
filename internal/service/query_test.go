package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rankforge/audit-service/internal/entity"
	"github.com/rankforge/audit-service/internal/service"
)

func TestService_Runs_ClientScopeApplied(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()

	var captured entity.RunFilter

	ts.repo.EXPECT().Runs(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, filter entity.RunFilter) ([]entity.AuditRun, int, error) {
			captured = filter
			return []entity.AuditRun{ts.run(entity.RunStatusCompleted)}, 1, nil
		})

	runs, total, err := ts.s.Runs(ctx, entity.RunFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, runs, 1)

	require.Equal(t, []uuid.UUID{ts.clientID}, captured.ClientIDs)
	require.Nil(t, captured.AgencyID)
}

func TestService_Runs_AgencyScopeApplied(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.agencyAdminCtx()

	var captured entity.RunFilter

	ts.repo.EXPECT().Runs(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, filter entity.RunFilter) ([]entity.AuditRun, int, error) {
			captured = filter
			return nil, 0, nil
		})

	_, _, err := ts.s.Runs(ctx, entity.RunFilter{})
	require.NoError(t, err)

	require.NotNil(t, captured.AgencyID)
	require.Equal(t, ts.agencyID, *captured.AgencyID)
	require.Empty(t, captured.ClientIDs)
}

func TestService_Runs_FilterNormalized(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.agencyAdminCtx()

	var captured entity.RunFilter

	ts.repo.EXPECT().Runs(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, filter entity.RunFilter) ([]entity.AuditRun, int, error) {
			captured = filter
			return nil, 0, nil
		})

	_, _, err := ts.s.Runs(ctx, entity.RunFilter{Limit: 100500, SortBy: "emoji", OrderBy: "sideways"})
	require.NoError(t, err)

	require.Equal(t, uint64(service.DefaultPageLimit), captured.Limit)
	require.Equal(t, uint64(1), captured.Page)
	require.Equal(t, entity.RunSortByCreatedAt, captured.SortBy)
	require.Equal(t, entity.DESC, captured.OrderBy)
}

func TestService_Runs_SalesConsultantForbidden(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := entity.CtxWithIdentity(context.Background(), entity.Identity{
		UserID:   uuid.Must(uuid.NewV4()),
		Role:     entity.RoleSalesConsultant,
		TenantID: ts.tenantID,
		AgencyID: ts.agencyID,
	})

	_, _, err := ts.s.Runs(ctx, entity.RunFilter{})
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func TestService_Runs_Unauthenticated(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)

	_, _, err := ts.s.Runs(context.Background(), entity.RunFilter{})
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Runs_UnresolvedScope(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := entity.CtxWithIdentity(context.Background(), entity.Identity{
		UserID:   uuid.Must(uuid.NewV4()),
		Role:     entity.RoleAgencyAdmin,
		TenantID: ts.tenantID,
		// no agency binding
	})

	_, _, err := ts.s.Runs(ctx, entity.RunFilter{})
	require.ErrorIs(t, err, entity.ErrUnresolvedScope)
}

func TestService_Findings(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	run := ts.run(entity.RunStatusCompleted)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)

	var captured entity.FindingFilter

	ts.repo.EXPECT().Findings(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, filter entity.FindingFilter) ([]entity.AuditFinding, int, error) {
			captured = filter
			return []entity.AuditFinding{{ID: uuid.Must(uuid.NewV4()), RunID: run.ID}}, 1, nil
		})

	findings, total, err := ts.s.Findings(ctx, run.ID, entity.FindingFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, findings, 1)

	require.NotNil(t, captured.RunID)
	require.Equal(t, run.ID, *captured.RunID)
	require.Equal(t, []uuid.UUID{ts.clientID}, captured.ClientIDs)
	require.Equal(t, entity.FindingSortByPriority, captured.SortBy)
}

func TestService_Findings_CrossTenantRunMaskedAsNotFound(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	run := ts.run(entity.RunStatusCompleted)

	foreign := entity.Ownership{
		TenantID: uuid.Must(uuid.NewV4()),
		AgencyID: uuid.Must(uuid.NewV4()),
		ClientID: run.ClientID,
	}

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, run.ClientID).Return(foreign, nil)

	_, _, err := ts.s.Findings(ctx, run.ID, entity.FindingFilter{})
	require.ErrorIs(t, err, entity.ErrNotFound)
	require.NotErrorIs(t, err, entity.ErrForbidden)
}

func TestService_RunSummary(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	run := ts.run(entity.RunStatusCompleted)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)
	ts.repo.EXPECT().RunSummary(ctx, run.ID).Return(entity.RunSummary{
		RunID: run.ID,
		Total: 3,
		BySeverity: map[entity.Severity]int{
			entity.SeverityP1: 1,
			entity.SeverityP3: 2,
		},
		ByStatus: map[entity.FindingStatus]int{
			entity.FindingStatusOpen: 3,
		},
	}, nil)

	summary, err := ts.s.RunSummary(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.BySeverity[entity.SeverityP1])
}

func TestService_UpdateFindingStatus(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	findingID := uuid.Must(uuid.NewV4())

	ts.repo.EXPECT().FindingByID(ctx, findingID).Return(entity.AuditFinding{
		ID:       findingID,
		ClientID: ts.clientID,
		Status:   entity.FindingStatusOpen,
	}, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)
	ts.repo.EXPECT().
		UpdateFindingStatus(ctx, findingID, entity.FindingStatusResolved, gomock.Any()).
		Return(nil)

	finding, err := ts.s.UpdateFindingStatus(ctx, findingID, entity.FindingStatusResolved)
	require.NoError(t, err)
	require.Equal(t, entity.FindingStatusResolved, finding.Status)
}

func TestService_UpdateFindingStatus_InvalidStatus(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()

	_, err := ts.s.UpdateFindingStatus(ctx, uuid.Must(uuid.NewV4()), entity.FindingStatus("NOPE"))
	require.ErrorIs(t, err, entity.ErrValidation)
}
