package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rankforge/audit-service/internal/entity"
)

func (ts *testService) approvedIntake() entity.AuditIntake {
	return entity.AuditIntake{
		ID:       uuid.Must(uuid.NewV4()),
		ClientID: ts.clientID,
		Status:   entity.IntakeStatusApproved,
	}
}

func (ts *testService) run(status entity.RunStatus) entity.AuditRun {
	return entity.AuditRun{
		ID:       uuid.Must(uuid.NewV4()),
		ClientID: ts.clientID,
		IntakeID: uuid.Must(uuid.NewV4()),
		Status:   status,
	}
}

func TestService_RequestRun(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	intake := ts.approvedIntake()

	ts.repo.EXPECT().IntakeByID(ctx, intake.ID).Return(intake, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)

	var created entity.AuditRun

	ts.repo.EXPECT().CreateRun(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, run entity.AuditRun) error {
			created = run
			return nil
		})
	ts.producer.EXPECT().RunRequested(ctx, gomock.Any())

	run, err := ts.s.RequestRun(ctx, intake.ID, entity.RunScope{MaxPages: 500})
	require.NoError(t, err)

	require.Equal(t, entity.RunStatusQueued, run.Status)
	require.Equal(t, ts.clientID, run.ClientID)
	require.Equal(t, intake.ID, run.IntakeID)
	require.Equal(t, 500, run.Scope.MaxPages)
	require.Equal(t, created.ID, run.ID)
}

func TestService_RequestRun_IntakeNotApproved(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()

	intake := ts.approvedIntake()
	intake.Status = entity.IntakeStatusSubmitted

	ts.repo.EXPECT().IntakeByID(ctx, intake.ID).Return(intake, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)

	_, err := ts.s.RequestRun(ctx, intake.ID, entity.RunScope{})
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestService_RequestRun_ActiveRunExists(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	intake := ts.approvedIntake()

	ts.repo.EXPECT().IntakeByID(ctx, intake.ID).Return(intake, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)
	ts.repo.EXPECT().CreateRun(ctx, gomock.Any()).Return(entity.ErrActiveRunExists)

	_, err := ts.s.RequestRun(ctx, intake.ID, entity.RunScope{})
	require.ErrorIs(t, err, entity.ErrActiveRunExists)
}

func TestService_CrawlerStarted(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusQueued)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().StartRun(ctx, run.ID, gomock.Any()).Return(nil)

	err := ts.s.CrawlerStarted(ctx, run.ID)
	require.NoError(t, err)
}

func TestService_CrawlerStarted_AlreadyRunningIsIdempotent(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusRunning)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)

	err := ts.s.CrawlerStarted(ctx, run.ID)
	require.NoError(t, err)
}

func TestService_CrawlerStarted_TerminalRun(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusCanceled)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)

	err := ts.s.CrawlerStarted(ctx, run.ID)
	require.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestService_CrawlerStarted_LostRaceToConcurrentStart(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusQueued)

	started := run
	started.Status = entity.RunStatusRunning

	gomock.InOrder(
		ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil),
		ts.repo.EXPECT().StartRun(ctx, run.ID, gomock.Any()).Return(entity.ErrNotFound),
		ts.repo.EXPECT().RunByID(ctx, run.ID).Return(started, nil),
	)

	err := ts.s.CrawlerStarted(ctx, run.ID)
	require.NoError(t, err)
}

func TestService_FindingsReceived(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusRunning)

	raw := []entity.RawFinding{
		{Title: "Missing meta descriptions", Category: "on-page", Impact: 5, Effort: 1},
		{Title: "Broken canonical tags", Category: "technical", Impact: 9, Effort: 0},
	}

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().CreateFindings(ctx, gomock.Any(), gomock.Any()).Return(nil)
	ts.producer.EXPECT().FindingCreated(ctx, gomock.Any()).Times(2)

	findings, err := ts.s.FindingsReceived(ctx, run.ID, raw)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	require.Equal(t, entity.FindingStatusOpen, findings[0].Status)
	require.Equal(t, 9, findings[0].PriorityScore)
	require.Equal(t, entity.SeverityP1, findings[0].Severity)

	// Out-of-range crawler scores are clamped before scoring.
	require.Equal(t, 5, findings[1].ImpactScore)
	require.Equal(t, 1, findings[1].EffortScore)
	require.Equal(t, 9, findings[1].PriorityScore)
}

func TestService_FindingsReceived_RunNotRunning(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusQueued)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)

	_, err := ts.s.FindingsReceived(ctx, run.ID, []entity.RawFinding{{Title: "x"}})
	require.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestService_FindingsReceived_UntitledFinding(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusRunning)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)

	_, err := ts.s.FindingsReceived(ctx, run.ID, []entity.RawFinding{{Title: "  "}})
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestService_CrawlerFinished(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusRunning)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().FinishRun(ctx, run.ID, entity.RunStatusCompleted, "", gomock.Any()).Return(nil)
	ts.producer.EXPECT().RunCompleted(ctx, gomock.Any())

	err := ts.s.CrawlerFinished(ctx, run.ID, true, "")
	require.NoError(t, err)
}

func TestService_CrawlerFinished_Failure(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusRunning)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().FinishRun(ctx, run.ID, entity.RunStatusFailed, "crawl timed out", gomock.Any()).Return(nil)
	ts.producer.EXPECT().RunFailed(ctx, gomock.Any())

	err := ts.s.CrawlerFinished(ctx, run.ID, false, "crawl timed out")
	require.NoError(t, err)
}

func TestService_CrawlerFinished_BeforeStarted(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusQueued)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)

	err := ts.s.CrawlerFinished(ctx, run.ID, true, "")
	require.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestService_CrawlerFinished_CanceledRunDiscards(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := context.Background()
	run := ts.run(entity.RunStatusCanceled)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)

	err := ts.s.CrawlerFinished(ctx, run.ID, true, "")
	require.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestService_CancelRun(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.agencyAdminCtx()
	run := ts.run(entity.RunStatusRunning)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)
	ts.repo.EXPECT().CancelRun(ctx, run.ID, gomock.Any()).Return(nil)
	ts.producer.EXPECT().RunCanceled(ctx, gomock.Any())

	canceled, err := ts.s.CancelRun(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RunStatusCanceled, canceled.Status)
	require.NotNil(t, canceled.CompletedAt)
}

func TestService_CancelRun_ClientAdminForbidden(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.clientAdminCtx()
	run := ts.run(entity.RunStatusQueued)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)

	_, err := ts.s.CancelRun(ctx, run.ID)
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func TestService_CancelRun_CompletedRun(t *testing.T) {
	t.Parallel()

	ts := newTestService(t)
	ctx := ts.agencyAdminCtx()
	run := ts.run(entity.RunStatusCompleted)

	ts.repo.EXPECT().RunByID(ctx, run.ID).Return(run, nil)
	ts.repo.EXPECT().ClientOwnership(ctx, ts.clientID).Return(ts.target, nil)

	_, err := ts.s.CancelRun(ctx, run.ID)
	require.ErrorIs(t, err, entity.ErrInvalidTransition)
}
