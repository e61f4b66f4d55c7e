package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/access"
	"github.com/rankforge/audit-service/internal/entity"
)

// RequestRun creates a QUEUED run for an approved intake and emits
// RunRequested. Fails with ErrActiveRunExists when the client already has a
// queued or running audit; the check-and-insert is a single statement backed
// by a partial unique index, so two concurrent requests cannot both win.
func (s *Service) RequestRun(ctx context.Context, intakeID uuid.UUID, scope entity.RunScope) (entity.AuditRun, error) {
	identity, err := entity.IdentityFromCtx(ctx)
	if err != nil {
		return entity.AuditRun{}, err
	}

	intake, err := s.repo.IntakeByID(ctx, intakeID)
	if err != nil {
		return entity.AuditRun{}, fmt.Errorf("get intake %s: %w", intakeID, err)
	}

	target, err := s.repo.ClientOwnership(ctx, intake.ClientID)
	if err != nil {
		return entity.AuditRun{}, fmt.Errorf("get client %s ownership: %w", intake.ClientID, err)
	}

	err = s.authorize(identity, access.ActionRequestRun, target)
	if err != nil {
		return entity.AuditRun{}, err
	}

	if intake.Status != entity.IntakeStatusApproved {
		return entity.AuditRun{}, fmt.Errorf("%w: intake %s is %s, not %s",
			entity.ErrValidation, intakeID, intake.Status, entity.IntakeStatusApproved)
	}

	now := time.Now()

	run := entity.AuditRun{
		ID:          uuid.Must(uuid.NewV4()),
		ClientID:    intake.ClientID,
		IntakeID:    intake.ID,
		InitiatedBy: identity.UserID,
		Status:      entity.RunStatusQueued,
		Scope:       scope,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.CreateRun(ctx, run)
	if err != nil {
		return entity.AuditRun{}, fmt.Errorf("create run for client %s: %w", run.ClientID, err)
	}

	s.producer.RunRequested(ctx, run)

	slog.InfoContext(ctx, "audit run queued", "run_id", run.ID, "client_id", run.ClientID, "intake_id", run.IntakeID)

	return run, nil
}

// CrawlerStarted applies the QUEUED -> RUNNING transition. Idempotent for a
// run that is already RUNNING; terminal runs yield ErrInvalidTransition.
func (s *Service) CrawlerStarted(ctx context.Context, runID uuid.UUID) error {
	run, err := s.repo.RunByID(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run %s: %w", runID, err)
	}

	if run.Status == entity.RunStatusRunning {
		return nil
	}

	if !run.Status.CanTransitionTo(entity.RunStatusRunning) {
		return fmt.Errorf("%w: run %s is %s", entity.ErrInvalidTransition, runID, run.Status)
	}

	err = s.repo.StartRun(ctx, runID, time.Now())
	if err != nil {
		if isNotFound(err) {
			return s.recheckStarted(ctx, runID)
		}

		return fmt.Errorf("start run %s: %w", runID, err)
	}

	slog.InfoContext(ctx, "audit run started", "run_id", runID)

	return nil
}

// recheckStarted resolves a lost race on StartRun: a concurrent start is a
// no-op, anything else is an invalid transition.
func (s *Service) recheckStarted(ctx context.Context, runID uuid.UUID) error {
	run, err := s.repo.RunByID(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run %s: %w", runID, err)
	}

	if run.Status == entity.RunStatusRunning {
		return nil
	}

	return fmt.Errorf("%w: run %s is %s", entity.ErrInvalidTransition, runID, run.Status)
}

// FindingsReceived scores and persists raw crawler findings. Legal only while
// the run is RUNNING; the run status itself does not change.
func (s *Service) FindingsReceived(ctx context.Context, runID uuid.UUID, raw []entity.RawFinding) ([]entity.AuditFinding, error) {
	run, err := s.repo.RunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}

	if run.Status != entity.RunStatusRunning {
		return nil, fmt.Errorf("%w: run %s is %s, findings accepted only while %s",
			entity.ErrInvalidTransition, runID, run.Status, entity.RunStatusRunning)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	now := time.Now()
	findings := make([]entity.AuditFinding, 0, len(raw))

	for _, rf := range raw {
		err = validateRawFinding(rf)
		if err != nil {
			return nil, err
		}

		impact := entity.ClampScore(rf.Impact)
		effort := entity.ClampScore(rf.Effort)
		priority, severity := entity.ScoreFinding(impact, effort)

		findings = append(findings, entity.AuditFinding{
			ID:             uuid.Must(uuid.NewV4()),
			ClientID:       run.ClientID,
			RunID:          run.ID,
			Title:          rf.Title,
			Description:    rf.Description,
			Category:       rf.Category,
			Location:       rf.Location,
			Recommendation: rf.Recommendation,
			Severity:       severity,
			Status:         entity.FindingStatusOpen,
			ImpactScore:    impact,
			EffortScore:    effort,
			PriorityScore:  priority,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	err = s.repo.CreateFindings(ctx, findings...)
	if err != nil {
		return nil, fmt.Errorf("create %d findings for run %s: %w", len(findings), runID, err)
	}

	for _, f := range findings {
		s.producer.FindingCreated(ctx, f)
	}

	slog.InfoContext(ctx, "findings recorded", "run_id", runID, "count", len(findings))

	return findings, nil
}

// CrawlerFinished applies RUNNING -> COMPLETED or RUNNING -> FAILED and emits
// the matching event. A finished callback before started is rejected with
// ErrInvalidTransition.
func (s *Service) CrawlerFinished(ctx context.Context, runID uuid.UUID, success bool, errorDetail string) error {
	run, err := s.repo.RunByID(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run %s: %w", runID, err)
	}

	status := entity.RunStatusCompleted
	if !success {
		status = entity.RunStatusFailed
	}

	if !run.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: run %s is %s", entity.ErrInvalidTransition, runID, run.Status)
	}

	now := time.Now()

	err = s.repo.FinishRun(ctx, runID, status, errorDetail, now)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: run %s changed concurrently", entity.ErrInvalidTransition, runID)
		}

		return fmt.Errorf("finish run %s as %s: %w", runID, status, err)
	}

	run.Status = status
	run.ErrorDetail = errorDetail
	run.CompletedAt = &now

	if success {
		s.producer.RunCompleted(ctx, run)
	} else {
		s.producer.RunFailed(ctx, run)
	}

	slog.InfoContext(ctx, "audit run finished", "run_id", runID, "status", status)

	return nil
}

// CancelRun marks a queued or running audit CANCELED. The crawler is notified
// via the RunCanceled event but may keep going; its late callbacks are
// discarded by the state machine.
func (s *Service) CancelRun(ctx context.Context, runID uuid.UUID) (entity.AuditRun, error) {
	identity, err := entity.IdentityFromCtx(ctx)
	if err != nil {
		return entity.AuditRun{}, err
	}

	run, err := s.repo.RunByID(ctx, runID)
	if err != nil {
		return entity.AuditRun{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	target, err := s.repo.ClientOwnership(ctx, run.ClientID)
	if err != nil {
		return entity.AuditRun{}, fmt.Errorf("get client %s ownership: %w", run.ClientID, err)
	}

	err = s.authorize(identity, access.ActionCancelRun, target)
	if err != nil {
		return entity.AuditRun{}, err
	}

	if !run.Status.CanTransitionTo(entity.RunStatusCanceled) {
		return entity.AuditRun{}, fmt.Errorf("%w: run %s is %s", entity.ErrInvalidTransition, runID, run.Status)
	}

	now := time.Now()

	err = s.repo.CancelRun(ctx, runID, now)
	if err != nil {
		if isNotFound(err) {
			return entity.AuditRun{}, fmt.Errorf("%w: run %s changed concurrently", entity.ErrInvalidTransition, runID)
		}

		return entity.AuditRun{}, fmt.Errorf("cancel run %s: %w", runID, err)
	}

	run.Status = entity.RunStatusCanceled
	run.CompletedAt = &now
	run.UpdatedAt = now

	s.producer.RunCanceled(ctx, run)

	slog.InfoContext(ctx, "audit run canceled", "run_id", runID, "by", identity.UserID)

	return run, nil
}
