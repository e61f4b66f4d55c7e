package broker

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/entity"
)

const (
	EventRunRequested   = "audit.run.requested"
	EventRunCompleted   = "audit.run.completed"
	EventRunFailed      = "audit.run.failed"
	EventRunCanceled    = "audit.run.canceled"
	EventFindingCreated = "audit.finding.created"
)

type RunEvent struct {
	Event       string    `json:"event"`
	RunID       uuid.UUID `json:"run_id"`
	ClientID    uuid.UUID `json:"client_id"`
	IntakeID    uuid.UUID `json:"intake_id"`
	Status      string    `json:"status"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type FindingEvent struct {
	Event         string    `json:"event"`
	FindingID     uuid.UUID `json:"finding_id"`
	RunID         uuid.UUID `json:"run_id"`
	ClientID      uuid.UUID `json:"client_id"`
	Severity      string    `json:"severity"`
	PriorityScore int       `json:"priority_score"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (p *Producer) RunRequested(ctx context.Context, run entity.AuditRun) {
	p.sendRunEvent(ctx, EventRunRequested, run)
}

func (p *Producer) RunCompleted(ctx context.Context, run entity.AuditRun) {
	p.sendRunEvent(ctx, EventRunCompleted, run)
}

func (p *Producer) RunFailed(ctx context.Context, run entity.AuditRun) {
	p.sendRunEvent(ctx, EventRunFailed, run)
}

func (p *Producer) RunCanceled(ctx context.Context, run entity.AuditRun) {
	p.sendRunEvent(ctx, EventRunCanceled, run)
}

func (p *Producer) FindingCreated(ctx context.Context, finding entity.AuditFinding) {
	p.send(ctx, finding.RunID, FindingEvent{
		Event:         EventFindingCreated,
		FindingID:     finding.ID,
		RunID:         finding.RunID,
		ClientID:      finding.ClientID,
		Severity:      finding.Severity.String(),
		PriorityScore: finding.PriorityScore,
		OccurredAt:    time.Now(),
	})
}

func (p *Producer) sendRunEvent(ctx context.Context, event string, run entity.AuditRun) {
	p.send(ctx, run.ID, RunEvent{
		Event:       event,
		RunID:       run.ID,
		ClientID:    run.ClientID,
		IntakeID:    run.IntakeID,
		Status:      run.Status.String(),
		ErrorDetail: run.ErrorDetail,
		OccurredAt:  time.Now(),
	})
}
