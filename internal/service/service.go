package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/access"
	"github.com/rankforge/audit-service/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	CreateIntake(ctx context.Context, intake entity.AuditIntake) error
	IntakeByID(ctx context.Context, id uuid.UUID) (entity.AuditIntake, error)
	UpdateIntakeStatus(ctx context.Context, id uuid.UUID, from, to entity.IntakeStatus, updatedAt time.Time) error

	CreateRun(ctx context.Context, run entity.AuditRun) error
	RunByID(ctx context.Context, id uuid.UUID) (entity.AuditRun, error)
	StartRun(ctx context.Context, id uuid.UUID, startedAt time.Time) error
	FinishRun(ctx context.Context, id uuid.UUID, status entity.RunStatus, errorDetail string, completedAt time.Time) error
	CancelRun(ctx context.Context, id uuid.UUID, canceledAt time.Time) error
	Runs(ctx context.Context, filter entity.RunFilter) ([]entity.AuditRun, int, error)

	CreateFindings(ctx context.Context, findings ...entity.AuditFinding) error
	FindingByID(ctx context.Context, id uuid.UUID) (entity.AuditFinding, error)
	UpdateFindingStatus(ctx context.Context, id uuid.UUID, status entity.FindingStatus, updatedAt time.Time) error
	Findings(ctx context.Context, filter entity.FindingFilter) ([]entity.AuditFinding, int, error)
	RunSummary(ctx context.Context, runID uuid.UUID) (entity.RunSummary, error)

	ClientOwnership(ctx context.Context, clientID uuid.UUID) (entity.Ownership, error)
}

type Producer interface {
	RunRequested(ctx context.Context, run entity.AuditRun)
	RunCompleted(ctx context.Context, run entity.AuditRun)
	RunFailed(ctx context.Context, run entity.AuditRun)
	RunCanceled(ctx context.Context, run entity.AuditRun)
	FindingCreated(ctx context.Context, finding entity.AuditFinding)
}

type Service struct {
	repo     Repository
	producer Producer
}

func New(repo Repository, producer Producer) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
	}
}

// authorize gates a write action against a target. A target the caller
// cannot even read surfaces as ErrNotFound, so denials never reveal whether
// an entity exists in another scope.
func (s *Service) authorize(identity entity.Identity, action access.Action, target entity.Ownership) error {
	err := access.Authorize(identity, action, target)
	if err == nil {
		return nil
	}

	readErr := access.Authorize(identity, access.ActionReadAudit, target)
	if readErr != nil {
		return fmt.Errorf("%w: target out of scope", entity.ErrNotFound)
	}

	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}
