package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/access"
	"github.com/rankforge/audit-service/internal/entity"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Runs lists audit runs visible to the caller. The resolved scope is ANDed
// into the filter before the query runs; caller criteria can only narrow it.
func (s *Service) Runs(ctx context.Context, filter entity.RunFilter) ([]entity.AuditRun, int, error) {
	identity, scope, err := s.resolveCaller(ctx)
	if err != nil {
		return nil, 0, err
	}

	err = access.Authorize(identity, access.ActionReadAudit, scopeTarget(scope))
	if err != nil {
		return nil, 0, err
	}

	applyRunScope(&filter, scope)
	normalizeRunFilter(&filter)

	runs, total, err := s.repo.Runs(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}

	return runs, total, nil
}

// Findings lists a run's findings. The run's client must be visible to the
// caller before the query executes; the underlying query is never relied on
// to filter for security.
func (s *Service) Findings(ctx context.Context, runID uuid.UUID, filter entity.FindingFilter) ([]entity.AuditFinding, int, error) {
	identity, scope, err := s.resolveCaller(ctx)
	if err != nil {
		return nil, 0, err
	}

	err = s.authorizeRunRead(ctx, identity, runID)
	if err != nil {
		return nil, 0, err
	}

	filter.RunID = &runID
	applyFindingScope(&filter, scope)
	normalizeFindingFilter(&filter)

	findings, total, err := s.repo.Findings(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list findings for run %s: %w", runID, err)
	}

	return findings, total, nil
}

// RunSummary aggregates finding counts for one visible run.
func (s *Service) RunSummary(ctx context.Context, runID uuid.UUID) (entity.RunSummary, error) {
	identity, _, err := s.resolveCaller(ctx)
	if err != nil {
		return entity.RunSummary{}, err
	}

	err = s.authorizeRunRead(ctx, identity, runID)
	if err != nil {
		return entity.RunSummary{}, err
	}

	summary, err := s.repo.RunSummary(ctx, runID)
	if err != nil {
		return entity.RunSummary{}, fmt.Errorf("summarize run %s: %w", runID, err)
	}

	return summary, nil
}

// UpdateFindingStatus mutates a finding's triage status. Only authorized
// users change finding status, never the crawler.
func (s *Service) UpdateFindingStatus(ctx context.Context, findingID uuid.UUID, status entity.FindingStatus) (entity.AuditFinding, error) {
	identity, err := entity.IdentityFromCtx(ctx)
	if err != nil {
		return entity.AuditFinding{}, err
	}

	err = status.Validate()
	if err != nil {
		return entity.AuditFinding{}, err
	}

	finding, err := s.repo.FindingByID(ctx, findingID)
	if err != nil {
		return entity.AuditFinding{}, fmt.Errorf("get finding %s: %w", findingID, err)
	}

	target, err := s.repo.ClientOwnership(ctx, finding.ClientID)
	if err != nil {
		return entity.AuditFinding{}, fmt.Errorf("get client %s ownership: %w", finding.ClientID, err)
	}

	err = s.authorize(identity, access.ActionUpdateFinding, target)
	if err != nil {
		return entity.AuditFinding{}, err
	}

	now := time.Now()

	err = s.repo.UpdateFindingStatus(ctx, findingID, status, now)
	if err != nil {
		return entity.AuditFinding{}, fmt.Errorf("update finding %s status to %s: %w", findingID, status, err)
	}

	finding.Status = status
	finding.UpdatedAt = now

	return finding, nil
}

func (s *Service) resolveCaller(ctx context.Context) (entity.Identity, entity.Scope, error) {
	identity, err := entity.IdentityFromCtx(ctx)
	if err != nil {
		return entity.Identity{}, entity.Scope{}, err
	}

	scope, err := entity.ResolveScope(identity)
	if err != nil {
		return entity.Identity{}, entity.Scope{}, err
	}

	return identity, scope, nil
}

// authorizeRunRead short-circuits before any finding query: a run whose
// client is outside the caller's scope surfaces as not found.
func (s *Service) authorizeRunRead(ctx context.Context, identity entity.Identity, runID uuid.UUID) error {
	run, err := s.repo.RunByID(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run %s: %w", runID, err)
	}

	target, err := s.repo.ClientOwnership(ctx, run.ClientID)
	if err != nil {
		return fmt.Errorf("get client %s ownership: %w", run.ClientID, err)
	}

	err = access.Authorize(identity, access.ActionReadAudit, target)
	if err != nil {
		return fmt.Errorf("%w: run %s", entity.ErrNotFound, runID)
	}

	return nil
}

// scopeTarget builds the caller's own ownership chain, used to gate
// scope-wide listings.
func scopeTarget(scope entity.Scope) entity.Ownership {
	return entity.Ownership{
		TenantID: scope.TenantID,
		AgencyID: scope.AgencyID,
		ClientID: scope.ClientID,
	}
}

func applyRunScope(filter *entity.RunFilter, scope entity.Scope) {
	switch {
	case scope.ClientBound():
		filter.ClientIDs = []uuid.UUID{scope.ClientID}
	case !scope.AgencyID.IsNil():
		agencyID := scope.AgencyID
		filter.AgencyID = &agencyID
	}
}

func applyFindingScope(filter *entity.FindingFilter, scope entity.Scope) {
	switch {
	case scope.ClientBound():
		filter.ClientIDs = []uuid.UUID{scope.ClientID}
	case !scope.AgencyID.IsNil():
		agencyID := scope.AgencyID
		filter.AgencyID = &agencyID
	}
}

func normalizeRunFilter(filter *entity.RunFilter) {
	if filter.Limit == 0 || filter.Limit > MaxPageLimit {
		filter.Limit = DefaultPageLimit
	}

	if filter.Page == 0 {
		filter.Page = 1
	}

	if !filter.SortBy.IsValid() {
		filter.SortBy = entity.RunSortByCreatedAt
	}

	if !filter.OrderBy.IsValid() {
		filter.OrderBy = entity.DESC
	}
}

func normalizeFindingFilter(filter *entity.FindingFilter) {
	if filter.Limit == 0 || filter.Limit > MaxPageLimit {
		filter.Limit = DefaultPageLimit
	}

	if filter.Page == 0 {
		filter.Page = 1
	}

	if !filter.SortBy.IsValid() {
		filter.SortBy = entity.FindingSortByPriority
	}

	if !filter.OrderBy.IsValid() {
		filter.OrderBy = entity.DESC
	}
}
