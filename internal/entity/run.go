package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type RunStatus string

const (
	RunStatusDraft     RunStatus = "DRAFT"
	RunStatusQueued    RunStatus = "QUEUED"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
	RunStatusCanceled  RunStatus = "CANCELED"
)

func (s RunStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no transition may leave this status.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCanceled:
		return true
	}

	return false
}

// IsActive reports whether the run counts against the one-active-run-per-client
// invariant.
func (s RunStatus) IsActive() bool {
	return s == RunStatusQueued || s == RunStatusRunning
}

var runTransitions = map[RunStatus][]RunStatus{
	RunStatusDraft:   {RunStatusQueued},
	RunStatusQueued:  {RunStatusRunning, RunStatusCanceled},
	RunStatusRunning: {RunStatusCompleted, RunStatusFailed, RunStatusCanceled},
}

func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	for _, allowed := range runTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// RunScope describes what the crawler should cover.
type RunScope struct {
	Subdomains     []string `json:"subdomains,omitempty"`
	MaxPages       int      `json:"maxPages,omitempty"`
	IncludeStaging bool     `json:"includeStaging,omitempty"`
}

// AuditRun is one execution of the audit pipeline against an approved intake.
// Status, timestamps and the error detail are the only fields mutated after
// creation.
type AuditRun struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	IntakeID    uuid.UUID
	InitiatedBy uuid.UUID
	Status      RunStatus
	Scope       RunScope
	ErrorDetail string
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RunSortCol string

const (
	RunSortByCreatedAt RunSortCol = "created_at"
	RunSortByStartedAt RunSortCol = "started_at"
	RunSortByStatus    RunSortCol = "status"
)

func (c RunSortCol) String() string {
	return string(c)
}

func (c RunSortCol) IsValid() bool {
	switch c {
	case RunSortByCreatedAt, RunSortByStartedAt, RunSortByStatus:
		return true
	}

	return false
}

type OrderByCol string

const (
	DESC OrderByCol = "desc"
	ASC  OrderByCol = "asc"
)

func (o OrderByCol) String() string {
	return string(o)
}

func (o OrderByCol) IsValid() bool {
	switch o {
	case DESC, ASC:
		return true
	}

	return false
}

// RunFilter narrows run listings. Caller-supplied criteria live in the
// optional fields; the scope constraints are filled by the query service and
// always applied.
type RunFilter struct {
	Status   *RunStatus
	ClientID *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time

	// Scope constraints, not caller criteria.
	AgencyID  *uuid.UUID
	ClientIDs []uuid.UUID

	Page    uint64
	Limit   uint64
	SortBy  RunSortCol
	OrderBy OrderByCol
}
