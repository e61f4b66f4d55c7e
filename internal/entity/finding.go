package entity

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

type Severity string

const (
	SeverityP1 Severity = "P1"
	SeverityP2 Severity = "P2"
	SeverityP3 Severity = "P3"
)

func (s Severity) String() string {
	return string(s)
}

type FindingStatus string

const (
	FindingStatusOpen       FindingStatus = "OPEN"
	FindingStatusInProgress FindingStatus = "IN_PROGRESS"
	FindingStatusResolved   FindingStatus = "RESOLVED"
	FindingStatusIgnored    FindingStatus = "IGNORED"
)

func (s FindingStatus) String() string {
	return string(s)
}

func (s FindingStatus) Validate() error {
	switch s {
	case FindingStatusOpen, FindingStatusInProgress, FindingStatusResolved, FindingStatusIgnored:
		return nil
	default:
		return fmt.Errorf("%w: unknown finding status %q", ErrValidation, s)
	}
}

const (
	MinScore = 1
	MaxScore = 5

	MinPriority = 1
	MaxPriority = 10

	p1Threshold = 7
	p2Threshold = 4
)

// ClampScore forces an impact or effort score into [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}

	if score > MaxScore {
		return MaxScore
	}

	return score
}

// ScoreFinding computes the priority score and severity band from impact and
// effort. priority = impact*2 - effort, clamped to [MinPriority, MaxPriority];
// higher is more urgent. Inputs out of [MinScore, MaxScore] are clamped, so
// the function is total.
func ScoreFinding(impact, effort int) (int, Severity) {
	impact = ClampScore(impact)
	effort = ClampScore(effort)

	priority := impact*2 - effort

	if priority < MinPriority {
		priority = MinPriority
	}

	if priority > MaxPriority {
		priority = MaxPriority
	}

	switch {
	case priority >= p1Threshold:
		return priority, SeverityP1
	case priority >= p2Threshold:
		return priority, SeverityP2
	default:
		return priority, SeverityP3
	}
}

// AuditFinding is a single issue discovered during a run. Severity and
// priority are derived from the impact/effort scores, never set directly.
type AuditFinding struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	RunID          uuid.UUID
	Title          string
	Description    string
	Category       string
	Location       string
	Recommendation string
	Severity       Severity
	Status         FindingStatus
	ImpactScore    int
	EffortScore    int
	PriorityScore  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RawFinding is what the crawler reports back for one discovered issue.
type RawFinding struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Location       string `json:"location,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Impact         int    `json:"impact"`
	Effort         int    `json:"effort"`
}

type FindingSortCol string

const (
	FindingSortByPriority  FindingSortCol = "priority_score"
	FindingSortBySeverity  FindingSortCol = "severity"
	FindingSortByCreatedAt FindingSortCol = "created_at"
)

func (c FindingSortCol) String() string {
	return string(c)
}

func (c FindingSortCol) IsValid() bool {
	switch c {
	case FindingSortByPriority, FindingSortBySeverity, FindingSortByCreatedAt:
		return true
	}

	return false
}

type FindingFilter struct {
	RunID    *uuid.UUID
	Status   *FindingStatus
	Severity *Severity
	Category *string

	// Scope constraints, not caller criteria.
	AgencyID  *uuid.UUID
	ClientIDs []uuid.UUID

	Page    uint64
	Limit   uint64
	SortBy  FindingSortCol
	OrderBy OrderByCol
}

// RunSummary aggregates finding counts for one run.
type RunSummary struct {
	RunID      uuid.UUID
	Total      int
	BySeverity map[Severity]int
	ByStatus   map[FindingStatus]int
}
