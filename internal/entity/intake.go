package entity

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

type IntakeStatus string

const (
	IntakeStatusDraft     IntakeStatus = "draft"
	IntakeStatusSubmitted IntakeStatus = "submitted"
	IntakeStatusApproved  IntakeStatus = "approved"
)

func (s IntakeStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the intake may move to next. Intakes only
// move forward, never back.
func (s IntakeStatus) CanTransitionTo(next IntakeStatus) bool {
	switch s {
	case IntakeStatusDraft:
		return next == IntakeStatusSubmitted || next == IntakeStatusApproved
	case IntakeStatusSubmitted:
		return next == IntakeStatusApproved
	}

	return false
}

type CMS string

const (
	CMSWordpress CMS = "wordpress"
	CMSShopify   CMS = "shopify"
	CMSWebflow   CMS = "webflow"
	CMSCustom    CMS = "custom"
	CMSOther     CMS = "other"
)

func (c CMS) String() string {
	return string(c)
}

func (c CMS) Validate() error {
	switch c {
	case CMSWordpress, CMSShopify, CMSWebflow, CMSCustom, CMSOther:
		return nil
	default:
		return fmt.Errorf("%w: unknown cms %q", ErrValidation, c)
	}
}

type KeywordIntent string

const (
	IntentInformational KeywordIntent = "informational"
	IntentTransactional KeywordIntent = "transactional"
	IntentNavigational  KeywordIntent = "navigational"
)

func (i KeywordIntent) Validate() error {
	switch i {
	case IntentInformational, IntentTransactional, IntentNavigational:
		return nil
	default:
		return fmt.Errorf("%w: unknown keyword intent %q", ErrValidation, i)
	}
}

type IntakeKeyword struct {
	ID     uuid.UUID
	Phrase string
	Intent KeywordIntent
}

type IntakeCompetitor struct {
	ID         uuid.UUID
	Name       string
	WebsiteURL string
}

type ConversionGoal struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// AuditIntake is the structured questionnaire captured before an audit run.
// Child records share the intake lifecycle and are cascade-deleted with it.
type AuditIntake struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	RequestedBy uuid.UUID

	ContactName  string
	ContactEmail string
	ContactPhone string

	WebsiteURL      string
	StagingURL      string
	Subdomains      []string
	CMS             CMS
	CMSVersion      string
	HostingProvider string

	HasGoogleAnalytics bool
	HasSearchConsole   bool
	HasBusinessProfile bool
	HasTagManager      bool

	Markets         []string
	PrimaryServices []string
	Notes           string

	Status IntakeStatus

	Goals       []ConversionGoal
	Competitors []IntakeCompetitor
	Keywords    []IntakeKeyword

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IntakeSubmission is the raw intake payload before validation and
// normalization.
type IntakeSubmission struct {
	ClientID uuid.UUID `json:"clientId"`

	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`

	WebsiteURL      string   `json:"websiteUrl"`
	StagingURL      string   `json:"stagingUrl"`
	Subdomains      []string `json:"subdomains"`
	CMS             string   `json:"cms"`
	CMSVersion      string   `json:"cmsVersion"`
	HostingProvider string   `json:"hostingProvider"`

	HasGoogleAnalytics bool `json:"hasGoogleAnalytics"`
	HasSearchConsole   bool `json:"hasSearchConsole"`
	HasBusinessProfile bool `json:"hasBusinessProfile"`
	HasTagManager      bool `json:"hasTagManager"`

	Markets         []string `json:"markets"`
	PrimaryServices []string `json:"primaryServices"`
	Notes           string   `json:"notes"`

	Goals       []GoalSubmission       `json:"goals"`
	Competitors []CompetitorSubmission `json:"competitors"`
	Keywords    []KeywordSubmission    `json:"keywords"`
}

type GoalSubmission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CompetitorSubmission struct {
	Name       string `json:"name"`
	WebsiteURL string `json:"websiteUrl"`
}

type KeywordSubmission struct {
	Phrase string `json:"phrase"`
	Intent string `json:"intent"`
}
