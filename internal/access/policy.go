// Package access is the single authorization enforcement point. Every
// component consults it before touching persistence; no read-only shortcuts.
package access

import (
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/entity"
)

type Action string

const (
	ActionReadAudit     Action = "audit:read"
	ActionSubmitIntake  Action = "audit:intake:submit"
	ActionApproveIntake Action = "audit:intake:approve"
	ActionRequestRun    Action = "audit:run:request"
	ActionCancelRun     Action = "audit:run:cancel"
	ActionUpdateFinding Action = "audit:finding:update"
	ActionDeleteAudit   Action = "audit:delete"

	ActionReadLead  Action = "lead:read"
	ActionWriteLead Action = "lead:write"
)

func (a Action) String() string {
	return string(a)
}

// IsRead reports whether the action only reads state.
func (a Action) IsRead() bool {
	return a == ActionReadAudit || a == ActionReadLead
}

// IsDestructive marks the actions CLIENT_STAFF may never perform: delete,
// approve-intake and cancel-run.
func (a Action) IsDestructive() bool {
	switch a {
	case ActionDeleteAudit, ActionApproveIntake, ActionCancelRun:
		return true
	}

	return false
}

// IsAgencyLevel marks the actions that require agency-level authority or
// above regardless of client binding.
func (a Action) IsAgencyLevel() bool {
	return a == ActionApproveIntake || a == ActionCancelRun
}

// IsLead reports whether the action belongs to the Lead/CRM domain.
func (a Action) IsLead() bool {
	return a == ActionReadLead || a == ActionWriteLead
}

type scopeRule func(identity entity.Identity, action Action, target entity.Ownership) bool

// capabilities maps each role to its scope rule. Evaluation is a pure data
// lookup; an unknown role falls through to deny.
var capabilities = map[entity.Role]scopeRule{
	entity.RoleSystemAdmin: func(entity.Identity, Action, entity.Ownership) bool {
		return true
	},

	entity.RoleAgencyAdmin: func(identity entity.Identity, _ Action, target entity.Ownership) bool {
		return sameAgency(identity, target)
	},

	// Agency staff read anything in their agency but write only to their
	// assigned clients.
	entity.RoleAgencyStaff: func(identity entity.Identity, action Action, target entity.Ownership) bool {
		if !sameAgency(identity, target) {
			return false
		}

		if action.IsRead() {
			return true
		}

		return containsClient(identity.ClientIDs, target.ClientID)
	},

	entity.RoleClientAdmin: func(identity entity.Identity, action Action, target entity.Ownership) bool {
		if action.IsAgencyLevel() {
			return false
		}

		return target.ClientID == identity.ClientID
	},

	entity.RoleClientStaff: func(identity entity.Identity, action Action, target entity.Ownership) bool {
		if action.IsDestructive() {
			return false
		}

		return target.ClientID == identity.ClientID
	},

	// Sales consultants see Lead/CRM data only, never audits or documents.
	entity.RoleSalesConsultant: func(identity entity.Identity, action Action, target entity.Ownership) bool {
		return action.IsLead() && sameAgency(identity, target)
	},
}

// Authorize allows or denies an action against a target ownership chain.
// Returns nil on allow and an ErrForbidden-wrapped reason on deny. Denial
// reasons never carry entity contents.
func Authorize(identity entity.Identity, action Action, target entity.Ownership) error {
	rule, ok := capabilities[identity.Role]
	if !ok {
		return fmt.Errorf("%w: no matching rule for role %q", entity.ErrForbidden, identity.Role)
	}

	if identity.Role != entity.RoleSystemAdmin && target.TenantID != identity.TenantID {
		return fmt.Errorf("%w: action %s denied for role %s", entity.ErrForbidden, action, identity.Role)
	}

	if !rule(identity, action, target) {
		return fmt.Errorf("%w: action %s denied for role %s", entity.ErrForbidden, action, identity.Role)
	}

	return nil
}

func sameAgency(identity entity.Identity, target entity.Ownership) bool {
	return !identity.AgencyID.IsNil() && target.AgencyID == identity.AgencyID
}

func containsClient(ids []uuid.UUID, clientID uuid.UUID) bool {
	for _, id := range ids {
		if id == clientID {
			return true
		}
	}

	return false
}
