package entity

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
)

type Role string

const (
	RoleSystemAdmin     Role = "SYSTEM_ADMIN"
	RoleAgencyAdmin     Role = "AGENCY_ADMIN"
	RoleAgencyStaff     Role = "AGENCY_STAFF"
	RoleClientAdmin     Role = "CLIENT_ADMIN"
	RoleClientStaff     Role = "CLIENT_STAFF"
	RoleSalesConsultant Role = "SALES_CONSULTANT"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Validate() error {
	switch r {
	case RoleSystemAdmin, RoleAgencyAdmin, RoleAgencyStaff, RoleClientAdmin, RoleClientStaff, RoleSalesConsultant:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", ErrValidation, r)
	}
}

// Identity describes the caller as supplied by the identity layer. The core
// never authenticates, it only authorizes given this struct.
type Identity struct {
	UserID    uuid.UUID
	Role      Role
	TenantID  uuid.UUID
	AgencyID  uuid.UUID
	ClientID  uuid.UUID
	ClientIDs []uuid.UUID // assigned-client set, only for AGENCY_STAFF
}

// Scope is the resolved visibility boundary for a caller.
type Scope struct {
	Role      Role
	TenantID  uuid.UUID
	AgencyID  uuid.UUID
	ClientID  uuid.UUID
	ClientIDs []uuid.UUID
}

// ResolveScope resolves the acting tenant/agency/client boundary from raw
// identity claims. Pure, no lookups. Fails with ErrUnresolvedScope when the
// role requires a binding that is missing.
func ResolveScope(identity Identity) (Scope, error) {
	err := identity.Role.Validate()
	if err != nil {
		return Scope{}, err
	}

	if identity.TenantID.IsNil() {
		return Scope{}, fmt.Errorf("%w: role %s requires a tenant binding", ErrUnresolvedScope, identity.Role)
	}

	switch identity.Role {
	case RoleSystemAdmin:
		return Scope{Role: identity.Role, TenantID: identity.TenantID}, nil

	case RoleAgencyAdmin, RoleAgencyStaff, RoleSalesConsultant:
		if identity.AgencyID.IsNil() {
			return Scope{}, fmt.Errorf("%w: role %s requires an agency binding", ErrUnresolvedScope, identity.Role)
		}

		return Scope{
			Role:      identity.Role,
			TenantID:  identity.TenantID,
			AgencyID:  identity.AgencyID,
			ClientIDs: identity.ClientIDs,
		}, nil

	case RoleClientAdmin, RoleClientStaff:
		if identity.ClientID.IsNil() {
			return Scope{}, fmt.Errorf("%w: role %s requires a client binding", ErrUnresolvedScope, identity.Role)
		}

		return Scope{
			Role:     identity.Role,
			TenantID: identity.TenantID,
			AgencyID: identity.AgencyID,
			ClientID: identity.ClientID,
		}, nil
	}

	return Scope{}, fmt.Errorf("%w: no scope rule for role %q", ErrUnresolvedScope, identity.Role)
}

// ClientBound reports whether the scope is pinned to a single client.
func (s Scope) ClientBound() bool {
	return !s.ClientID.IsNil()
}
