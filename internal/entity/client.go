package entity

import (
	"github.com/gofrs/uuid/v5"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is the top-level isolation boundary. Immutable once created
// except for status.
type Tenant struct {
	ID     uuid.UUID
	Slug   string
	Status TenantStatus
}

type Agency struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
}

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// Client is a law firm serviced by exactly one agency. The tenant is always
// derived from the agency, never stored independently.
type Client struct {
	ID       uuid.UUID
	AgencyID uuid.UUID
	TenantID uuid.UUID
	Name     string
	Status   ClientStatus
}

// Ownership is the tenant/agency/client chain of a policy target.
type Ownership struct {
	TenantID uuid.UUID
	AgencyID uuid.UUID
	ClientID uuid.UUID
}
