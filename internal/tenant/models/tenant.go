package models

import (
	"time"

	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
)

// TenantStatus is the lifecycle state of a tenant. Only active tenants are
// resolvable from public traffic.
type TenantStatus string

const (
	TenantStatusPending   TenantStatus = "pending"
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusClosed    TenantStatus = "closed"
)

// Tenant is one independently branded store hosted on the shared platform.
type Tenant struct {
	ID        id.TenantID  `json:"id"`
	Name      string       `json:"name"`
	Slug      id.Slug      `json:"slug"`
	Status    TenantStatus `json:"status"`
	LogoURL   string       `json:"logo_url,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Activate transitions a pending tenant to active.
// Returns an error if the tenant is closed; closed is terminal.
func (t *Tenant) Activate(now time.Time) error {
	if t.Status == TenantStatusClosed {
		return dErrors.New(dErrors.CodeInvariantViolation, "closed tenants cannot be reactivated")
	}
	if t.IsActive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already active")
	}
	t.Status = TenantStatusActive
	t.UpdatedAt = now
	return nil
}

// Suspend transitions an active tenant to suspended.
func (t *Tenant) Suspend(now time.Time) error {
	if !t.IsActive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "only active tenants can be suspended")
	}
	t.Status = TenantStatusSuspended
	t.UpdatedAt = now
	return nil
}

// Close transitions the tenant to closed. Closed is terminal; tenants are
// never hard-deleted at this layer.
func (t *Tenant) Close(now time.Time) error {
	if t.Status == TenantStatusClosed {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already closed")
	}
	t.Status = TenantStatusClosed
	t.UpdatedAt = now
	return nil
}

func NewTenant(tenantID id.TenantID, name string, slug id.Slug, now time.Time) (*Tenant, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name must be 128 characters or less")
	}
	if slug.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant slug cannot be empty")
	}
	return &Tenant{
		ID:        tenantID,
		Name:      name,
		Slug:      slug,
		Status:    TenantStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
