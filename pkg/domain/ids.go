// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "extendbee/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a PageID where a TenantID is expected.
type (
	TenantID  uuid.UUID
	PageID    uuid.UUID
	SectionID uuid.UUID
	NavItemID uuid.UUID
	CartID    uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParsePageID(s string) (PageID, error) {
	id, err := parseUUID(s, "page ID")
	return PageID(id), err
}

func ParseSectionID(s string) (SectionID, error) {
	id, err := parseUUID(s, "section ID")
	return SectionID(id), err
}

func ParseNavItemID(s string) (NavItemID, error) {
	id, err := parseUUID(s, "navigation item ID")
	return NavItemID(id), err
}

func ParseCartID(s string) (CartID, error) {
	id, err := parseUUID(s, "cart ID")
	return CartID(id), err
}

func NewCartID() CartID { return CartID(uuid.New()) }

// String methods - for logging and debugging.

func (id TenantID) String() string  { return uuid.UUID(id).String() }
func (id PageID) String() string    { return uuid.UUID(id).String() }
func (id SectionID) String() string { return uuid.UUID(id).String() }
func (id NavItemID) String() string { return uuid.UUID(id).String() }
func (id CartID) String() string    { return uuid.UUID(id).String() }

// Text marshaling - IDs travel as canonical UUID strings in JSON and other
// text encodings, never as raw byte arrays.

func (id TenantID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id PageID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id SectionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NavItemID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id CartID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }

func (id *TenantID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PageID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SectionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NavItemID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CartID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }

// IsNil checks - used for service-layer validation.

func (id TenantID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id PageID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SectionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id NavItemID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CartID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Note: Nil UUIDs are allowed here. Use IsNil() at the service layer for
// business validation, which allows store lookups to return proper
// "not found" errors for consistency.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
