// Package models defines cart line items and their identity rules.
package models

import (
	"fmt"
	"time"

	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"
)

// LineItem is one product entry in a cart. Identity is the triple
// (ProductID, VariantID, TenantSlug): the same product under two tenants is
// two independent entries, which is what keeps carts isolated per store.
type LineItem struct {
	ProductID   string  `json:"product_id"`
	VariantID   string  `json:"variant_id,omitempty"`
	TenantSlug  id.Slug `json:"tenant_slug"`
	Name        string  `json:"name"`
	VariantName string  `json:"variant_name,omitempty"`
	// UnitPrice is in minor currency units.
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Key identifies the line within its tenant partition.
func (i LineItem) Key() string {
	return i.ProductID + "|" + i.VariantID
}

// Subtotal is the line's price contribution in minor units.
func (i LineItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Validate checks the fields a caller controls.
func (i LineItem) Validate() error {
	if i.ProductID == "" {
		return fmt.Errorf("product id is required: %w", sentinel.ErrInvalidInput)
	}
	if i.TenantSlug.IsEmpty() {
		return fmt.Errorf("tenant slug is required: %w", sentinel.ErrInvalidInput)
	}
	if i.Name == "" {
		return fmt.Errorf("item name is required: %w", sentinel.ErrInvalidInput)
	}
	if i.UnitPrice < 0 {
		return fmt.Errorf("unit price must not be negative: %w", sentinel.ErrInvalidInput)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", sentinel.ErrInvalidInput)
	}
	return nil
}

// CheckoutSubmission is the snapshot of one tenant's cart at checkout time.
type CheckoutSubmission struct {
	CartID      id.CartID  `json:"cart_id"`
	TenantSlug  id.Slug    `json:"tenant_slug"`
	Items       []LineItem `json:"items"`
	Total       int64      `json:"total"`
	SubmittedAt time.Time  `json:"submitted_at"`
}
