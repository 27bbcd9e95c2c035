// Package service implements cart operations over the tenant-partitioned
// store: merge-on-add, bounded quantity updates, scoped clears, and checkout
// submission.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"extendbee/internal/cart/metrics"
	"extendbee/internal/cart/models"
	"extendbee/internal/events"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
	"extendbee/pkg/platform/sentinel"
)

// CartStore is the persistence contract. Every method that touches line
// items takes the tenant slug; the store has no unscoped read path.
type CartStore interface {
	SaveItem(ctx context.Context, cartID id.CartID, item models.LineItem) error
	FindItem(ctx context.Context, cartID id.CartID, tenantSlug id.Slug, key string) (models.LineItem, error)
	ListItems(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) ([]models.LineItem, error)
	RemoveItem(ctx context.Context, cartID id.CartID, tenantSlug id.Slug, key string) error
	ClearTenant(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) error
	ClearAll(ctx context.Context, cartID id.CartID) error
}

// Service coordinates cart reads, mutations, and checkout.
type Service struct {
	store     CartStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// New constructs the cart service. publisher may be a NoopPublisher when
// eventing is not configured; metrics may be nil.
func New(store CartStore, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{store: store, publisher: publisher, metrics: m, logger: logger, now: time.Now}
}

// AddItem adds the line to its tenant's partition. Adding an identity that
// already exists merges by incrementing quantity instead of duplicating.
func (s *Service) AddItem(ctx context.Context, cartID id.CartID, item models.LineItem) (models.LineItem, error) {
	if err := item.Validate(); err != nil {
		s.count("add", "invalid")
		return models.LineItem{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid cart item")
	}

	existing, err := s.store.FindItem(ctx, cartID, item.TenantSlug, item.Key())
	switch {
	case err == nil:
		existing.Quantity += item.Quantity
		item = existing
	case errors.Is(err, sentinel.ErrNotFound):
		// First add for this identity.
	default:
		s.count("add", "error")
		return models.LineItem{}, s.upstream(ctx, "cart read failed", err)
	}

	if err := s.store.SaveItem(ctx, cartID, item); err != nil {
		s.count("add", "error")
		return models.LineItem{}, s.upstream(ctx, "cart write failed", err)
	}
	s.count("add", "ok")
	return item, nil
}

// UpdateQuantity sets the line's quantity. Quantities below 1 are rejected;
// removal is an explicit separate operation.
func (s *Service) UpdateQuantity(ctx context.Context, cartID id.CartID, tenantSlug id.Slug, productID, variantID string, quantity int) (models.LineItem, error) {
	if quantity < 1 {
		s.count("update_quantity", "invalid")
		return models.LineItem{}, dErrors.New(dErrors.CodeInvalidInput, "quantity must be at least 1")
	}

	key := models.LineItem{ProductID: productID, VariantID: variantID}.Key()
	item, err := s.store.FindItem(ctx, cartID, tenantSlug, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.count("update_quantity", "not_found")
			return models.LineItem{}, dErrors.New(dErrors.CodeNotFound, "cart item not found")
		}
		s.count("update_quantity", "error")
		return models.LineItem{}, s.upstream(ctx, "cart read failed", err)
	}

	item.Quantity = quantity
	if err := s.store.SaveItem(ctx, cartID, item); err != nil {
		s.count("update_quantity", "error")
		return models.LineItem{}, s.upstream(ctx, "cart write failed", err)
	}
	s.count("update_quantity", "ok")
	return item, nil
}

// RemoveItem deletes one line from the tenant's partition.
func (s *Service) RemoveItem(ctx context.Context, cartID id.CartID, tenantSlug id.Slug, productID, variantID string) error {
	key := models.LineItem{ProductID: productID, VariantID: variantID}.Key()
	if err := s.store.RemoveItem(ctx, cartID, tenantSlug, key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.count("remove", "not_found")
			return dErrors.New(dErrors.CodeNotFound, "cart item not found")
		}
		s.count("remove", "error")
		return s.upstream(ctx, "cart write failed", err)
	}
	s.count("remove", "ok")
	return nil
}

// Items returns the tenant's lines in a stable order.
func (s *Service) Items(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) ([]models.LineItem, error) {
	items, err := s.store.ListItems(ctx, cartID, tenantSlug)
	if err != nil {
		s.count("list", "error")
		return nil, s.upstream(ctx, "cart read failed", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key() < items[j].Key() })
	s.count("list", "ok")
	return items, nil
}

// Total sums the tenant's lines in minor units.
func (s *Service) Total(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) (int64, error) {
	items, err := s.store.ListItems(ctx, cartID, tenantSlug)
	if err != nil {
		s.count("total", "error")
		return 0, s.upstream(ctx, "cart read failed", err)
	}
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	s.count("total", "ok")
	return total, nil
}

// Clear drops the tenant's partition, leaving other tenants' lines alone.
func (s *Service) Clear(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) error {
	if err := s.store.ClearTenant(ctx, cartID, tenantSlug); err != nil {
		s.count("clear", "error")
		return s.upstream(ctx, "cart clear failed", err)
	}
	s.count("clear", "ok")
	return nil
}

// ClearAll drops every tenant's partition in the cart. Callers opt into the
// cross-tenant scope explicitly.
func (s *Service) ClearAll(ctx context.Context, cartID id.CartID) error {
	if err := s.store.ClearAll(ctx, cartID); err != nil {
		s.count("clear_all", "error")
		return s.upstream(ctx, "cart clear failed", err)
	}
	s.count("clear_all", "ok")
	return nil
}

// Checkout snapshots the tenant's lines, publishes the submission, and
// clears only that tenant's partition. The cart is left intact when the
// publish fails, so the shopper can retry.
func (s *Service) Checkout(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) (models.CheckoutSubmission, error) {
	items, err := s.Items(ctx, cartID, tenantSlug)
	if err != nil {
		s.count("checkout", "error")
		return models.CheckoutSubmission{}, err
	}
	if len(items) == 0 {
		s.count("checkout", "empty")
		return models.CheckoutSubmission{}, dErrors.New(dErrors.CodeInvalidInput, "cart is empty")
	}

	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	submission := models.CheckoutSubmission{
		CartID:      cartID,
		TenantSlug:  tenantSlug,
		Items:       items,
		Total:       total,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.publisher.CheckoutSubmitted(ctx, submission); err != nil {
		s.count("checkout", "publish_failed")
		s.logger.ErrorContext(ctx, "checkout publish failed",
			"cart_id", cartID,
			"tenant_slug", tenantSlug,
			"error", err,
		)
		return models.CheckoutSubmission{}, dErrors.Wrap(err, dErrors.CodeUpstream, "checkout submission failed")
	}

	if err := s.store.ClearTenant(ctx, cartID, tenantSlug); err != nil {
		// The submission already went out; log and surface the clear failure.
		s.count("checkout", "clear_failed")
		return submission, s.upstream(ctx, "cart clear after checkout failed", err)
	}

	if s.metrics != nil {
		s.metrics.CheckoutValue.Observe(float64(total))
	}
	s.count("checkout", "ok")
	return submission, nil
}

func (s *Service) upstream(ctx context.Context, msg string, err error) error {
	s.logger.ErrorContext(ctx, msg, "error", err)
	return dErrors.Wrap(err, dErrors.CodeUpstream, msg)
}

func (s *Service) count(op, result string) {
	if s.metrics != nil {
		s.metrics.Operations.WithLabelValues(op, result).Inc()
	}
}
