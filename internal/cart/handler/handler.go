// Package handler exposes the cart and checkout HTTP API. Every route runs
// behind tenant resolution; the tenant slug scoping each operation comes
// from the resolved snapshot, never from client input.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"extendbee/internal/cart/models"
	"extendbee/internal/cart/service"
	"extendbee/internal/cart/session"
	"extendbee/internal/platform/middleware"
	"extendbee/internal/routing"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
	"extendbee/pkg/platform/httputil"
)

// Handler serves the cart API.
type Handler struct {
	carts    *service.Service
	sessions *session.Manager
	logger   *slog.Logger
}

// New constructs the cart handler.
func New(carts *service.Service, sessions *session.Manager, logger *slog.Logger) *Handler {
	return &Handler{carts: carts, sessions: sessions, logger: logger}
}

// Register mounts the cart routes. The router must already run the tenant
// resolution middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addItem)
	r.Put("/cart/items", h.updateQuantity)
	r.Delete("/cart/items", h.removeItem)
	r.Delete("/cart", h.clearCart)
	r.Post("/checkout", h.checkout)
}

// cartView is the response shape for cart reads and mutations.
type cartView struct {
	Items []models.LineItem `json:"items"`
	Total int64             `json:"total"`
}

// addItemRequest is the add-to-cart payload. The tenant slug is filled from
// the resolved tenant, so a client cannot write into another store's cart.
type addItemRequest struct {
	ProductID   string `json:"product_id"`
	VariantID   string `json:"variant_id"`
	Name        string `json:"name"`
	VariantName string `json:"variant_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url"`
}

func (r *addItemRequest) Normalize() {
	r.ProductID = strings.TrimSpace(r.ProductID)
	r.VariantID = strings.TrimSpace(r.VariantID)
	r.Name = strings.TrimSpace(r.Name)
	if r.Quantity == 0 {
		r.Quantity = 1
	}
}

func (r *addItemRequest) Validate() error {
	if r.ProductID == "" {
		return dErrors.New(dErrors.CodeValidation, "product_id is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.UnitPrice < 0 {
		return dErrors.New(dErrors.CodeValidation, "unit_price must not be negative")
	}
	if r.Quantity < 1 {
		return dErrors.New(dErrors.CodeValidation, "quantity must be at least 1")
	}
	return nil
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (r *updateQuantityRequest) Normalize() {
	r.ProductID = strings.TrimSpace(r.ProductID)
	r.VariantID = strings.TrimSpace(r.VariantID)
}

func (r *updateQuantityRequest) Validate() error {
	if r.ProductID == "" {
		return dErrors.New(dErrors.CodeValidation, "product_id is required")
	}
	return nil
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.tenantSlug(w, r)
	if !ok {
		return
	}
	cartID := h.sessions.EnsureCartID(w, r)

	h.writeCart(w, r, cartID, slug)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug, ok := h.tenantSlug(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[addItemRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	cartID := h.sessions.EnsureCartID(w, r)

	_, err := h.carts.AddItem(ctx, cartID, models.LineItem{
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		TenantSlug:  slug,
		Name:        req.Name,
		VariantName: req.VariantName,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeCart(w, r, cartID, slug)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug, ok := h.tenantSlug(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[updateQuantityRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	cartID := h.sessions.EnsureCartID(w, r)

	if _, err := h.carts.UpdateQuantity(ctx, cartID, slug, req.ProductID, req.VariantID, req.Quantity); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeCart(w, r, cartID, slug)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug, ok := h.tenantSlug(w, r)
	if !ok {
		return
	}
	productID := strings.TrimSpace(r.URL.Query().Get("product_id"))
	if productID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "product_id is required"))
		return
	}
	variantID := strings.TrimSpace(r.URL.Query().Get("variant_id"))
	cartID := h.sessions.EnsureCartID(w, r)

	if err := h.carts.RemoveItem(ctx, cartID, slug, productID, variantID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeCart(w, r, cartID, slug)
}

// clearCart empties the current tenant's items. Passing scope=all clears
// the whole cart across every tenant.
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug, ok := h.tenantSlug(w, r)
	if !ok {
		return
	}
	cartID := h.sessions.EnsureCartID(w, r)

	var err error
	if r.URL.Query().Get("scope") == "all" {
		err = h.carts.ClearAll(ctx, cartID)
	} else {
		err = h.carts.Clear(ctx, cartID, slug)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeCart(w, r, cartID, slug)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug, ok := h.tenantSlug(w, r)
	if !ok {
		return
	}
	cartID := h.sessions.EnsureCartID(w, r)

	submission, err := h.carts.Checkout(ctx, cartID, slug)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, submission)
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, cartID id.CartID, slug id.Slug) {
	ctx := r.Context()
	items, err := h.carts.Items(ctx, cartID, slug)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	httputil.WriteJSON(w, http.StatusOK, cartView{Items: items, Total: total})
}

func (h *Handler) tenantSlug(w http.ResponseWriter, r *http.Request) (id.Slug, bool) {
	snapshot, ok := routing.SnapshotFrom(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeTenantNotFound, "store not found"))
		return "", false
	}
	return snapshot.Tenant.Slug, true
}
