// Package storefront serves the shopper-facing pages: it joins the resolved
// tenant snapshot, the page composition, and the link builder into one
// response the client renders directly.
package storefront

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"extendbee/internal/cart/session"
	pagecompose "extendbee/internal/page/compose"
	pageservice "extendbee/internal/page/service"
	"extendbee/internal/routing"
	tenantmodels "extendbee/internal/tenant/models"
	"extendbee/internal/tenant/tenantctx"
	id "extendbee/pkg/domain"
	dErrors "extendbee/pkg/domain-errors"
	"extendbee/pkg/platform/httputil"
)

// Handler renders storefront pages.
type Handler struct {
	pages    *pageservice.Resolver
	engine   *pagecompose.Engine
	sessions *session.Manager
	contexts *tenantctx.Registry
	logger   *slog.Logger
}

// New constructs the storefront handler.
func New(pages *pageservice.Resolver, engine *pagecompose.Engine, sessions *session.Manager, contexts *tenantctx.Registry, logger *slog.Logger) *Handler {
	return &Handler{pages: pages, engine: engine, sessions: sessions, contexts: contexts, logger: logger}
}

// Register mounts the storefront routes. The router must already run the
// tenant resolution middleware. The page route is registered last so the
// API and context routes win over the slug wildcard.
func (h *Handler) Register(r chi.Router) {
	r.Get("/storefront/context", h.getContext)
	r.Get("/", h.renderPage)
	r.Get("/{pageSlug}", h.renderPage)
}

// linksView is the navigation contract handed to the client. Every URL is
// built by the link builder, so the client never assembles tenant prefixes.
type linksView struct {
	Home     string `json:"home"`
	Catalog  string `json:"catalog"`
	Cart     string `json:"cart"`
	Checkout string `json:"checkout"`
	Auth     string `json:"auth"`
}

func newLinksView(links routing.Links) linksView {
	return linksView{
		Home:     links.Home(),
		Catalog:  links.Catalog(),
		Cart:     links.Cart(),
		Checkout: links.Checkout(),
		Auth:     links.Auth(""),
	}
}

// tenantView is the public subset of the tenant record.
type tenantView struct {
	Name    string  `json:"name"`
	Slug    id.Slug `json:"slug"`
	LogoURL string  `json:"logo_url,omitempty"`
}

// contextResponse describes the resolved tenant without rendering a page.
// ThemeVariables carries the style variables the session manager projected
// for the current tenant; only the context endpoint populates it.
type contextResponse struct {
	Tenant         tenantView                      `json:"tenant"`
	RoutingMode    routing.Mode                    `json:"routing_mode"`
	Theme          tenantmodels.Theme              `json:"theme"`
	HeaderFooter   tenantmodels.HeaderFooterConfig `json:"header_footer"`
	Navigation     []tenantmodels.NavigationItem   `json:"navigation"`
	ThemeVariables map[string]string               `json:"theme_variables,omitempty"`
	Links          linksView                       `json:"links"`
}

// pageResponse is a full render-ready page.
type pageResponse struct {
	contextResponse
	Page pagecompose.Composition `json:"page"`
}

// getContext answers with the session's current tenant context. The context
// flows through the session's Manager: switching to a different tenant fires
// a fresh load, stale loads are discarded, and the theme projection always
// belongs to the tenant actually being served.
func (h *Handler) getContext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base, ok := h.baseResponse(w, r)
	if !ok {
		return
	}
	snapshot, _ := routing.SnapshotFrom(ctx)

	mgr := h.contexts.ForSession(h.sessions.EnsureCartID(w, r))
	view := mgr.Current()
	if view.State != tenantctx.StateReady || view.Slug != snapshot.Tenant.Slug {
		<-mgr.SetSlug(ctx, snapshot.Tenant.Slug)
		view = mgr.Current()
	}
	if view.State == tenantctx.StateError {
		httputil.WriteError(w, view.Err)
		return
	}
	if view.State == tenantctx.StateReady && view.Slug == snapshot.Tenant.Slug {
		base.Theme = view.Snapshot.Theme
		base.HeaderFooter = view.Snapshot.HeaderFooter
		base.Navigation = view.Snapshot.NavItems
		base.ThemeVariables = mgr.ThemeVars()
	}

	httputil.WriteJSON(w, http.StatusOK, base)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base, ok := h.baseResponse(w, r)
	if !ok {
		return
	}
	snapshot, _ := routing.SnapshotFrom(ctx)

	// Normalize the raw segment so /About resolves the "about" page. An
	// unparseable segment cannot match any stored slug and takes the
	// homepage fallback.
	requested, err := id.ParseSlug(chi.URLParam(r, "pageSlug"))
	if err != nil {
		requested = ""
	}
	page, sections, err := h.pages.ResolvePage(ctx, snapshot.Tenant.ID, requested)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pageResponse{
		contextResponse: base,
		Page:            h.engine.Compose(ctx, page, sections),
	})
}

func (h *Handler) baseResponse(w http.ResponseWriter, r *http.Request) (contextResponse, bool) {
	ctx := r.Context()
	snapshot, ok := routing.SnapshotFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeTenantNotFound, "store not found"))
		return contextResponse{}, false
	}
	decision, _ := routing.DecisionFrom(ctx)
	links, _ := routing.LinksFrom(ctx)

	return contextResponse{
		Tenant: tenantView{
			Name:    snapshot.Tenant.Name,
			Slug:    snapshot.Tenant.Slug,
			LogoURL: snapshot.Tenant.LogoURL,
		},
		RoutingMode:  decision.Mode,
		Theme:        snapshot.Theme,
		HeaderFooter: snapshot.HeaderFooter,
		Navigation:   snapshot.NavItems,
		Links:        newLinksView(links),
	}, true
}
