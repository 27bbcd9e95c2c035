package models

import (
	"sort"

	id "extendbee/pkg/domain"
)

// Theme holds the style variables a tenant projects over the storefront.
// At most one theme is active per tenant at a time. A missing theme is
// normalized to DefaultTheme, never an error: theme absence must not prevent
// a storefront from rendering.
type Theme struct {
	Colors     map[string]string `json:"colors"`
	Typography map[string]string `json:"typography"`
	Layout     map[string]string `json:"layout"`
}

// DefaultTheme is the neutral theme substituted when a tenant has none.
func DefaultTheme() Theme {
	return Theme{
		Colors: map[string]string{
			"primary":    "#1a1a1a",
			"background": "#ffffff",
			"accent":     "#f5b301",
		},
		Typography: map[string]string{
			"body":    "system-ui, sans-serif",
			"heading": "system-ui, sans-serif",
		},
		Layout: map[string]string{
			"max-width": "1200px",
		},
	}
}

// SocialLink is one entry in the footer's social row.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// HeaderFooterConfig is the tenant's chrome configuration, one-to-one with
// the tenant and nullable upstream.
type HeaderFooterConfig struct {
	HeaderOptions map[string]string `json:"header_options"`
	FooterOptions map[string]string `json:"footer_options"`
	SocialLinks   []SocialLink      `json:"social_links"`
}

// DefaultHeaderFooter is substituted when a tenant has no chrome row.
func DefaultHeaderFooter() HeaderFooterConfig {
	return HeaderFooterConfig{
		HeaderOptions: map[string]string{"show_search": "true", "show_cart": "true"},
		FooterOptions: map[string]string{"show_social": "false"},
	}
}

// NavLocation tags where a navigation item renders.
type NavLocation string

const (
	NavLocationHeader NavLocation = "header"
	NavLocationFooter NavLocation = "footer"
	NavLocationMobile NavLocation = "mobile"
)

// NavigationItem is one entry in a tenant's navigation, optionally nested
// under a parent.
type NavigationItem struct {
	ID        id.NavItemID  `json:"id"`
	TenantID  id.TenantID   `json:"tenant_id"`
	Location  NavLocation   `json:"location"`
	ParentID  *id.NavItemID `json:"parent_id,omitempty"`
	Label     string        `json:"label"`
	URL       string        `json:"url"`
	SortOrder int           `json:"sort_order"`
}

// SortNavigationItems orders items by SortOrder ascending. The sort is
// stable: siblings with equal order keep their original fetch order.
func SortNavigationItems(items []NavigationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortOrder < items[j].SortOrder
	})
}

// TenantConfig is the branding half of a snapshot: theme, chrome, and
// navigation, each defaulted when missing upstream.
type TenantConfig struct {
	Theme        Theme              `json:"theme"`
	HeaderFooter HeaderFooterConfig `json:"header_footer"`
	NavItems     []NavigationItem   `json:"nav_items"`
}

// Snapshot is the immutable render-ready view of one tenant: identity,
// theme, chrome, and navigation. All fields are fully populated; loaders
// substitute defaults for anything missing upstream.
type Snapshot struct {
	Tenant       *Tenant            `json:"tenant"`
	Theme        Theme              `json:"theme"`
	HeaderFooter HeaderFooterConfig `json:"header_footer"`
	NavItems     []NavigationItem   `json:"nav_items"`
}
