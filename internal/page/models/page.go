// Package models defines pages and their typed content sections.
package models

import (
	"sort"

	id "extendbee/pkg/domain"
)

// PageType selects the built-in content a page carries besides its sections.
type PageType string

const (
	PageTypeStandard PageType = "standard"
	PageTypeHomepage PageType = "homepage"
	PageTypeCategory PageType = "category"
)

// Page is one published or draft page owned by a tenant. At most one
// published page per tenant has PageTypeHomepage; that page doubles as the
// fallback when a requested slug matches nothing.
type Page struct {
	ID         id.PageID   `json:"id"`
	TenantID   id.TenantID `json:"tenant_id"`
	Slug       id.Slug     `json:"slug"`
	Type       PageType    `json:"type"`
	Title      string      `json:"title"`
	ShowHeader bool        `json:"show_header"`
	ShowFooter bool        `json:"show_footer"`
	Published  bool        `json:"published"`
}

// SectionPosition places a section relative to the page's built-in content.
// The zero value means unset, which renders below for backward
// compatibility with sections created before positions existed.
type SectionPosition string

const (
	PositionAbove SectionPosition = "above"
	PositionBelow SectionPosition = "below"
)

// RendersAbove reports whether the section renders before the page's
// built-in content.
func (p SectionPosition) RendersAbove() bool { return p == PositionAbove }

// Section is one typed content block on a page. Config is opaque at this
// layer; only the renderer registered for Type knows its shape.
type Section struct {
	ID        id.SectionID    `json:"id"`
	PageID    id.PageID       `json:"page_id"`
	Type      string          `json:"type"`
	Config    map[string]any  `json:"config"`
	Visible   bool            `json:"visible"`
	SortOrder int             `json:"sort_order"`
	Position  SectionPosition `json:"position,omitempty"`
}

// SortSections orders sections by sort order ascending, ties keeping their
// original fetch order.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
}
