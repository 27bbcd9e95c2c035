package compose

import (
	"extendbee/internal/page/models"
)

// Built-in section renderers. Each one normalizes the section's opaque
// config into the view model its block kind promises, substituting defaults
// for missing fields so a sparse config still renders.

// DefaultRegistry returns a registry with every built-in section renderer.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("hero", renderHero)
	r.Register("rich_text", renderRichText)
	r.Register("image_banner", renderImageBanner)
	r.Register("product_grid", renderProductGrid)
	r.Register("spacer", renderSpacer)
	return r
}

// DefaultPageTypes returns a registry with every built-in page renderer.
// Standard pages and homepages carry no built-in content of their own.
func DefaultPageTypes() *PageTypeRegistry {
	r := NewPageTypeRegistry()
	r.Register(models.PageTypeCategory, renderCategoryBrowser)
	return r
}

func renderHero(section models.Section) Block {
	return Block{Kind: "hero", Data: map[string]any{
		"title":     str(section.Config, "title", ""),
		"subtitle":  str(section.Config, "subtitle", ""),
		"image_url": str(section.Config, "image_url", ""),
		"cta_label": str(section.Config, "cta_label", ""),
		"cta_url":   str(section.Config, "cta_url", ""),
	}}
}

func renderRichText(section models.Section) Block {
	return Block{Kind: "rich_text", Data: map[string]any{
		"body": str(section.Config, "body", ""),
	}}
}

func renderImageBanner(section models.Section) Block {
	return Block{Kind: "image_banner", Data: map[string]any{
		"image_url": str(section.Config, "image_url", ""),
		"alt":       str(section.Config, "alt", ""),
		"link_url":  str(section.Config, "link_url", ""),
	}}
}

func renderProductGrid(section models.Section) Block {
	return Block{Kind: "product_grid", Data: map[string]any{
		"heading":     str(section.Config, "heading", ""),
		"product_ids": list(section.Config, "product_ids"),
		"columns":     number(section.Config, "columns", 3),
	}}
}

func renderSpacer(section models.Section) Block {
	return Block{Kind: "spacer", Data: map[string]any{
		"height": str(section.Config, "height", "2rem"),
	}}
}

// renderCategoryBrowser is the built-in content for category pages.
func renderCategoryBrowser(page *models.Page) []Block {
	return []Block{{Kind: "category_browser", Data: map[string]any{
		"category_slug": page.Slug.String(),
		"title":         page.Title,
	}}}
}

func str(config map[string]any, key, fallback string) string {
	if v, ok := config[key].(string); ok {
		return v
	}
	return fallback
}

func number(config map[string]any, key string, fallback float64) float64 {
	switch v := config[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

func list(config map[string]any, key string) []any {
	if v, ok := config[key].([]any); ok {
		return v
	}
	return []any{}
}
