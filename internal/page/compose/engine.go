// Package compose turns a resolved page and its sections into an ordered
// list of render blocks. The engine dispatches on section type through a
// registry, so the section vocabulary can grow without touching the engine.
package compose

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"extendbee/internal/page/metrics"
	"extendbee/internal/page/models"
	"extendbee/internal/platform/tracing"
)

// Block is one unit of render output, a kind tag plus a view model the
// client renders without further lookups.
type Block struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data,omitempty"`
}

// Composition is the full ordered output for one page.
type Composition struct {
	PageTitle  string          `json:"page_title"`
	PageType   models.PageType `json:"page_type"`
	ShowHeader bool            `json:"show_header"`
	ShowFooter bool            `json:"show_footer"`
	Blocks     []Block         `json:"blocks"`
}

// SectionRenderer maps one section's opaque config to a render block.
type SectionRenderer func(section models.Section) Block

// PageRenderer produces the built-in blocks for one page type, rendered
// between the above and below section partitions.
type PageRenderer func(page *models.Page) []Block

// Registry maps section types to renderers. Registration is concurrency
// safe so plugins can register during startup fan-out.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]SectionRenderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: map[string]SectionRenderer{}}
}

// Register binds a section type to a renderer, replacing any previous one.
func (r *Registry) Register(sectionType string, renderer SectionRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[sectionType] = renderer
}

func (r *Registry) lookup(sectionType string) (SectionRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[sectionType]
	return renderer, ok
}

// PageTypeRegistry maps page types to their built-in content renderers.
// It is deliberately separate from the section registry; the two
// vocabularies evolve independently.
type PageTypeRegistry struct {
	mu        sync.RWMutex
	renderers map[models.PageType]PageRenderer
}

func NewPageTypeRegistry() *PageTypeRegistry {
	return &PageTypeRegistry{renderers: map[models.PageType]PageRenderer{}}
}

// Register binds a page type to a renderer, replacing any previous one.
func (r *PageTypeRegistry) Register(pageType models.PageType, renderer PageRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[pageType] = renderer
}

func (r *PageTypeRegistry) lookup(pageType models.PageType) (PageRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[pageType]
	return renderer, ok
}

// Engine composes pages. A section whose type has no registered renderer
// contributes nothing; the rest of the page still renders.
type Engine struct {
	sections  *Registry
	pageTypes *PageTypeRegistry
	metrics   *metrics.Metrics
	tracer    tracing.Tracer
	logger    *slog.Logger
}

// NewEngine constructs an Engine. metrics may be nil; tracer defaults to a
// no-op when nil.
func NewEngine(sections *Registry, pageTypes *PageTypeRegistry, m *metrics.Metrics, tracer tracing.Tracer, logger *slog.Logger) *Engine {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &Engine{sections: sections, pageTypes: pageTypes, metrics: m, tracer: tracer, logger: logger}
}

// Compose renders the page. Sections tagged above render before the page
// type's built-in content; sections tagged below, or with no position,
// render after. Within each partition the incoming sort order is kept.
func (e *Engine) Compose(ctx context.Context, page *models.Page, sections []models.Section) Composition {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, tracing.SpanComposePage,
		tracing.String(tracing.AttrPageType, string(page.Type)),
		tracing.Int64(tracing.AttrSectionCount, int64(len(sections))),
	)
	defer span.End(nil)

	var above, below []models.Section
	for _, section := range sections {
		if section.Position.RendersAbove() {
			above = append(above, section)
		} else {
			below = append(below, section)
		}
	}

	blocks := e.renderSections(ctx, above)
	if renderer, ok := e.pageTypes.lookup(page.Type); ok {
		blocks = append(blocks, renderer(page)...)
	}
	blocks = append(blocks, e.renderSections(ctx, below)...)

	if e.metrics != nil {
		e.metrics.ComposeSeconds.Observe(time.Since(start).Seconds())
	}

	return Composition{
		PageTitle:  page.Title,
		PageType:   page.Type,
		ShowHeader: page.ShowHeader,
		ShowFooter: page.ShowFooter,
		Blocks:     blocks,
	}
}

func (e *Engine) renderSections(ctx context.Context, sections []models.Section) []Block {
	var blocks []Block
	for _, section := range sections {
		renderer, ok := e.sections.lookup(section.Type)
		if !ok {
			if e.metrics != nil {
				e.metrics.UnknownSections.WithLabelValues(section.Type).Inc()
			}
			e.logger.DebugContext(ctx, "skipping section with unknown type",
				"section_id", section.ID,
				"section_type", section.Type,
			)
			continue
		}
		blocks = append(blocks, renderer(section))
	}
	return blocks
}
