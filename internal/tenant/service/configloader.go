package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"extendbee/internal/platform/tracing"
	"extendbee/internal/tenant/metrics"
	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/circuit"
	"extendbee/pkg/platform/sentinel"
)

// configFetchTimeout bounds the whole branding load; a slow branding backend
// must not hold the storefront hostage. While the breaker is open the budget
// shrinks to a probe, so a dead backend costs milliseconds, not seconds.
const (
	configFetchTimeout = 5 * time.Second
	configProbeTimeout = 500 * time.Millisecond
)

// configFetchResult holds results from the three branding fetches.
// Each goroutine writes to its own fields, avoiding data races.
type configFetchResult struct {
	theme      models.Theme
	themeOK    bool
	chrome     models.HeaderFooterConfig
	chromeOK   bool
	navItems   []models.NavigationItem
	navItemsOK bool
}

// ConfigLoader assembles a tenant's branding configuration. The three
// lookups run concurrently; a failure in any one degrades that field to its
// default instead of failing the whole load, because theme absence must
// never prevent a storefront from rendering.
type ConfigLoader struct {
	branding BrandingStore
	breaker  *circuit.Breaker
	metrics  *metrics.Metrics
	tracer   tracing.Tracer
	logger   *slog.Logger
}

// NewConfigLoader constructs a ConfigLoader. metrics may be nil; tracer
// defaults to a no-op when nil.
func NewConfigLoader(branding BrandingStore, m *metrics.Metrics, tracer tracing.Tracer, logger *slog.Logger) *ConfigLoader {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &ConfigLoader{
		branding: branding,
		breaker:  circuit.New("branding"),
		metrics:  m,
		tracer:   tracer,
		logger:   logger,
	}
}

// Load fetches theme, chrome, and navigation concurrently and merges the
// results once all settle. Navigation items come back sorted by sort order
// ascending, ties broken by original fetch order.
func (l *ConfigLoader) Load(ctx context.Context, tenantID id.TenantID) models.TenantConfig {
	ctx, span := l.tracer.Start(ctx, tracing.SpanLoadConfig)
	defer span.End(nil)

	timeout := configFetchTimeout
	if l.breaker.IsOpen() {
		timeout = configProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	// Isolated result holders - each goroutine writes to its own fields.
	var result configFetchResult

	g.Go(func() error {
		theme, err := l.branding.ActiveTheme(ctx, tenantID)
		if err != nil {
			l.degrade(ctx, "theme", tenantID, err)
			return nil
		}
		l.recordSuccess(ctx)
		result.theme = theme
		result.themeOK = true
		return nil
	})

	g.Go(func() error {
		chrome, err := l.branding.HeaderFooter(ctx, tenantID)
		if err != nil {
			l.degrade(ctx, "header_footer", tenantID, err)
			return nil
		}
		l.recordSuccess(ctx)
		result.chrome = chrome
		result.chromeOK = true
		return nil
	})

	g.Go(func() error {
		items, err := l.branding.NavigationItems(ctx, tenantID)
		if err != nil {
			l.degrade(ctx, "navigation", tenantID, err)
			return nil
		}
		l.recordSuccess(ctx)
		result.navItems = items
		result.navItemsOK = true
		return nil
	})

	// Branches degrade instead of failing, so Wait never returns an error.
	_ = g.Wait()

	cfg := models.TenantConfig{
		Theme:        models.DefaultTheme(),
		HeaderFooter: models.DefaultHeaderFooter(),
	}
	if result.themeOK {
		cfg.Theme = result.theme
	}
	if result.chromeOK {
		cfg.HeaderFooter = result.chrome
	}
	if result.navItemsOK {
		cfg.NavItems = result.navItems
	}
	models.SortNavigationItems(cfg.NavItems)
	return cfg
}

// degrade records one branding field falling back to its default. Not-found
// is an expected state for fresh tenants and logs at debug; real failures
// log at warn. Neither surfaces to the shopper.
func (l *ConfigLoader) degrade(ctx context.Context, field string, tenantID id.TenantID, err error) {
	if l.metrics != nil {
		l.metrics.ConfigDegraded.WithLabelValues(field).Inc()
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		// An expected state for fresh tenants; the backend is healthy.
		l.recordSuccess(ctx)
		l.logger.DebugContext(ctx, "branding field missing, using default",
			"field", field,
			"tenant_id", tenantID,
		)
		return
	}
	if opened := l.breaker.RecordFailure(); opened {
		l.logger.WarnContext(ctx, "branding circuit opened", "breaker", l.breaker.Name())
	}
	l.logger.WarnContext(ctx, "branding fetch degraded to default",
		"field", field,
		"tenant_id", tenantID,
		"error", err,
	)
}

func (l *ConfigLoader) recordSuccess(ctx context.Context) {
	if closed := l.breaker.RecordSuccess(); closed {
		l.logger.InfoContext(ctx, "branding circuit closed", "breaker", l.breaker.Name())
	}
}
