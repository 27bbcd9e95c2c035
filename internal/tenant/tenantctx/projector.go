package tenantctx

import (
	"sync"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
)

// ThemeProjector owns the process-wide style variable set derived from the
// active tenant's theme. Only one tenant's theme is projected at a time;
// applying a new theme replaces the previous owner's variables wholesale.
type ThemeProjector struct {
	mu    sync.Mutex
	owner id.Slug
	gen   uint64
	vars  map[string]string
}

func NewThemeProjector() *ThemeProjector {
	return &ThemeProjector{vars: map[string]string{}}
}

// Apply projects the theme's values as style variables and records slug as
// the current owner. The returned release function undoes exactly this
// application: it clears the projection only while this application is still
// the active one, so a release arriving after a newer Apply is a no-op.
func (p *ThemeProjector) Apply(slug id.Slug, theme models.Theme) (release func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	gen := p.gen
	p.owner = slug
	p.vars = projectVars(theme)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen != gen {
			return
		}
		p.owner = ""
		p.vars = map[string]string{}
	}
}

// Owner reports which tenant's theme is currently projected.
func (p *ThemeProjector) Owner() (id.Slug, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.owner, p.owner != ""
}

// Vars returns a copy of the projected style variables.
func (p *ThemeProjector) Vars() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.vars))
	for k, v := range p.vars {
		out[k] = v
	}
	return out
}

// projectVars flattens a theme into namespaced style variables.
func projectVars(theme models.Theme) map[string]string {
	vars := make(map[string]string, len(theme.Colors)+len(theme.Typography)+len(theme.Layout))
	for k, v := range theme.Colors {
		vars["--color-"+k] = v
	}
	for k, v := range theme.Typography {
		vars["--font-"+k] = v
	}
	for k, v := range theme.Layout {
		vars["--layout-"+k] = v
	}
	return vars
}
