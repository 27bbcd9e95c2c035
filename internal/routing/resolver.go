// Package routing decides, from a request's hostname and path, which tenant
// is being addressed and under which addressing mode. The decision is
// computed once per request and threaded through explicitly; nothing
// downstream re-derives tenant identity from raw host or path data.
package routing

import (
	"strings"

	"extendbee/internal/platform/config"
	id "extendbee/pkg/domain"
)

// Mode is how the request addresses the tenant.
type Mode string

const (
	// ModeSubdomain addresses the tenant by hostname, e.g. bombay.extendbee.com.
	ModeSubdomain Mode = "subdomain"
	// ModePath addresses the tenant by a /store/:slug path prefix on a root
	// domain.
	ModePath Mode = "path"
)

// Decision is the resolved addressing for one request. It is a value, never
// persisted, and identical inputs always yield an identical Decision.
type Decision struct {
	Mode Mode
	// SlugCandidate is the tenant slug extracted from the hostname or path.
	// Empty when the request does not address a tenant. A candidate is not
	// yet a tenant; only the directory can confirm one exists.
	SlugCandidate id.Slug
}

// HasCandidate reports whether resolution produced a slug to look up.
func (d Decision) HasCandidate() bool { return !d.SlugCandidate.IsEmpty() }

// Resolver derives routing decisions from static domain configuration.
// Adding a root domain or reserving a name is a config change only.
type Resolver struct {
	rootDomains []string
	reserved    map[string]struct{}
}

// NewResolver builds a Resolver from routing configuration. Reserved names
// match case-insensitively.
func NewResolver(cfg config.Routing) *Resolver {
	reserved := make(map[string]struct{}, len(cfg.ReservedSubdomains))
	for _, name := range cfg.ReservedSubdomains {
		reserved[strings.ToLower(name)] = struct{}{}
	}
	roots := make([]string, 0, len(cfg.RootDomains))
	for _, root := range cfg.RootDomains {
		roots = append(roots, strings.ToLower(root))
	}
	return &Resolver{rootDomains: roots, reserved: reserved}
}

// Resolve maps a hostname and path to a Decision. It is a total function:
// it never errors and performs no I/O.
//
// A hostname of the form sub.<root> yields subdomain mode with slug sub,
// unless sub is reserved, contains a dot (nested subdomains are never
// tenants), or is empty. Everything else, including the bare root domain and
// www, falls back to path mode, where the slug is read from a /store/:slug
// path segment when present.
func (r *Resolver) Resolve(hostname, path string) Decision {
	host := strings.ToLower(stripPort(hostname))

	for _, root := range r.rootDomains {
		if host == root || host == "www."+root {
			return pathDecision(path)
		}
		candidate, ok := strings.CutSuffix(host, "."+root)
		if !ok {
			continue
		}
		if candidate == "" || strings.Contains(candidate, ".") {
			return pathDecision(path)
		}
		if _, isReserved := r.reserved[candidate]; isReserved {
			return pathDecision(path)
		}
		slug, err := id.ParseSlug(candidate)
		if err != nil {
			return pathDecision(path)
		}
		return Decision{Mode: ModeSubdomain, SlugCandidate: slug}
	}

	return pathDecision(path)
}

// pathDecision extracts the slug from a /store/:slug prefix, if any.
func pathDecision(path string) Decision {
	d := Decision{Mode: ModePath}
	rest, ok := strings.CutPrefix(path, "/store/")
	if !ok {
		return d
	}
	segment, _, _ := strings.Cut(rest, "/")
	slug, err := id.ParseSlug(segment)
	if err != nil {
		return d
	}
	d.SlugCandidate = slug
	return d
}

// stripPort removes a trailing :port from a hostname. Hostnames here are
// DNS names, never bracketed IPv6 literals.
func stripPort(hostname string) string {
	if i := strings.LastIndexByte(hostname, ':'); i >= 0 {
		return hostname[:i]
	}
	return hostname
}
