package routing

import (
	"net/url"

	id "extendbee/pkg/domain"
)

// Links builds every tenant-facing URL for one resolved request. It is the
// single place that knows what a URL to X looks like under the current
// addressing mode; no other component concatenates a tenant prefix.
type Links struct {
	prefix string
}

// NewLinks builds a Links for the resolved tenant. Under subdomain mode
// paths are tenant-relative; under path mode every path carries the
// /store/:slug prefix.
func NewLinks(mode Mode, slug id.Slug) Links {
	if mode == ModePath && !slug.IsEmpty() {
		return Links{prefix: "/store/" + slug.String()}
	}
	return Links{}
}

func (l Links) Home() string    { return l.path("/") }
func (l Links) Catalog() string { return l.path("/catalog") }
func (l Links) Cart() string    { return l.path("/cart") }

func (l Links) Checkout() string { return l.path("/checkout") }

// Product links to one product's detail page.
func (l Links) Product(productSlug string) string {
	return l.path("/product/" + url.PathEscape(productSlug))
}

// Page links to an arbitrary published page by slug.
func (l Links) Page(pageSlug string) string {
	return l.path("/" + url.PathEscape(pageSlug))
}

// Auth links to the sign-in page, optionally carrying a post-login redirect.
func (l Links) Auth(redirect string) string {
	p := l.path("/auth/login")
	if redirect == "" {
		return p
	}
	return p + "?redirect=" + url.QueryEscape(redirect)
}

func (l Links) path(p string) string {
	if l.prefix == "" {
		return p
	}
	if p == "/" {
		return l.prefix
	}
	return l.prefix + p
}
