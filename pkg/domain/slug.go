package domain

import (
	"regexp"
	"strings"

	dErrors "extendbee/pkg/domain-errors"
)

// Slug is a tenant or page slug: the URL-safe identity used in subdomains and
// path prefixes. Slugs are always stored and compared lowercase.
type Slug string

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ParseSlug normalizes and validates a slug. A slug must be non-empty,
// lowercase alphanumeric with single hyphen separators, and must not contain
// dots - a dotted candidate would indicate a nested subdomain.
func ParseSlug(s string) (Slug, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "slug cannot be empty")
	}
	if len(normalized) > 63 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "slug must be 63 characters or less")
	}
	if !slugPattern.MatchString(normalized) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "slug must be lowercase alphanumeric with hyphens")
	}
	return Slug(normalized), nil
}

func (s Slug) String() string { return string(s) }

func (s Slug) IsEmpty() bool { return s == "" }
