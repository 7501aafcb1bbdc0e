// Package deploy publishes generated HTML under a per-lead slug using one
// of several hosting backends behind a single Strategy contract, so the
// lifecycle layer never knows which backend is configured.
package deploy

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Result is the uniform outcome of one deployment attempt. Published
// reports whether the content is (or will shortly be) reachable at
// ProductionURL; Detail carries strategy-specific recovery or warning
// information when it is not.
type Result struct {
	ProductionURL string `json:"url"`
	Published     bool   `json:"published"`
	Detail        string `json:"detail,omitempty"`
}

// Strategy publishes one HTML document under a slug. Deployment is not
// atomic: a partial failure still reports what succeeded so the caller can
// retry only the failed stage.
type Strategy interface {
	Name() string
	Deploy(ctx context.Context, slug, html string) (*Result, error)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug enforces a URL-safe path segment.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug %q must be lowercase letters, digits and hyphens", slug)
	}
	return nil
}

// productionURL builds the canonical public URL for a slug on the
// configured domain. Scheme prefixes and trailing slashes in the
// configured value are tolerated.
func productionURL(domain, slug string) string {
	d := strings.TrimSuffix(domain, "/")
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return fmt.Sprintf("https://%s/%s", d, slug)
}
