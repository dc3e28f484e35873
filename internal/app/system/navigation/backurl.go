// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/sipelita/dashboard/internal/app/system/authz"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/pusdatin/penilaian").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/finalize").
	// These prevent redirect loops back to action endpoints.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParams are query parameters copied onto the fallback
	// when present in the query or form (e.g., "year", "tab").
	PreserveQueryParams []string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", rejects
// anything that is not a same-site path, enforces the prefix and excluded
// subpaths, and otherwise builds the fallback.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := authz.SafeReturn(query.Get(r, "return"))
	if ret == "" {
		ret = authz.SafeReturn(strings.TrimSpace(r.FormValue("return")))
	}

	if ret != "" {
		valid := opts.AllowedPrefix == "" || strings.HasPrefix(ret, opts.AllowedPrefix)
		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}
		if valid {
			return ret
		}
	}

	q := url.Values{}
	for _, p := range opts.PreserveQueryParams {
		v := query.Get(r, p)
		if v == "" {
			v = strings.TrimSpace(r.FormValue(p))
		}
		if v != "" && v != "all" {
			q.Set(p, v)
		}
	}
	if len(q) == 0 {
		return opts.Fallback
	}
	sep := "?"
	if strings.Contains(opts.Fallback, "?") {
		sep = "&"
	}
	return opts.Fallback + sep + q.Encode()
}

// Back URL configurations shared by the dashboards.
var (
	// PenilaianBackURL returns mutations on the assessment page to the tab
	// they came from.
	PenilaianBackURL = BackURLOptions{
		AllowedPrefix:       "/pusdatin/penilaian",
		ExcludedSubpaths:    []string{"/upload", "/finalize", "/export", "/template", "/checklist", "/score"},
		Fallback:            "/pusdatin/penilaian",
		PreserveQueryParams: []string{"tab", "year"},
	}

	// AuditBackURL returns to the admin audit trail.
	AuditBackURL = BackURLOptions{
		AllowedPrefix: "/admin/audit",
		Fallback:      "/admin/audit",
	}
)
