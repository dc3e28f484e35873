// Package rowfilter narrows in-memory score tables by agency type, region
// and row status.
package rowfilter

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// AnyValue is the selector value meaning "no filter".
const AnyValue = "all"

// Criteria holds the optional predicates. An empty field or "all" matches
// everything.
type Criteria struct {
	Type   string
	Region string
	Status string
}

func unset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AnyValue)
}

// IsDefault reports whether no predicate narrows the view.
func (c Criteria) IsDefault() bool {
	return unset(c.Type) && unset(c.Region) && unset(c.Status)
}

// FromRequest reads ?tipe=, ?provinsi= and ?status= (with an optional
// prefix so one page can carry independent filters per table).
func FromRequest(r *http.Request, prefix string) Criteria {
	return Criteria{
		Type:   query.Get(r, prefix+"tipe"),
		Region: query.Get(r, prefix+"provinsi"),
		Status: query.Get(r, prefix+"status"),
	}
}

// Owner is what a row joins to: the type and region of its agency.
type Owner struct {
	Type   string
	Region string
}

// Filter returns the rows matching c, preserving order.
//
// owner resolves a row's agency; status returns the row's own status (nil
// when the table has no status column). A row whose owner cannot be
// resolved is kept only while every predicate is unset.
func Filter[T any](rows []T, c Criteria, owner func(T) (Owner, bool), status func(T) string) []T {
	out := make([]T, 0, len(rows))
	def := c.IsDefault()
	for _, row := range rows {
		o, ok := owner(row)
		if !ok {
			if def {
				out = append(out, row)
			}
			continue
		}
		if !unset(c.Type) && o.Type != c.Type {
			continue
		}
		if !unset(c.Region) && o.Region != c.Region {
			continue
		}
		if !unset(c.Status) && (status == nil || status(row) != c.Status) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Index maps agency ids to their submission.
type Index map[int64]models.Submission

// NewIndex builds an Index. The first submission of an agency wins.
func NewIndex(subs []models.Submission) Index {
	idx := make(Index, len(subs))
	for _, s := range subs {
		if _, dup := idx[s.IDDinas]; dup {
			continue
		}
		idx[s.IDDinas] = s
	}
	return idx
}

// Owner looks up the agency by id.
func (idx Index) Owner(id int64) (Owner, bool) {
	s, ok := idx[id]
	if !ok {
		return Owner{}, false
	}
	return Owner{Type: s.Tipe, Region: s.Provinsi}, true
}

// By adapts Owner to a row type through its agency-id accessor.
func By[T any](idx Index, id func(T) int64) func(T) (Owner, bool) {
	return func(row T) (Owner, bool) { return idx.Owner(id(row)) }
}

// Submissions filters the submission table itself. Every submission is its
// own owner.
func Submissions(subs []models.Submission, c Criteria) []models.Submission {
	self := func(s models.Submission) (Owner, bool) {
		return Owner{Type: s.Tipe, Region: s.Provinsi}, true
	}
	return Filter(subs, c, self, nil)
}

// Regions lists the distinct regions of subs in first-seen order.
func Regions(subs []models.Submission) []string {
	seen := make(map[string]struct{}, len(subs))
	out := make([]string, 0)
	for _, s := range subs {
		if s.Provinsi == "" {
			continue
		}
		if _, ok := seen[s.Provinsi]; ok {
			continue
		}
		seen[s.Provinsi] = struct{}{}
		out = append(out, s.Provinsi)
	}
	return out
}
