// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
)

// PerPage is the number of rows per page. All disables slicing.
type PerPage int

// All shows every row on a single page.
const All PerPage = 0

// Options offered by the rows-per-page selector.
var Options = []PerPage{All, 10, 25, 50, 100}

// String renders the selector value ("all" or the size).
func (p PerPage) String() string {
	if p <= All {
		return "all"
	}
	return strconv.Itoa(int(p))
}

// ParsePerPageValue parses "all" or one of the offered sizes. Anything else
// returns def.
func ParsePerPageValue(s string, def PerPage) PerPage {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "all" {
		return All
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	for _, o := range Options {
		if o != All && int(o) == n {
			return o
		}
	}
	return def
}

// ParsePerPage reads ?per_page=.
func ParsePerPage(r *http.Request, def PerPage) PerPage {
	return ParsePerPageParam(r, "per_page", def)
}

// ParsePerPageParam reads a page size from the named query parameter, for
// pages that carry more than one paged table.
func ParsePerPageParam(r *http.Request, name string, def PerPage) PerPage {
	return ParsePerPageValue(query.Get(r, name), def)
}

// ParsePage reads the 1-based ?page= parameter. Missing or invalid values
// return 1. Values past the last page are kept so Paginate can report an
// empty page.
func ParsePage(r *http.Request) int {
	return ParsePageParam(r, "page")
}

// ParsePageParam is ParsePage for a named parameter.
func ParsePageParam(r *http.Request, name string) int {
	s := query.Get(r, name)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Page is one slice of a filtered row set plus what the pager needs.
type Page[T any] struct {
	Items      []T
	Number     int // requested page clamped to [1, TotalPages]
	TotalPages int
	Total      int
	PerPage    PerPage
	RangeStart int // 1-based index of the first item, 0 when empty
	RangeEnd   int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// PrevPage is the previous page number.
func (p Page[T]) PrevPage() int { return p.Number - 1 }

// NextPage is the next page number.
func (p Page[T]) NextPage() int { return p.Number + 1 }

// Numbers lists every page number for the pager.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Paginate returns page number of rows with perPage rows per page.
//
// All returns every row as page 1 of 1. A page past the end returns no
// items rather than an error; Number is still clamped so navigation links
// stay valid.
func Paginate[T any](rows []T, perPage PerPage, number int) Page[T] {
	total := len(rows)
	if perPage <= All {
		p := Page[T]{Items: rows, Number: 1, TotalPages: 1, Total: total, PerPage: All}
		if total > 0 {
			p.RangeStart, p.RangeEnd = 1, total
		}
		return p
	}

	n := int(perPage)
	pages := (total + n - 1) / n
	if pages < 1 {
		pages = 1
	}
	if number < 1 {
		number = 1
	}

	p := Page[T]{Number: min(number, pages), TotalPages: pages, Total: total, PerPage: perPage}
	start := (number - 1) * n
	if start >= total {
		p.Items = []T{}
		return p
	}
	end := min(start+n, total)
	p.Items = rows[start:end]
	p.RangeStart, p.RangeEnd = start+1, end
	return p
}
