// Package query is the shared filter engine and pagination window behind
// every management screen. Each screen supplies a Spec (its searchable
// fields, discriminator, and sortable keys); the engine itself knows
// nothing about entities or roles.
package query

import (
	"sort"
	"strings"
)

// Direction orders a sorted sequence.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultPageSize matches the screens' rows-per-page default.
const DefaultPageSize = 5

// FilterAll bypasses the discriminator predicate.
const FilterAll = "all"

// Criteria is the transient per-screen view state. It is owned by one
// screen visit and discarded on navigation away.
type Criteria struct {
	SearchText    string
	Filter        string
	SortField     string
	SortDirection Direction
	Page          int
	PageSize      int
}

// NewCriteria returns the state a screen starts with.
func NewCriteria() Criteria {
	return Criteria{Filter: FilterAll, SortDirection: Asc, PageSize: DefaultPageSize}
}

// SetSearch updates the search text and snaps back to the first page, so
// the window never silently points past the new last page.
func (c *Criteria) SetSearch(s string) {
	c.SearchText = s
	c.Page = 0
}

// SetFilter updates the discriminator filter and snaps back to the first page.
func (c *Criteria) SetFilter(f string) {
	if f == "" {
		f = FilterAll
	}
	c.Filter = f
	c.Page = 0
}

// SetPageSize updates the window size and snaps back to the first page.
func (c *Criteria) SetPageSize(n int) {
	if n > 0 {
		c.PageSize = n
	}
	c.Page = 0
}

// SetSort orders by the given field. Sorting reorders the same derived
// sequence, so the page is kept.
func (c *Criteria) SetSort(field string, dir Direction) {
	c.SortField = field
	if dir != Desc {
		dir = Asc
	}
	c.SortDirection = dir
}

// SetPage moves the window. Negative pages clamp to 0.
func (c *Criteria) SetPage(p int) {
	if p < 0 {
		p = 0
	}
	c.Page = p
}

// Spec configures the engine for one screen.
type Spec[T any] struct {
	// SearchFields extract the string fields a substring search runs over.
	// A record matches when any field contains the search text.
	SearchFields []func(T) string
	// FilterValue extracts the discriminator compared against
	// Criteria.Filter. Nil disables the predicate entirely.
	FilterValue func(T) string
	// SortKeys maps a sort field name to an ascending comparator
	// (negative when a orders before b).
	SortKeys map[string]func(a, b T) int
}

// Filter derives the ordered sequence a screen renders: search and
// discriminator predicates intersected, then the optional sort. The input
// slice is never mutated and ties keep their original relative order.
func Filter[T any](records []T, c Criteria, spec Spec[T]) []T {
	needle := strings.ToLower(c.SearchText)

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if needle != "" && !matchesSearch(rec, needle, spec.SearchFields) {
			continue
		}
		if spec.FilterValue != nil && c.Filter != "" && c.Filter != FilterAll {
			if spec.FilterValue(rec) != c.Filter {
				continue
			}
		}
		out = append(out, rec)
	}

	if c.SortField != "" {
		if cmp, ok := spec.SortKeys[c.SortField]; ok {
			sort.SliceStable(out, func(i, j int) bool {
				if c.SortDirection == Desc {
					return cmp(out[i], out[j]) > 0
				}
				return cmp(out[i], out[j]) < 0
			})
		}
	}

	return out
}

func matchesSearch[T any](rec T, needle string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(rec)), needle) {
			return true
		}
	}
	return false
}

// Window is one visible slice of a derived sequence plus the total the
// page-count control needs.
type Window[T any] struct {
	Visible []T
	Total   int
}

// Paginate cuts the window [page*pageSize, page*pageSize+pageSize) out of
// the sequence, clamped to its bounds. An out-of-range window is empty,
// not an error.
func Paginate[T any](records []T, page, pageSize int) Window[T] {
	w := Window[T]{Total: len(records)}
	if page < 0 || pageSize <= 0 {
		return w
	}
	start := page * pageSize
	if start >= len(records) {
		return w
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	w.Visible = records[start:end]
	return w
}
