// Package pager implements bidirectional cursor pagination over a collection
// ordered by a sortable identifier.
//
// A request is turned into an immutable Plan exactly once. The plan yields a
// single Range scan (exclusive bound, direction, limit+1 over-fetch) and then
// assembles the page and the cursors for the neighbouring pages from the
// scanned items.
package pager

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidLimit       = errors.New("limit must be a positive integer")
	ErrConflictingCursors = errors.New("after and before cursors are mutually exclusive")
	ErrInvalidSort        = errors.New("unknown sort order")
)

// Sort is the externally visible order of a page.
type Sort string

const (
	SortCreatedOnAsc  Sort = "createdOn_ASC"
	SortCreatedOnDesc Sort = "createdOn_DESC"
)

func (s Sort) Valid() bool {
	return s == SortCreatedOnAsc || s == SortCreatedOnDesc
}

// Request carries the caller's paging parameters. A nil Limit selects
// DefaultLimit. An empty Sort selects SortCreatedOnDesc.
type Request struct {
	Limit  *int
	Sort   Sort
	After  string
	Before string
}

// Range is the single ordered scan executed for a page. GT and LT are
// exclusive bounds on the sort key; an empty value means unbounded.
type Range struct {
	GT      string
	LT      string
	Reverse bool
	Limit   int
}

// Meta describes the cursors of the neighbouring pages. A nil cursor means
// there is no page in that direction.
type Meta struct {
	Limit  int     `json:"limit"`
	After  *string `json:"after"`
	Before *string `json:"before"`
}

// Page is one slice of the collection in the requested order.
type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// Plan is the per-request paging decision.
type Plan struct {
	limit    int
	backward bool
	after    string
	scan     Range
}

// ResolveLimit applies the default to an absent limit, rejects non-positive
// values and clamps to MaxLimit.
func ResolveLimit(limit *int) (int, error) {
	if limit == nil {
		return DefaultLimit, nil
	}
	if *limit <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidLimit, *limit)
	}
	return min(*limit, MaxLimit), nil
}

// NewPlan validates the request and computes the scan to execute.
func NewPlan(req Request) (Plan, error) {
	limit, err := ResolveLimit(req.Limit)
	if err != nil {
		return Plan{}, err
	}
	if req.After != "" && req.Before != "" {
		return Plan{}, ErrConflictingCursors
	}
	sort := lo.Ternary(req.Sort == "", SortCreatedOnDesc, req.Sort)
	if !sort.Valid() {
		return Plan{}, fmt.Errorf("%w: %q", ErrInvalidSort, req.Sort)
	}

	reverse := sort != SortCreatedOnAsc
	p := Plan{limit: limit, after: req.After}

	var bound string
	switch {
	case req.Before != "":
		p.backward = true
		reverse = !reverse
		bound = req.Before
	case req.After != "":
		bound = req.After
	}

	p.scan = Range{Reverse: reverse, Limit: limit + 1}
	if bound != "" {
		if reverse {
			p.scan.LT = bound
		} else {
			p.scan.GT = bound
		}
	}
	return p, nil
}

// Limit is the effective page size.
func (p Plan) Limit() int { return p.limit }

// Backward reports whether the plan pages towards the start of the
// requested order.
func (p Plan) Backward() bool { return p.backward }

// Range returns the scan the plan needs.
func (p Plan) Range() Range { return p.scan }

// Assemble builds the page from the items returned by the plan's Range scan,
// in scan order. key extracts the cursor value of an item.
func Assemble[T any](p Plan, items []T, key func(T) string) Page[T] {
	n := min(len(items), p.limit)
	data := make([]T, n)
	copy(data, items[:n])
	meta := Meta{Limit: p.limit}
	more := len(items) > p.limit

	if p.backward {
		slices.Reverse(data)
		if n > 0 {
			meta.After = lo.ToPtr(key(items[0]))
		}
		if more {
			meta.Before = lo.ToPtr(key(items[n-1]))
		}
		return Page[T]{Data: data, Meta: meta}
	}

	if more {
		meta.After = lo.ToPtr(key(items[n-1]))
	}
	if p.after != "" && n > 0 {
		meta.Before = lo.ToPtr(key(data[0]))
	}
	return Page[T]{Data: data, Meta: meta}
}

// Fetcher executes a Range scan against the underlying ordered store.
type Fetcher[T any] func(ctx context.Context, r Range) ([]T, error)

// Paginate plans the request, runs the scan once and assembles the page.
// Errors from fetch are returned as-is.
func Paginate[T any](ctx context.Context, req Request, fetch Fetcher[T], key func(T) string) (*Page[T], error) {
	plan, err := NewPlan(req)
	if err != nil {
		return nil, err
	}
	items, err := fetch(ctx, plan.Range())
	if err != nil {
		return nil, err
	}
	page := Assemble(plan, items, key)
	return &page, nil
}
