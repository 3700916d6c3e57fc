// internal/repository/query.go
package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Reserved query parameters. Everything else is treated as a field filter.
const (
	paramSelect = "select"
	paramSort   = "sort"
	paramPage   = "page"
	paramLimit  = "limit"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	defaultOrder = "created_at DESC"
)

// operatorPrefixes maps recognized value prefixes to SQL comparators.
var operatorPrefixes = []struct {
	prefix string
	op     string
}{
	{"gte:", ">="},
	{"lte:", "<="},
	{"gt:", ">"},
	{"lt:", "<"},
	{"ne:", "<>"},
}

// Collection describes one queryable table for the listing engine. The
// engine itself carries no entity-specific logic; scoping and column
// allow-lists are the only per-collection inputs.
type Collection struct {
	// Columns is the allow-list of fields that may appear in filters,
	// sort expressions and projections. Unknown fields are ignored, never
	// interpolated into SQL.
	Columns map[string]bool

	// Scope, when set, is a mandatory predicate applied ahead of any
	// user-supplied filter (tenant isolation).
	Scope func(db *gorm.DB) *gorm.DB

	// ScopedColumns lists fields covered by Scope. User filters naming
	// them are dropped so the scoping predicate cannot be overridden.
	ScopedColumns map[string]bool
}

type filter struct {
	column string
	op     string
	value  string
}

type queryPlan struct {
	filters []filter
	selects []string
	orderBy string
	page    int
	limit   int
	offset  int
}

// buildPlan partitions raw client parameters into the reserved control keys
// and field filters, producing a bounded query plan.
func buildPlan(col Collection, raw url.Values) queryPlan {
	plan := queryPlan{
		orderBy: defaultOrder,
		page:    positiveInt(raw.Get(paramPage), defaultPage),
		limit:   positiveInt(raw.Get(paramLimit), defaultLimit),
	}
	plan.offset = (plan.page - 1) * plan.limit

	for key, values := range raw {
		switch key {
		case paramSelect, paramSort, paramPage, paramLimit:
			continue
		}
		if !col.Columns[key] || col.ScopedColumns[key] || len(values) == 0 {
			continue
		}

		op, value := "=", values[0]
		for _, p := range operatorPrefixes {
			if strings.HasPrefix(value, p.prefix) {
				op, value = p.op, strings.TrimPrefix(value, p.prefix)
				break
			}
		}
		plan.filters = append(plan.filters, filter{column: key, op: op, value: value})
	}

	if sel := raw.Get(paramSelect); sel != "" {
		for _, field := range strings.Split(sel, ",") {
			field = strings.TrimSpace(field)
			if col.Columns[field] {
				plan.selects = append(plan.selects, field)
			}
		}
	}

	if sort := raw.Get(paramSort); sort != "" {
		var clauses []string
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			dir := "ASC"
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				dir = "DESC"
			}
			if col.Columns[field] {
				clauses = append(clauses, field+" "+dir)
			}
		}
		if len(clauses) > 0 {
			plan.orderBy = strings.Join(clauses, ", ")
		}
	}

	return plan
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Page identifies an adjacent result page.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev markers; either is omitted when out of range.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// paginate computes next/prev against the overall collection count.
func paginate(page, limit int, total int64) Pagination {
	var p Pagination
	if int64(page*limit) < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if (page-1)*limit > 0 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return p
}

// ListResult is the outcome of one advanced listing query.
type ListResult[T any] struct {
	Items      []T
	Count      int
	Pagination Pagination
}

// List builds and runs a filtered, sorted, paginated read over the
// collection. The pagination total is the unfiltered size of the base
// collection, matching the documented behavior of the listing endpoints.
func List[T any](ctx context.Context, db *gorm.DB, col Collection, raw url.Values) (*ListResult[T], error) {
	plan := buildPlan(col, raw)

	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting collection: %w", err)
	}

	q := db.WithContext(ctx).Model(new(T))
	if col.Scope != nil {
		q = col.Scope(q)
	}
	for _, f := range plan.filters {
		q = q.Where(fmt.Sprintf("%s %s ?", f.column, f.op), f.value)
	}
	if len(plan.selects) > 0 {
		q = q.Select(plan.selects)
	}

	var items []T
	if err := q.Order(plan.orderBy).Offset(plan.offset).Limit(plan.limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing collection: %w", err)
	}

	return &ListResult[T]{
		Items:      items,
		Count:      len(items),
		Pagination: paginate(plan.page, plan.limit, total),
	}, nil
}
