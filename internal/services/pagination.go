package services

import (
	"fmt"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// PageRequest is the listing contract shared by every search/list operation:
// zero-based page index, page size >= 1, and a whitelisted sort field.
type PageRequest struct {
	Page      int
	PageSize  int
	SortField string
	SortDir   SortDirection
}

// Page carries one slice of an ordered result set plus its metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

func newPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, TotalCount: total, Page: req.Page, PageSize: req.PageSize}
}

func (p PageRequest) offset() int {
	return p.Page * p.PageSize
}

// orderClause validates the request and resolves the sort field against the
// caller's whitelist (request name -> column expression). The whitelist keeps
// user input out of the ORDER BY.
func (p PageRequest) orderClause(allowed map[string]string, defaultField string) (string, error) {
	if p.Page < 0 {
		return "", errValidation("page index must not be negative")
	}
	if p.PageSize < 1 {
		return "", errValidation("page size must be at least 1")
	}
	field := p.SortField
	if field == "" {
		field = defaultField
	}
	column, ok := allowed[field]
	if !ok {
		return "", errValidation("can not sort by %q", field)
	}
	dir := p.SortDir
	if dir == "" {
		dir = SortDesc
	}
	if dir != SortAsc && dir != SortDesc {
		return "", errValidation("sort direction must be ASC or DESC")
	}
	return fmt.Sprintf("%s %s", column, dir), nil
}
