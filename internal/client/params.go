package client

import "math"

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// SearchParams describes one page request: pagination plus optional sort and
// filter criteria. It is built per request and never persisted. Construct it
// through NewSearchParams so page and page size are always in range.
type SearchParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	FirstName string
	LastName  string
	Email     string
}

// NewSearchParams clamps pagination into valid bounds: page >= 1, page size
// in [1,50] with 10 as the default for missing or non-positive values. The
// page is additionally capped so the skip computation (page-1)*pageSize can
// never overflow; any page past the cap is already beyond the data and reads
// as empty.
func NewSearchParams(page, pageSize int) SearchParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if maxPage := math.MaxInt/pageSize + 1; page > maxPage {
		page = maxPage
	}
	return SearchParams{Page: page, PageSize: pageSize}
}

// HasFilter reports whether at least one filter criterion is present. The
// handler rejects filtered listings without one.
func (p SearchParams) HasFilter() bool {
	return p.FirstName != "" || p.LastName != "" || p.Email != ""
}

// HasSort reports whether both sort field and direction were supplied.
func (p SearchParams) HasSort() bool {
	return p.SortBy != "" && p.SortOrder != ""
}
