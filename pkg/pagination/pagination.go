// Package pagination reads page/per_page query parameters and slices
// in-memory result sets accordingly.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a validated page request.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// NewParams clamps page and perPage into range and derives the offset.
// Out-of-range values fall back to the defaults.
func NewParams(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return Params{Page: page, PerPage: perPage, Offset: (page - 1) * perPage}
}

// FromRequest reads ?page= and ?per_page=. Unparsable values are ignored.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return NewParams(page, perPage)
}

// Result is one page of items plus navigation metadata.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate returns the page of items selected by p.
func Paginate[T any](items []T, p Params) Result[T] {
	start := min(p.Offset, len(items))
	end := min(start+p.PerPage, len(items))

	page := make([]T, end-start)
	copy(page, items[start:end])
	return NewResult(page, len(items), p)
}

// NewResult wraps an already-sliced page.
func NewResult[T any](data []T, totalCount int, p Params) Result[T] {
	totalPages := (totalCount + p.PerPage - 1) / p.PerPage
	if data == nil {
		data = []T{}
	}
	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
