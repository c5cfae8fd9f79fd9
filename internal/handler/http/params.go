package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/akg580/review-insights/internal/filter"
)

// criteriaFromQuery reads the search and filter parameters shared by the
// review list and the reviews export.
func criteriaFromQuery(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.Criteria{
		Query:     q.Get("q"),
		Brand:     q.Get("brand"),
		Category:  q.Get("category"),
		Source:    q.Get("source"),
		DateRange: filter.DateRange(q.Get("date_range")),
	}
	if v := q.Get("rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("rating must be an integer, got %q", v)
		}
		c.Rating = &n
	}
	return c, nil
}
