package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl marks successful GET responses as cacheable by clients for
// maxAge seconds. Other methods pass through untouched.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("private, max-age=%d", maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
