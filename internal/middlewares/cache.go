package middlewares

import (
	"fmt"
	"net/http"
	"time"
)

// Cache marks responses as cacheable for maxAge. Clients may keep serving a stale
// copy for another maxAge while they revalidate.
func Cache(maxAge time.Duration) func(http.Handler) http.Handler {
	seconds := int(maxAge.Seconds())
	value := fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", seconds, seconds)
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
			}
			handler.ServeHTTP(w, r)
		})
	}
}
