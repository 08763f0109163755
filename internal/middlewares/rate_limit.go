package middlewares

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit rejects requests with 429 once limiter runs out of tokens.
// A nil limiter disables limiting.
func RateLimit(limiter *rate.Limiter, handler http.Handler) http.Handler {
	if limiter == nil {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			slog.WarnContext(r.Context(), "Rate limit exceeded", slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too many requests, please slow down", http.StatusTooManyRequests)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
