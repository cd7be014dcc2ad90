package middleware

import "net/http"

// SetJSONContentType marks every API response as JSON; handlers that need a
// different type (problem+json) override it themselves.
func SetJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
