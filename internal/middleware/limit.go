package middleware

import "net/http"

// LimitBytes caps the request body; oversized uploads fail at read time
// inside the handler instead of exhausting memory.
func LimitBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
