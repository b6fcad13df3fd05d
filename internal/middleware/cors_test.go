package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, origins []string, origin, method string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/match", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	CORS(origins)(next).ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowAll(t *testing.T) {
	rec := corsRequest(t, []string{"*"}, "https://app.example.com", http.MethodGet)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfiguredOriginsAreTrimmed(t *testing.T) {
	// ALLOW_ORIGINS="https://a.example.com, https://b.example.com" splits
	// with a leading space on the second entry
	origins := []string{"https://a.example.com", " https://b.example.com"}

	rec := corsRequest(t, origins, "https://b.example.com", http.MethodGet)
	assert.Equal(t, "https://b.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = corsRequest(t, origins, "https://evil.example.com", http.MethodGet)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	rec := corsRequest(t, []string{"*"}, "https://app.example.com", http.MethodOptions)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
