package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddlewareAllowsRequestsWithinLimit(t *testing.T) {
	middleware := NewRateLimitMiddleware(5, time.Second)
	limited := middleware(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/status?key=test-api-key", nil)
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
	}
}

func TestRateLimitMiddlewareBlocksRequestsOverLimit(t *testing.T) {
	middleware := NewRateLimitMiddleware(3, time.Second)
	limited := middleware(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/status?key=test-api-key", nil)
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
	}

	req := httptest.NewRequest("GET", "/status?key=test-api-key", nil)
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Rate limit exceeded. Please try again later.", payload["detail"])
}

func TestRateLimitMiddlewareIsolatesClients(t *testing.T) {
	middleware := NewRateLimitMiddleware(2, time.Second)
	limited := middleware(okHandler())

	// Exhaust the first key
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/status?key=first", nil)
		limited.ServeHTTP(httptest.NewRecorder(), req)
	}
	req := httptest.NewRequest("GET", "/status?key=first", nil)
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different key still has its full budget
	req = httptest.NewRequest("GET", "/status?key=second", nil)
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddlewareFallsBackToRemoteIP(t *testing.T) {
	middleware := NewRateLimitMiddleware(1, time.Second)
	limited := middleware(okHandler())

	// Keyless requests from one address share a bucket
	first := httptest.NewRequest("GET", "/status", nil)
	first.RemoteAddr = "203.0.113.7:1111"
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	second := httptest.NewRequest("GET", "/status", nil)
	second.RemoteAddr = "203.0.113.7:2222"
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, second)
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "same address, different port, same bucket")

	other := httptest.NewRequest("GET", "/status", nil)
	other.RemoteAddr = "198.51.100.9:3333"
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddlewareDisabledByZeroRate(t *testing.T) {
	middleware := NewRateLimitMiddleware(0, time.Second)
	limited := middleware(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/status", nil)
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
