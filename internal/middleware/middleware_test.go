package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"vikare/airports/internal/common"
	"vikare/airports/internal/metrics"
	"vikare/airports/internal/models/dtos"
)

func newTestMetrics() *metrics.MetricsRegistry {
	return metrics.NewMetricsRegistry(prometheus.NewRegistry())
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("Expected request id in context")
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Errorf("Expected response header %s, got %s", seen, rr.Header().Get(RequestIDHeader))
	}
	if len(seen) != 36 {
		t.Errorf("Expected a UUID, got %s", seen)
	}
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "abc-123" {
		t.Errorf("Expected abc-123, got %s", seen)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	reg := newTestMetrics()
	rl := NewRateLimiter(common.NewCacheService(time.Minute, time.Minute), 0.001, 2, time.Minute, []string{"127.0.0.1"}, reg)
	handler := rl.Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes[i] = rr.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst, got %d", codes[2])
	}
	if got := testutil.ToFloat64(reg.RateLimitedTotal); got != 1 {
		t.Errorf("Expected 1 rate limited request, got %f", got)
	}

	// another client has its own bucket
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected separate bucket per IP, got %d", rr.Code)
	}
	if got := testutil.ToFloat64(reg.RateLimitClients); got != 2 {
		t.Errorf("Expected 2 tracked clients, got %f", got)
	}
}

func TestRateLimiter_WhitelistBypasses(t *testing.T) {
	rl := NewRateLimiter(common.NewCacheService(time.Minute, time.Minute), 0.001, 1, time.Minute, []string{"127.0.0.1"}, nil)
	handler := rl.Middleware(http.HandlerFunc(okHandler))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "127.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected whitelisted IP to pass, got %d on request %d", rr.Code, i)
		}
	}
}

func TestRecoverMiddleware_ReturnsOpaque500(t *testing.T) {
	reg := newTestMetrics()
	handler := RecoverMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("secret internal detail")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/airports", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Errorf("Expected panic detail to stay out of the body, got %s", rr.Body.String())
	}

	var resp dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("Expected status error, got %s", resp.Status)
	}
	if got := testutil.ToFloat64(reg.PanicsRecoveredTotal); got != 1 {
		t.Errorf("Expected 1 recovered panic, got %f", got)
	}
}

func TestMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	reg := newTestMetrics()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(reg))
	r.Get("/api/airports/{id}", okHandler)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/airports/42", nil))

	got := testutil.ToFloat64(reg.HTTPRequestsTotal.WithLabelValues("/api/airports/{id}", "GET", "200"))
	if got != 1 {
		t.Errorf("Expected 1 request recorded under the route pattern, got %f", got)
	}
}
