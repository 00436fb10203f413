package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS_AllowedOriginPreflight(t *testing.T) {
	h := CORS([]string{"https://app.example.com"})(ok)
	req := httptest.NewRequest("OPTIONS", "/recipes", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code < 200 || rr.Code >= 300 {
		t.Errorf("status: got %d, want 2xx", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Errorf("allow-origin: %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Errorf("allow-methods: %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestCORS_UnknownOrigin(t *testing.T) {
	h := CORS([]string{"https://app.example.com"})(ok)
	req := httptest.NewRequest("GET", "/recipes", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("unexpected CORS response: %d %v", rr.Code, rr.Header())
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 2)
	h := l.Middleware(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes: %v", codes)
	}

	other := httptest.NewRequest("POST", "/auth/login", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	if rr.Code != http.StatusOK {
		t.Errorf("other client limited: %d", rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := clientIP(req); got != "192.0.2.1" {
		t.Errorf("RemoteAddr: got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("X-Real-IP", "203.0.113.10")
	if got := clientIP(req); got != "192.0.2.1" {
		t.Errorf("forwarding headers must not change the client: got %q", got)
	}
}

func TestIPRateLimiter_SpoofedForwardedFor(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 1)
	h := l.Middleware(ok)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("rotating X-Forwarded-For escaped the limit: %d", last)
	}
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(rate.Every(time.Hour), 1)
	l.now = func() time.Time { return now }

	l.getLimiter("10.0.0.1")
	l.getLimiter("10.0.0.2")
	if l.size() != 2 {
		t.Fatalf("size: got %d, want 2", l.size())
	}

	now = now.Add(DefaultLimiterIdleTTL + time.Second)
	l.getLimiter("10.0.0.3")
	if l.size() != 1 {
		t.Errorf("idle buckets kept: size %d, want 1", l.size())
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "boom") {
		t.Errorf("panic value leaked: %s", rr.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(true)(ok).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Strict-Transport-Security", "Cache-Control"} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing %s", h)
		}
	}
}
