package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(2, time.Minute)
	if !rl.Allow("1.1.1.1") {
		t.Fatal("expected allow")
	}
	if !rl.Allow("1.1.1.1") {
		t.Fatal("expected allow")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatal("expected deny")
	}
	// Different IPs get their own bucket.
	if !rl.Allow("2.2.2.2") {
		t.Fatal("expected allow for fresh ip")
	}
}

func TestIPRateLimiterRefill(t *testing.T) {
	rl := NewIPRateLimiter(1, 10*time.Millisecond)
	if !rl.Allow("1.1.1.1") {
		t.Fatal("expected allow")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatal("expected deny")
	}
	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("1.1.1.1") {
		t.Fatal("expected allow after refill")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewIPRateLimiter(1, time.Minute)
	handler := RateLimitMiddleware(rl, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/search", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Fatalf("expected forwarded ip, got %q", ip)
	}

	req.Header.Del("X-Forwarded-For")
	if ip := clientIP(req); ip != "10.0.0.1" {
		t.Fatalf("expected remote addr host, got %q", ip)
	}
}
