package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Minute), 2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := l.Middleware(ok)

	do := func(addr string) int {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := do("10.0.0.1:1111"); got != http.StatusOK {
		t.Fatalf("first request: got %d", got)
	}
	if got := do("10.0.0.1:2222"); got != http.StatusOK {
		t.Fatalf("second request: got %d", got)
	}
	if got := do("10.0.0.1:3333"); got != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want 429", got)
	}
	if got := do("10.0.0.2:1111"); got != http.StatusOK {
		t.Fatalf("other ip: got %d", got)
	}

	now = now.Add(time.Minute)
	if got := do("10.0.0.1:4444"); got != http.StatusOK {
		t.Fatalf("after refill: got %d", got)
	}
}

func TestIPRateLimiter_EvictsIdle(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Minute), 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.allow("10.0.0.1")
	now = now.Add(2 * idleLimiterTTL)
	l.allow("10.0.0.2")

	if _, ok := l.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor not evicted")
	}
	if len(l.visitors) != 1 {
		t.Errorf("visitors: got %d", len(l.visitors))
	}
}
