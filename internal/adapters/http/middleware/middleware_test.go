package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestSecurityHeaders verifies the response carries the hardening headers
// and a policy with no script or framing allowance.
func TestSecurityHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	SecurityHeaders(okHandler()).ServeHTTP(rec, req)

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "script-src 'none'") {
		t.Errorf("CSP allows scripts: %q", csp)
	}
	if !strings.Contains(csp, "frame-ancestors 'none'") {
		t.Errorf("CSP allows framing: %q", csp)
	}
	for header, want := range map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

// TestRateLimiter_PerIP verifies exhaustion applies per address.
func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d from first address denied", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request past the limit was allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second address throttled by the first one's traffic")
	}
}

// TestRateLimit_RejectsWithTooManyRequests verifies the middleware response
// once the bucket is empty.
func TestRateLimit_RejectsWithTooManyRequests(t *testing.T) {
	handler := RateLimit(NewRateLimiter(1, time.Hour))(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request got %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

// TestCSRF_JSONExemptFormProtected verifies JSON bodies pass straight
// through while a form POST without the token is rejected.
func TestCSRF_JSONExemptFormProtected(t *testing.T) {
	key := make([]byte, 32)
	handler := CSRF(key)(okHandler())

	req := httptest.NewRequest("POST", "/game/answer", strings.NewReader(`{"game_id":"g1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("JSON request got %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest("POST", "/game/answer", strings.NewReader("selected=Cash"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("tokenless form POST got %d, want %d", rec.Code, http.StatusForbidden)
	}
}
