package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitHeaders(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/medications", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "1000" {
		t.Errorf("Expected limit header 1000, got %s", rr.Header().Get("X-RateLimit-Limit"))
	}
	if rr.Header().Get("X-RateLimit-Rate") != "3" {
		t.Errorf("Expected rate header 3, got %s", rr.Header().Get("X-RateLimit-Rate"))
	}
	if rr.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("Expected remaining header to be set")
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	// The calculation endpoint costs 25 tokens, so a 1000-token bucket
	// allows about 40 requests before the limiter kicks in.
	limited := false
	for i := 0; i < 45; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate-dosage", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code == http.StatusTooManyRequests {
			limited = true
			if rr.Header().Get("Retry-After") != "60" {
				t.Errorf("Expected Retry-After 60, got %s", rr.Header().Get("Retry-After"))
			}
			if rr.Header().Get("X-RateLimit-Remaining") != "0" {
				t.Errorf("Expected remaining 0 when limited, got %s", rr.Header().Get("X-RateLimit-Remaining"))
			}
			break
		}
	}
	if !limited {
		t.Error("Expected the limiter to return 429 before 45 calculation requests")
	}
}

func TestRateLimitPerClientIsolation(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	// Drain one client's bucket completely.
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate-dosage", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different client must be unaffected.
	req := httptest.NewRequest(http.MethodPost, "/api/calculate-dosage", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected fresh client to pass, got %d", rr.Code)
	}
}

func TestTokenCost(t *testing.T) {
	tests := []struct {
		path string
		cost int64
	}{
		{"/", 0},
		{"/favicon.ico", 0},
		{"/health", 5},
		{"/metrics", 5},
		{"/api/calculate-dosage", 25},
		{"/api/medications", 10},
		{"/api/convert-weight", 10},
		{"/unknown", 20},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := tokenCost(req); got != tt.cost {
			t.Errorf("tokenCost(%s) = %d, want %d", tt.path, got, tt.cost)
		}
	}
}

func TestDocumentationIsFree(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()
	handler := rl.Handler(okHandler())

	for i := 0; i < 200; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.5:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected free endpoint to never be limited, got %d on request %d", rr.Code, i)
		}
	}
}
