// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, 10, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("test-key", rl.limit) {
			t.Errorf("request %d should be allowed", i+1)
		}
	}

	if rl.allow("test-key", rl.limit) {
		t.Error("request over the limit should be denied")
	}

	// Different key has its own budget.
	if !rl.allow("other-key", rl.limit) {
		t.Error("different key should be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10, 50*time.Millisecond)
	defer rl.Stop()

	if !rl.allow("test-key", rl.limit) {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("test-key", rl.limit) {
		t.Fatal("second request inside the window should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.allow("test-key", rl.limit) {
		t.Error("request after window expiry should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(5, 10, 10*time.Millisecond)
	defer rl.Stop()

	rl.allow("stale-key", rl.limit)
	time.Sleep(20 * time.Millisecond)
	rl.cleanup()

	rl.mu.RLock()
	_, exists := rl.clients["stale-key"]
	rl.mu.RUnlock()
	if exists {
		t.Error("expired entry should be removed by cleanup")
	}
}

func rateLimitedRequest(rl *RateLimiter, account *models.Account) *httptest.ResponseRecorder {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Middleware(inner)

	req := httptest.NewRequest(http.MethodPost, "/api/carousels", nil)
	req.RemoteAddr = "10.1.2.3:50000"
	if account != nil {
		req = req.WithContext(context.WithValue(req.Context(), AccountKey, account))
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiterMiddlewareAnonymous(t *testing.T) {
	rl := NewRateLimiter(2, 10, time.Minute)
	defer rl.Stop()

	for i := 0; i < 2; i++ {
		if rr := rateLimitedRequest(rl, nil); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rr.Code)
		}
	}

	rr := rateLimitedRequest(rl, nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q, want application/json", ct)
	}
}

func TestRateLimiterMiddlewarePlanBudgets(t *testing.T) {
	rl := NewRateLimiter(1, 3, time.Minute)
	defer rl.Stop()

	free := &models.Account{ID: uuid.New(), Plan: models.PlanFree}
	pro := &models.Account{ID: uuid.New(), Plan: models.PlanPro}

	if rr := rateLimitedRequest(rl, free); rr.Code != http.StatusOK {
		t.Fatalf("free request 1: got %d, want 200", rr.Code)
	}
	if rr := rateLimitedRequest(rl, free); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("free request 2: got %d, want 429", rr.Code)
	}

	// A pro account has its own key and a larger budget.
	for i := 0; i < 3; i++ {
		if rr := rateLimitedRequest(rl, pro); rr.Code != http.StatusOK {
			t.Fatalf("pro request %d: got %d, want 200", i+1, rr.Code)
		}
	}
	if rr := rateLimitedRequest(rl, pro); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("pro request 4: got %d, want 429", rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr",
			remoteAddr: "192.168.1.1:12345",
			want:       "192.168.1.1",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for multiple",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
