// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slidepress/internal/handlers"
	"slidepress/internal/metrics"
	"slidepress/internal/middleware"
	"slidepress/internal/models"
)

// noAccounts is an AccountSource that never matches.
type noAccounts struct{}

func (noAccounts) ByAPIKeyPrefix(context.Context, string) (*models.Account, error) {
	return nil, fmt.Errorf("not found")
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	limiter := middleware.NewRateLimiter(10, 100, time.Minute)
	t.Cleanup(limiter.Stop)

	api := handlers.NewAPI(nil, nil, nil, nil, nil, nil, nil)
	return New(api, noAccounts{}, limiter, metrics.New().Registry())
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestMetricsEndpointPublic(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestAPIRequiresKey(t *testing.T) {
	r := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/templates"},
		{"POST", "/api/templates/11111111-1111-1111-1111-111111111111/analyze"},
		{"GET", "/api/carousels"},
		{"POST", "/api/carousels"},
		{"GET", "/api/style/profile"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", p.method, p.path, w.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options: got %q", got)
	}
}
