// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	m := New()

	m.GenerationsTotal.WithLabelValues("openai", "ok").Inc()
	m.ParseFailuresTotal.WithLabelValues("openai").Inc()
	m.QualityScore.Observe(85)
	m.RateLimitExceededTotal.WithLabelValues("free").Inc()

	if got := testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("openai", "ok")); got != 1 {
		t.Errorf("generations counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ParseFailuresTotal.WithLabelValues("openai")); got != 1 {
		t.Errorf("parse failures counter = %v, want 1", got)
	}

	// The registry must actually hold the registered collectors.
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"slidepress_generations_total",
		"slidepress_parse_failures_total",
		"slidepress_quality_score",
		"slidepress_ratelimit_exceeded_total",
	} {
		if !names[want] {
			t.Errorf("registry missing metric %s", want)
		}
	}
}

func TestGlobalHelpersNoopWithoutInstance(t *testing.T) {
	SetGlobal(nil)

	// None of these should panic when no global instance is set.
	ObserveGeneration("openai", "ok", 1.2)
	IncParseFailure("openai")
	ObserveQualityScore(90)
	IncRateLimitExceeded("free")
}

func TestObserveGeneration(t *testing.T) {
	m := New()
	SetGlobal(m)
	defer SetGlobal(nil)

	ObserveGeneration("claude", "parse_failed", 2.5)
	ObserveGeneration("claude", "parse_failed", 1.5)

	if got := testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("claude", "parse_failed")); got != 2 {
		t.Errorf("generations counter = %v, want 2", got)
	}
}

func TestResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	rw := wrapResponseWriter(w)

	if rw.status != http.StatusOK {
		t.Errorf("initial status = %d, want %d", rw.status, http.StatusOK)
	}

	rw.WriteHeader(http.StatusNotFound)
	if rw.status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rw.status, http.StatusNotFound)
	}

	// Second WriteHeader is ignored.
	rw.WriteHeader(http.StatusInternalServerError)
	if rw.status != http.StatusNotFound {
		t.Errorf("status after double WriteHeader = %d, want %d", rw.status, http.StatusNotFound)
	}
}

func TestHTTPMiddleware(t *testing.T) {
	m := New()
	SetGlobal(m)
	defer SetGlobal(nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	wrapped := HTTPMiddleware(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/carousels", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if got := testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("POST", "/api/carousels", "429")); got != 1 {
		t.Errorf("api requests counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.APIErrorsTotal.WithLabelValues("rate_limited")); got != 1 {
		t.Errorf("api errors counter = %v, want 1", got)
	}
}

func TestNormalizePathReplacesUUIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/carousels/6ba7b810-9dad-11d1-80b4-00c04fd430c8/preview", nil)

	got := normalizePath(req)
	want := "/api/carousels/{id}/preview"
	if got != want {
		t.Errorf("normalizePath = %q, want %q", got, want)
	}
}

func TestCategorizeStatus(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{500, "server_error"},
		{503, "server_error"},
		{429, "rate_limited"},
		{401, "auth_error"},
		{403, "auth_error"},
		{404, "not_found"},
		{400, "bad_request"},
		{422, "client_error"},
		{200, "unknown"},
	}
	for _, c := range cases {
		if got := categorizeStatus(c.status); got != c.want {
			t.Errorf("categorizeStatus(%d) = %q, want %q", c.status, got, c.want)
		}
	}
}
