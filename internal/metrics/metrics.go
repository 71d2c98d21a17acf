// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus instrumentation for the generation
// pipeline and the HTTP API. A package-level instance keeps call sites
// simple; everything degrades to a no-op when no instance is set, so unit
// tests of other packages never need to care.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalMetrics *Metrics
	globalMu      sync.RWMutex
)

// Metrics holds all Prometheus metrics for SlidePress.
type Metrics struct {
	// Generation pipeline
	GenerationsTotal          *prometheus.CounterVec
	ParseFailuresTotal        *prometheus.CounterVec
	QualityScore              prometheus.Histogram
	GenerationDurationSeconds *prometheus.HistogramVec

	// API metrics
	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec
	APIErrorsTotal            *prometheus.CounterVec

	// Rate limiting
	RateLimitExceededTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidepress_generations_total",
				Help: "Total number of carousel generation attempts",
			},
			[]string{"provider", "status"},
		),
		ParseFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidepress_parse_failures_total",
				Help: "Total number of unparseable LLM responses",
			},
			[]string{"provider"},
		),
		QualityScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "slidepress_quality_score",
				Help:    "Quality score of generated carousels (0-100)",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
		),
		GenerationDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slidepress_generation_duration_seconds",
				Help:    "End-to-end carousel generation duration in seconds",
				Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"provider"},
		),

		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidepress_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slidepress_api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		APIErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidepress_api_errors_total",
				Help: "Total number of API errors",
			},
			[]string{"error_type"},
		),

		RateLimitExceededTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidepress_ratelimit_exceeded_total",
				Help: "Total number of rate limit exceeded events",
			},
			[]string{"plan"},
		),

		registry: reg,
	}

	reg.MustRegister(
		m.GenerationsTotal,
		m.ParseFailuresTotal,
		m.QualityScore,
		m.GenerationDurationSeconds,
		m.APIRequestsTotal,
		m.APIRequestDurationSeconds,
		m.APIErrorsTotal,
		m.RateLimitExceededTotal,
	)

	return m
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetGlobal sets the global metrics instance.
func SetGlobal(m *Metrics) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMetrics = m
}

// Global returns the global metrics instance, or nil if none is set.
func Global() *Metrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}

// ObserveGeneration records one generation attempt.
func ObserveGeneration(provider, status string, durationSeconds float64) {
	m := Global()
	if m == nil {
		return
	}
	m.GenerationsTotal.WithLabelValues(provider, status).Inc()
	m.GenerationDurationSeconds.WithLabelValues(provider).Observe(durationSeconds)
}

// IncParseFailure increments the parse failure counter.
func IncParseFailure(provider string) {
	m := Global()
	if m != nil {
		m.ParseFailuresTotal.WithLabelValues(provider).Inc()
	}
}

// ObserveQualityScore records the quality score of a finished carousel.
func ObserveQualityScore(score int) {
	m := Global()
	if m != nil {
		m.QualityScore.Observe(float64(score))
	}
}

// IncRateLimitExceeded increments the rate limit counter for a plan.
func IncRateLimitExceeded(plan string) {
	m := Global()
	if m != nil {
		m.RateLimitExceededTotal.WithLabelValues(plan).Inc()
	}
}
