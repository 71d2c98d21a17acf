// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// SlidePress API. Health and metrics are public; everything under /api
// requires an API key, and generation endpoints are rate limited.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slidepress/internal/handlers"
	"slidepress/internal/metrics"
	"slidepress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. promRegistry may be nil to disable /metrics.
func New(api *handlers.API, accounts middleware.AccountSource, limiter *middleware.RateLimiter, promRegistry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.HTTPMiddleware)

	// Public endpoints — no auth.
	r.Get("/health", handlers.Health)
	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	// Authenticated JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(accounts))

		r.Get("/templates", api.ListTemplates)
		r.Post("/templates/{id}/analyze", api.AnalyzeTemplate)

		r.Get("/style/profile", api.StyleProfile)

		r.Route("/carousels", func(r chi.Router) {
			r.Get("/", api.ListCarousels)
			r.Get("/{id}", api.GetCarousel)
			r.Get("/{id}/preview", api.PreviewCarousel)
			r.Delete("/{id}", api.DeleteCarousel)

			// Generation endpoints burn model tokens; budget per plan.
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)
				r.Post("/", api.CreateCarousel)
				r.Post("/{id}/regenerate", api.RegenerateSlots)
			})
		})
	})

	return r
}
