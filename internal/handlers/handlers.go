// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: template analysis, the carousel
// generation pipeline, partial regeneration, previews, and style profiles.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"slidepress/internal/ai"
	"slidepress/internal/cache"
	"slidepress/internal/store"
)

// API is the handler group for all authenticated JSON endpoints.
type API struct {
	accounts   *store.AccountStore
	templates  *store.TemplateStore
	posts      *store.PostStore
	styleMeta  *store.StyleMetaStore
	carousels  *store.CarouselStore
	aiRegistry *ai.Registry
	drafts     *cache.DraftCache
}

// NewAPI creates the API handler group with the given dependencies.
// drafts may be nil when Valkey is not configured; previews are then
// computed on every request.
func NewAPI(
	accounts *store.AccountStore,
	templates *store.TemplateStore,
	posts *store.PostStore,
	styleMeta *store.StyleMetaStore,
	carousels *store.CarouselStore,
	aiRegistry *ai.Registry,
	drafts *cache.DraftCache,
) *API {
	return &API{
		accounts:   accounts,
		templates:  templates,
		posts:      posts,
		styleMeta:  styleMeta,
		carousels:  carousels,
		aiRegistry: aiRegistry,
		drafts:     drafts,
	}
}

// Health responds to liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
