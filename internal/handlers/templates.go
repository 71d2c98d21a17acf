// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidepress/internal/analyzer"
	"slidepress/internal/store"
)

// ListTemplates returns the template catalog, optionally filtered by the
// "category" query parameter.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	var err error
	var templates any
	if category := r.URL.Query().Get("category"); category != "" {
		templates, err = a.templates.ListByCategory(r.Context(), category)
	} else {
		templates, err = a.templates.List(r.Context())
	}
	if err != nil {
		slog.Error("list templates", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load templates")
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// AnalyzeTemplate runs slot extraction over a catalog template and returns
// the analysis. Analysis is deterministic and cheap, so nothing is cached.
func (a *API) AnalyzeTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tpl, err := a.templates.FindByID(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		slog.Error("load template", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load template")
		return
	}

	writeJSON(w, http.StatusOK, analyzer.Analyze(tpl))
}
