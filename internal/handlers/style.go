// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"slidepress/internal/middleware"
	"slidepress/internal/models"
	"slidepress/internal/store"
	"slidepress/internal/style"
)

// styleProfileResponse pairs the computed profile with its refresh
// bookkeeping. The profile is always recomputed from posts; only the
// bookkeeping is persisted.
type styleProfileResponse struct {
	Profile   models.StyleProfile `json:"profile"`
	Meta      models.StyleMeta    `json:"meta"`
	Refreshed bool                `json:"refreshed"`
}

// StyleProfile computes the account's writing-style fingerprint from
// their post history. When enough new posts have accumulated (or enough
// time has passed) the refresh bookkeeping is updated.
func (a *API) StyleProfile(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())
	ctx := r.Context()

	own, err := a.posts.Contents(ctx, account.ID, models.PostOwn)
	if err != nil {
		slog.Error("load own posts", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load posts")
		return
	}
	saved, err := a.posts.Contents(ctx, account.ID, models.PostSaved)
	if err != nil {
		slog.Error("load saved posts", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load posts")
		return
	}

	meta := models.StyleMeta{}
	if stored, err := a.styleMeta.Find(ctx, account.ID); err == nil {
		meta = *stored
	} else if err != store.ErrNotFound {
		slog.Error("load style meta", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load style metadata")
		return
	}

	profile := style.Analyze(own, saved)

	refreshed := false
	if style.ShouldRefresh(meta, len(own), time.Now()) {
		meta = models.StyleMeta{PostsAnalyzedCount: len(own), LastRefreshedAt: time.Now()}
		if err := a.styleMeta.Save(ctx, account.ID, meta); err != nil {
			slog.Error("save style meta", "error", err)
		} else {
			refreshed = true
		}
	}

	writeJSON(w, http.StatusOK, styleProfileResponse{
		Profile:   profile,
		Meta:      meta,
		Refreshed: refreshed,
	})
}
