// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"slidepress/internal/models"
)

func seedPosts(t *testing.T, env *testEnv, account *models.Account, contents []string) {
	t.Helper()
	for _, c := range contents {
		if _, err := env.api.posts.Create(context.Background(), &models.Post{
			AccountID: account.ID,
			Content:   c,
			Source:    models.PostOwn,
		}); err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}
}

func TestStyleProfileHandler(t *testing.T) {
	env := newTestEnv(t)
	account := env.newAccount(t, "style-h@slidepress.local", "sp_test_handlers00010")
	seedPosts(t, env, account, []string{
		"I spent 5 years hiring engineers. Here is what nobody tells you about interviews.\n\nMost candidates fail for one reason.",
		"Stop optimizing your resume. Start optimizing your portfolio. The difference got me three offers.",
		"What would you do with an extra 10 hours a week? Automation gave me exactly that.",
	})

	rr := env.do(t, account, http.MethodGet, "/api/style/profile", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rr.Code, rr.Body.String())
	}

	var resp styleProfileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profile.AvgSentenceLength <= 0 {
		t.Errorf("avg sentence length: %d", resp.Profile.AvgSentenceLength)
	}
	if !resp.Refreshed {
		t.Error("first call should refresh the bookkeeping")
	}
	if resp.Meta.PostsAnalyzedCount != 3 {
		t.Errorf("posts analyzed: got %d, want 3", resp.Meta.PostsAnalyzedCount)
	}

	// An immediate second call reuses the bookkeeping.
	rr = env.do(t, account, http.MethodGet, "/api/style/profile", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("second call: got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Refreshed {
		t.Error("second call should not refresh again")
	}
}

func TestStyleProfileHandlerNoPosts(t *testing.T) {
	env := newTestEnv(t)
	account := env.newAccount(t, "style-empty@slidepress.local", "sp_test_handlers00011")

	rr := env.do(t, account, http.MethodGet, "/api/style/profile", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rr.Code, rr.Body.String())
	}

	var resp styleProfileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// No posts yields the default profile, never an error.
	if resp.Profile.Tone == "" {
		t.Error("expected a default profile for an account without posts")
	}
}
