// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"slidepress/internal/ai"
	"slidepress/internal/database"
	"slidepress/internal/middleware"
	"slidepress/internal/models"
	"slidepress/internal/store"
)

// mockProvider implements ai.Provider for handler tests.
type mockProvider struct {
	response string
	err      error
	calls    atomic.Int32
}

func (m *mockProvider) Name() string { return "mock" }
func (m *mockProvider) Generate(_ context.Context, _, _ string) (string, error) {
	m.calls.Add(1)
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
// Skips the test when the database is unavailable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "slidepress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "slidepress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv bundles the API under test with its stores and mock provider.
type testEnv struct {
	api      *API
	db       *sql.DB
	provider *mockProvider
	router   chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)

	provider := &mockProvider{}
	registry := ai.NewRegistry("", nil)
	registry.Register("mock", provider)
	if err := registry.SetActive("mock"); err != nil {
		t.Fatalf("set active provider: %v", err)
	}

	api := NewAPI(
		store.NewAccountStore(db),
		store.NewTemplateStore(db),
		store.NewPostStore(db),
		store.NewStyleMetaStore(db),
		store.NewCarouselStore(db),
		registry,
		nil, // previews computed per request in tests
	)

	r := chi.NewRouter()
	r.Get("/api/templates", api.ListTemplates)
	r.Post("/api/templates/{id}/analyze", api.AnalyzeTemplate)
	r.Post("/api/carousels", api.CreateCarousel)
	r.Get("/api/carousels", api.ListCarousels)
	r.Get("/api/carousels/{id}", api.GetCarousel)
	r.Get("/api/carousels/{id}/preview", api.PreviewCarousel)
	r.Post("/api/carousels/{id}/regenerate", api.RegenerateSlots)
	r.Delete("/api/carousels/{id}", api.DeleteCarousel)
	r.Get("/api/style/profile", api.StyleProfile)

	return &testEnv{api: api, db: db, provider: provider, router: r}
}

// newAccount creates a throwaway account and registers cleanup.
func (e *testEnv) newAccount(t *testing.T, email, apiKey string) *models.Account {
	t.Helper()
	e.db.Exec("DELETE FROM accounts WHERE email = $1", email)
	account, err := store.NewAccountStore(e.db).Create(context.Background(), email, "Handler Test", apiKey, models.PlanPro)
	if err != nil {
		t.Fatalf("create test account: %v", err)
	}
	t.Cleanup(func() { e.db.Exec("DELETE FROM accounts WHERE email = $1", email) })
	return account
}

// newTemplate inserts a two-text-slot fixture template and registers cleanup.
// Analysis yields slots slot-0-e1 (title, required) and slot-1-e2 (body).
func (e *testEnv) newTemplate(t *testing.T, name string) *models.Template {
	t.Helper()
	e.db.Exec("DELETE FROM templates WHERE name = $1", name)
	tpl, err := store.NewTemplateStore(e.db).Create(context.Background(), &models.Template{
		Name:     name,
		Category: "testing",
		Slides: []models.Slide{
			{ID: "s1", BackgroundColor: "#0A66C2", Elements: []models.Element{
				{ID: "e1", Type: models.ElementText, Text: "Your hook here", FontSize: 72, X: 50, Y: 200, Width: 980, Height: 300},
			}},
			{ID: "s2", BackgroundColor: "#FFFFFF", Elements: []models.Element{
				{ID: "e2", Type: models.ElementText, Text: "Body copy placeholder", FontSize: 36, X: 50, Y: 100, Width: 980, Height: 800},
			}},
		},
		BrandColors: []string{"#0A66C2"},
		Fonts:       []string{"Inter"},
	})
	if err != nil {
		t.Fatalf("create test template: %v", err)
	}
	t.Cleanup(func() { e.db.Exec("DELETE FROM templates WHERE name = $1", name) })
	return tpl
}

// do executes a request through the router with the account in context, the
// way APIKeyAuth would leave it.
func (e *testEnv) do(t *testing.T, account *models.Account, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req = req.WithContext(context.WithValue(req.Context(), middleware.AccountKey, account))
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}
