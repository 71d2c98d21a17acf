// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// TemplateStore handles the carousel template catalog. Slides, brand
// colors, and fonts are stored as JSONB and unmarshaled on read.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// List returns all templates ordered by name.
func (s *TemplateStore) List(ctx context.Context) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, slides, brand_colors, fonts, created_at, updated_at
		FROM templates ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// ListByCategory returns templates in the given category, ordered by name.
func (s *TemplateStore) ListByCategory(ctx context.Context, category string) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, slides, brand_colors, fonts, created_at, updated_at
		FROM templates WHERE category = $1 ORDER BY name ASC
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list templates by category: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by its UUID.
func (s *TemplateStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, slides, brand_colors, fonts, created_at, updated_at
		FROM templates WHERE id = $1
	`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Create inserts a new template and returns it with the generated ID.
func (s *TemplateStore) Create(ctx context.Context, t *models.Template) (*models.Template, error) {
	slides, err := json.Marshal(t.Slides)
	if err != nil {
		return nil, fmt.Errorf("marshal slides: %w", err)
	}
	colors, err := json.Marshal(t.BrandColors)
	if err != nil {
		return nil, fmt.Errorf("marshal brand colors: %w", err)
	}
	fonts, err := json.Marshal(t.Fonts)
	if err != nil {
		return nil, fmt.Errorf("marshal fonts: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO templates (name, category, slides, brand_colors, fonts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, category, slides, brand_colors, fonts, created_at, updated_at
	`, t.Name, t.Category, slides, colors, fonts)
	created, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// Delete removes a template by ID.
func (s *TemplateStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	t := &models.Template{}
	var slides, colors, fonts []byte
	if err := row.Scan(
		&t.ID, &t.Name, &t.Category, &slides, &colors, &fonts,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slides, &t.Slides); err != nil {
		return nil, fmt.Errorf("unmarshal slides: %w", err)
	}
	if err := json.Unmarshal(colors, &t.BrandColors); err != nil {
		return nil, fmt.Errorf("unmarshal brand colors: %w", err)
	}
	if err := json.Unmarshal(fonts, &t.Fonts); err != nil {
		return nil, fmt.Errorf("unmarshal fonts: %w", err)
	}
	return t, nil
}
