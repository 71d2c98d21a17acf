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

// CarouselStore persists generated carousel drafts. Slides, content, and
// warnings are stored as JSONB.
type CarouselStore struct {
	db *sql.DB
}

// NewCarouselStore creates a new CarouselStore with the given database connection.
func NewCarouselStore(db *sql.DB) *CarouselStore {
	return &CarouselStore{db: db}
}

// FindByID retrieves a carousel by ID, scoped to the owning account.
func (s *CarouselStore) FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.Carousel, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, template_id, topic, tone, status,
		       slides, content, quality_score, warnings, created_at, updated_at
		FROM carousels WHERE id = $1 AND account_id = $2
	`, id, accountID)
	c, err := scanCarousel(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find carousel by id: %w", err)
	}
	return c, nil
}

// ListByAccount returns an account's carousels, newest first.
func (s *CarouselStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Carousel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, template_id, topic, tone, status,
		       slides, content, quality_score, warnings, created_at, updated_at
		FROM carousels WHERE account_id = $1 ORDER BY created_at DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list carousels: %w", err)
	}
	defer rows.Close()

	var carousels []models.Carousel
	for rows.Next() {
		c, err := scanCarousel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan carousel: %w", err)
		}
		carousels = append(carousels, *c)
	}
	return carousels, rows.Err()
}

// Create inserts a new carousel draft and returns it with the generated ID.
func (s *CarouselStore) Create(ctx context.Context, c *models.Carousel) (*models.Carousel, error) {
	slides, content, warnings, err := marshalCarouselFields(c)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO carousels (account_id, template_id, topic, tone, status,
		                       slides, content, quality_score, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, account_id, template_id, topic, tone, status,
		          slides, content, quality_score, warnings, created_at, updated_at
	`, c.AccountID, c.TemplateID, c.Topic, c.Tone, c.Status,
		slides, content, c.Score, warnings)
	created, err := scanCarousel(row)
	if err != nil {
		return nil, fmt.Errorf("create carousel: %w", err)
	}
	return created, nil
}

// Update replaces a carousel's mutable fields (slides, content, score,
// warnings, status) after an edit or regeneration.
func (s *CarouselStore) Update(ctx context.Context, c *models.Carousel) error {
	slides, content, warnings, err := marshalCarouselFields(c)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE carousels SET
			slides = $1, content = $2, quality_score = $3, warnings = $4,
			status = $5, updated_at = NOW()
		WHERE id = $6 AND account_id = $7
	`, slides, content, c.Score, warnings, c.Status, c.ID, c.AccountID)
	if err != nil {
		return fmt.Errorf("update carousel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a carousel by ID, scoped to the owning account.
func (s *CarouselStore) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM carousels WHERE id = $1 AND account_id = $2
	`, id, accountID)
	if err != nil {
		return fmt.Errorf("delete carousel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalCarouselFields(c *models.Carousel) (slides, content, warnings []byte, err error) {
	if slides, err = json.Marshal(c.Slides); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal slides: %w", err)
	}
	if c.Content == nil {
		c.Content = map[string]string{}
	}
	if content, err = json.Marshal(c.Content); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal content: %w", err)
	}
	if c.Warnings == nil {
		c.Warnings = []string{}
	}
	if warnings, err = json.Marshal(c.Warnings); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal warnings: %w", err)
	}
	return slides, content, warnings, nil
}

func scanCarousel(row rowScanner) (*models.Carousel, error) {
	c := &models.Carousel{}
	var slides, content, warnings []byte
	if err := row.Scan(
		&c.ID, &c.AccountID, &c.TemplateID, &c.Topic, &c.Tone, &c.Status,
		&slides, &content, &c.Score, &warnings, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slides, &c.Slides); err != nil {
		return nil, fmt.Errorf("unmarshal slides: %w", err)
	}
	if err := json.Unmarshal(content, &c.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	if err := json.Unmarshal(warnings, &c.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshal warnings: %w", err)
	}
	return c, nil
}
