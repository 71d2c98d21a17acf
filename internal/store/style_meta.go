// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// StyleMetaStore persists the style-analysis refresh bookkeeping, one row
// per account. The computed profile itself is never stored; it is always
// recomputed from the account's posts.
type StyleMetaStore struct {
	db *sql.DB
}

// NewStyleMetaStore creates a new StyleMetaStore with the given database connection.
func NewStyleMetaStore(db *sql.DB) *StyleMetaStore {
	return &StyleMetaStore{db: db}
}

// Find returns the refresh metadata for an account. Returns ErrNotFound
// when no analysis has ever run for the account.
func (s *StyleMetaStore) Find(ctx context.Context, accountID uuid.UUID) (*models.StyleMeta, error) {
	var count int
	var refreshed sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT posts_analyzed_count, last_refreshed_at
		FROM style_meta WHERE account_id = $1
	`, accountID).Scan(&count, &refreshed)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find style meta: %w", err)
	}

	meta := &models.StyleMeta{PostsAnalyzedCount: count}
	if refreshed.Valid {
		meta.LastRefreshedAt = refreshed.Time
	}
	return meta, nil
}

// Save upserts the refresh bookkeeping for an account.
func (s *StyleMetaStore) Save(ctx context.Context, accountID uuid.UUID, meta models.StyleMeta) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO style_meta (account_id, posts_analyzed_count, last_refreshed_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (account_id) DO UPDATE SET
			posts_analyzed_count = EXCLUDED.posts_analyzed_count,
			last_refreshed_at = EXCLUDED.last_refreshed_at,
			updated_at = NOW()
	`, accountID, meta.PostsAnalyzedCount, meta.LastRefreshedAt)
	if err != nil {
		return fmt.Errorf("save style meta: %w", err)
	}
	return nil
}

// Delete removes an account's refresh bookkeeping, forcing a fresh
// analysis on the next request.
func (s *StyleMetaStore) Delete(ctx context.Context, accountID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM style_meta WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("delete style meta: %w", err)
	}
	return nil
}
