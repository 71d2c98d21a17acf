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

// PostStore handles the LinkedIn posts kept per account for style
// analysis and personalization.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// ListBySource returns an account's posts of the given source, newest
// first by posting date.
func (s *PostStore) ListBySource(ctx context.Context, accountID uuid.UUID, source models.PostSource) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, content, source, posted_at, created_at
		FROM posts
		WHERE account_id = $1 AND source = $2
		ORDER BY posted_at DESC NULLS LAST, created_at DESC
	`, accountID, source)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID, &p.AccountID, &p.Content, &p.Source, &p.PostedAt, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Contents returns just the post text of the given source, newest first.
// This is the shape the style analyzer and prompt builder consume.
func (s *PostStore) Contents(ctx context.Context, accountID uuid.UUID, source models.PostSource) ([]string, error) {
	posts, err := s.ListBySource(ctx, accountID, source)
	if err != nil {
		return nil, err
	}
	contents := make([]string, 0, len(posts))
	for _, p := range posts {
		contents = append(contents, p.Content)
	}
	return contents, nil
}

// Create inserts a new post and returns it with the generated ID.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (account_id, content, source, posted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, account_id, content, source, posted_at, created_at
	`, p.AccountID, p.Content, p.Source, p.PostedAt).Scan(
		&result.ID, &result.AccountID, &result.Content, &result.Source,
		&result.PostedAt, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// CountBySource returns how many posts of the given source an account has.
func (s *PostStore) CountBySource(ctx context.Context, accountID uuid.UUID, source models.PostSource) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM posts WHERE account_id = $1 AND source = $2
	`, accountID, source).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Delete removes a post by ID, scoped to the owning account.
func (s *PostStore) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM posts WHERE id = $1 AND account_id = $2
	`, id, accountID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
