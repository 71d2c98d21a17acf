// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostSource distinguishes an account's own published posts from posts
// they saved as inspiration.
type PostSource string

const (
	PostOwn   PostSource = "own"
	PostSaved PostSource = "saved"
)

// Post is a LinkedIn post kept for style analysis. Own posts drive the
// writing-style profile; saved posts feed idea personalization.
type Post struct {
	ID        uuid.UUID  `json:"id"`
	AccountID uuid.UUID  `json:"account_id"`
	Content   string     `json:"content"`
	Source    PostSource `json:"source"`
	PostedAt  *time.Time `json:"posted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
