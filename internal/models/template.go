// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ElementType identifies the kind of element placed on a slide.
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
	ElementShape ElementType = "shape"
)

// Element is a single positioned item on a slide. The field set matches
// the canvas editor's element schema exactly — the editor consumes slides
// produced by the carousel builder, so no extra fields may be added here.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Text     string      `json:"text,omitempty"`
	FontSize int         `json:"fontSize,omitempty"`
	Color    string      `json:"color,omitempty"`
	ImageURL string      `json:"imageUrl,omitempty"`
}

// IsText reports whether the element carries fillable text.
func (e *Element) IsText() bool {
	return e.Type == ElementText
}

// Slide is one page of a carousel template.
type Slide struct {
	ID              string    `json:"id"`
	BackgroundColor string    `json:"backgroundColor"`
	Elements        []Element `json:"elements"`
}

// Template is a shared, read-only carousel design from the template catalog.
// The same catalog entry may back many simultaneous generation requests, so
// nothing in this package or its consumers ever mutates a Template in place.
type Template struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Slides      []Slide   `json:"slides"`
	BrandColors []string  `json:"brandColors"`
	Fonts       []string  `json:"fonts"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
