// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SlotType classifies a fillable text region by its semantic role and
// drives the character budget the generator must respect.
type SlotType string

const (
	SlotTitle    SlotType = "title"
	SlotSubtitle SlotType = "subtitle"
	SlotHeading  SlotType = "heading"
	SlotBody     SlotType = "body"
	SlotCaption  SlotType = "caption"
	SlotCTA      SlotType = "cta"
)

// Required reports whether a slot of this type must be filled for the
// carousel to be considered complete.
func (t SlotType) Required() bool {
	switch t {
	case SlotTitle, SlotCTA, SlotHeading:
		return true
	case SlotSubtitle, SlotBody, SlotCaption:
		return false
	}
	return false
}

// SlidePurpose is the narrative role a slide plays within a carousel.
type SlidePurpose string

const (
	PurposeHook       SlidePurpose = "hook"
	PurposeIntro      SlidePurpose = "intro"
	PurposeContent    SlidePurpose = "content"
	PurposeData       SlidePurpose = "data"
	PurposeQuote      SlidePurpose = "quote"
	PurposeCTA        SlidePurpose = "cta"
	PurposeConclusion SlidePurpose = "conclusion"
)

// Position is the placement of a slot's source element on its slide.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Slot is a fillable text region extracted from a template. Its ID is
// deterministic for an unchanged template: slot-{slideIndex}-{elementId}.
type Slot struct {
	ID               string   `json:"id"`
	SlideIndex       int      `json:"slideIndex"`
	ElementID        string   `json:"elementId"`
	Type             SlotType `json:"type"`
	MaxLength        int      `json:"maxLength"`
	Placeholder      string   `json:"placeholder"`
	Purpose          string   `json:"purpose"`
	Required         bool     `json:"required"`
	OriginalFontSize int      `json:"originalFontSize"`
	Position         Position `json:"position"`
}

// SlideBreakdown summarizes one slide of the analyzed template.
type SlideBreakdown struct {
	Index            int          `json:"index"`
	Purpose          SlidePurpose `json:"purpose"`
	TextElementCount int          `json:"textElementCount"`
	HasImage         bool         `json:"hasImage"`
	BackgroundColor  string       `json:"backgroundColor"`
	Slots            []Slot       `json:"slots"`
}

// TemplateAnalysis is the full decomposition of a template into slide
// purposes and content slots. It is recomputed fresh for every request and
// never cached or mutated after construction.
type TemplateAnalysis struct {
	SlideBreakdown []SlideBreakdown `json:"slideBreakdown"`
	Slots          []Slot           `json:"slots"`
	TotalSlides    int              `json:"totalSlides"`
	TotalSlots     int              `json:"totalSlots"`
}
