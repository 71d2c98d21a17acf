// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CarouselTone selects the voice the generator writes in.
type CarouselTone string

const (
	ToneProfessional  CarouselTone = "professional"
	ToneCasual        CarouselTone = "casual"
	ToneEducational   CarouselTone = "educational"
	ToneInspirational CarouselTone = "inspirational"
	ToneStorytelling  CarouselTone = "storytelling"
	ToneMatchMyStyle  CarouselTone = "match-my-style"
)

// CTAType selects the closing call-to-action the generator writes on the
// final slide. CTACustom uses the literal text supplied by the caller;
// CTANone suppresses the call to action entirely.
type CTAType string

const (
	CTANone    CTAType = "none"
	CTACustom  CTAType = "custom"
	CTAFollow  CTAType = "follow"
	CTAComment CTAType = "comment"
	CTAShare   CTAType = "share"
	CTASave    CTAType = "save"
	CTALink    CTAType = "link"
	CTADM      CTAType = "dm"
)

// PersonalizationContext carries author and company facts assembled from
// profile, company, and post-history data. Everything is optional; each
// field is rendered into the prompt only when present.
type PersonalizationContext struct {
	Name                string   `json:"name"`
	Headline            string   `json:"headline"`
	Industry            string   `json:"industry"`
	CompanyName         string   `json:"companyName"`
	ValueProposition    string   `json:"valueProposition"`
	ProductsAndServices string   `json:"productsAndServices"`
	TargetAudience      string   `json:"targetAudience"`
	ToneOfVoice         string   `json:"toneOfVoice"`
	RecentPosts         []string `json:"recentPosts"`
	SavedIdeas          []string `json:"savedIdeas"`
}

// BuildResult is the output of merging generated content into a template.
// Slides carry freshly generated ids so concurrent generations backed by
// the same catalog entry can never collide.
type BuildResult struct {
	Slides      []Slide  `json:"slides"`
	FilledSlots int      `json:"filledSlots"`
	TotalSlots  int      `json:"totalSlots"`
	Warnings    []string `json:"warnings"`
}

// PreviewBox is a simplified content box for the live preview, one per slot.
type PreviewBox struct {
	SlotID   string  `json:"slotId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize int     `json:"fontSize"`
	Content  string  `json:"content"`
}

// PreviewSlide is the per-slide preview payload shown before a generation
// is committed to a draft.
type PreviewSlide struct {
	Index           int          `json:"index"`
	Purpose         SlidePurpose `json:"purpose"`
	BackgroundColor string       `json:"backgroundColor"`
	Boxes           []PreviewBox `json:"boxes"`
}

// CarouselStatus tracks whether a carousel is still editable.
type CarouselStatus string

const (
	CarouselDraft CarouselStatus = "draft"
	CarouselFinal CarouselStatus = "final"
)

// Carousel is a generated draft persisted for later editing or posting.
// Content keeps the raw slot-id to text mapping so individual slots can
// be regenerated without re-running the whole pipeline.
type Carousel struct {
	ID         uuid.UUID         `json:"id"`
	AccountID  uuid.UUID         `json:"account_id"`
	TemplateID uuid.UUID         `json:"template_id"`
	Topic      string            `json:"topic"`
	Tone       CarouselTone      `json:"tone"`
	Status     CarouselStatus    `json:"status"`
	Slides     []Slide           `json:"slides"`
	Content    map[string]string `json:"content"`
	Score      int               `json:"score"`
	Warnings   []string          `json:"warnings"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
