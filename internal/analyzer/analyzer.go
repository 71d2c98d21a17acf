// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package analyzer decomposes a carousel template into slide purposes and
// typed, length-bounded content slots. Analyze is pure and deterministic:
// the same template always yields the same slots with the same ids, which
// is what keeps prompts, previews, and partial regeneration in agreement.
package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"slidepress/internal/models"
)

// bareNumber matches a 1-2 digit numeral, e.g. a slide-number badge ("03").
var bareNumber = regexp.MustCompile(`^\d{1,2}$`)

// Analyze inspects every slide of the template and extracts its fillable
// slots. An empty or slide-less template yields TotalSlots = 0, never an
// error — the caller short-circuits with "nothing to generate".
func Analyze(tpl *models.Template) models.TemplateAnalysis {
	analysis := models.TemplateAnalysis{
		SlideBreakdown: make([]models.SlideBreakdown, 0, len(tpl.Slides)),
		Slots:          []models.Slot{},
	}

	for i, slide := range tpl.Slides {
		purpose := slidePurpose(slide, i, len(tpl.Slides))
		slots := extractSlots(slide, i, purpose)

		breakdown := models.SlideBreakdown{
			Index:            i,
			Purpose:          purpose,
			TextElementCount: countElements(slide, models.ElementText),
			HasImage:         countElements(slide, models.ElementImage) > 0,
			BackgroundColor:  slide.BackgroundColor,
			Slots:            slots,
		}

		analysis.SlideBreakdown = append(analysis.SlideBreakdown, breakdown)
		analysis.Slots = append(analysis.Slots, slots...)
	}

	analysis.TotalSlides = len(tpl.Slides)
	analysis.TotalSlots = len(analysis.Slots)
	return analysis
}

// slidePurpose determines the narrative role of a slide. The first slide is
// always the hook and the last always the call to action; slides in between
// are classified by inspecting their text elements in order.
func slidePurpose(slide models.Slide, index, total int) models.SlidePurpose {
	if index == 0 {
		return models.PurposeHook
	}
	if index == total-1 {
		return models.PurposeCTA
	}

	for _, el := range slide.Elements {
		if !el.IsText() {
			continue
		}
		text := strings.TrimSpace(el.Text)

		// A large bare number is a "big stat" layout, treated as content.
		if el.FontSize >= 72 && bareNumber.MatchString(text) {
			return models.PurposeContent
		}
		if strings.ContainsAny(text, "\"“”") {
			return models.PurposeQuote
		}
		lower := strings.ToLower(text)
		if strings.Contains(lower, "%") || strings.Contains(lower, "stats") || strings.Contains(lower, "data") {
			return models.PurposeData
		}
	}

	return models.PurposeContent
}

// extractSlots converts the slide's non-decorative text elements into slots,
// ordered by vertical position. The y-ascending ordering is load-bearing:
// prompts and previews both rely on it to present slots top to bottom.
func extractSlots(slide models.Slide, slideIndex int, purpose models.SlidePurpose) []models.Slot {
	var slots []models.Slot

	for _, el := range slide.Elements {
		if !el.IsText() || isDecorative(el) {
			continue
		}

		slotType, maxLength := classifySlot(purpose, el.FontSize)
		slots = append(slots, models.Slot{
			ID:               fmt.Sprintf("slot-%d-%s", slideIndex, el.ID),
			SlideIndex:       slideIndex,
			ElementID:        el.ID,
			Type:             slotType,
			MaxLength:        maxLength,
			Placeholder:      el.Text,
			Purpose:          slotPurpose(slotType, slideIndex, purpose),
			Required:         slotType.Required(),
			OriginalFontSize: el.FontSize,
			Position:         models.Position{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height},
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Position.Y < slots[j].Position.Y
	})
	return slots
}

// isDecorative reports whether a text element is ornamental rather than
// fillable: very short purely numeric/symbolic text, or a big 1-2 digit
// numeral that serves as a slide-number badge.
func isDecorative(el models.Element) bool {
	text := strings.TrimSpace(el.Text)
	if text == "" {
		return false
	}
	if utf8.RuneCountInString(text) <= 2 && !containsLetter(text) {
		return true
	}
	if el.FontSize >= 60 && bareNumber.MatchString(text) {
		return true
	}
	return false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// classifySlot picks the slot type and character budget from the slide's
// purpose and the element's font size.
func classifySlot(purpose models.SlidePurpose, fontSize int) (models.SlotType, int) {
	switch purpose {
	case models.PurposeCTA:
		switch {
		case fontSize >= 48:
			return models.SlotCTA, 80
		case fontSize >= 32:
			return models.SlotBody, 150
		default:
			return models.SlotCaption, 100
		}
	case models.PurposeHook, models.PurposeIntro:
		switch {
		case fontSize >= 56:
			return models.SlotTitle, 60
		case fontSize >= 36:
			return models.SlotSubtitle, 120
		default:
			return models.SlotBody, 200
		}
	default:
		switch {
		case fontSize >= 56:
			return models.SlotHeading, 50
		case fontSize >= 40:
			return models.SlotHeading, 80
		case fontSize >= 28:
			return models.SlotBody, 250
		default:
			return models.SlotBody, 300
		}
	}
}

// roleDescriptions give each slot type a human-readable name for prompts.
var roleDescriptions = map[models.SlotType]string{
	models.SlotTitle:    "Main title",
	models.SlotSubtitle: "Supporting subtitle",
	models.SlotHeading:  "Section heading",
	models.SlotBody:     "Body copy",
	models.SlotCaption:  "Short caption",
	models.SlotCTA:      "Call to action",
}

// slotPurpose builds the human-readable purpose string included in prompts,
// e.g. "Main title for slide 1 (hook slide)".
func slotPurpose(t models.SlotType, slideIndex int, purpose models.SlidePurpose) string {
	return fmt.Sprintf("%s for slide %d (%s slide)", roleDescriptions[t], slideIndex+1, purpose)
}

// countElements counts slide elements of the given type.
func countElements(slide models.Slide, et models.ElementType) int {
	n := 0
	for _, el := range slide.Elements {
		if el.Type == et {
			n++
		}
	}
	return n
}
