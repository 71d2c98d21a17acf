// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package carousel merges generated content back into a template's slides,
// recomputing font sizes so longer text still fits the designer's layout.
// The template catalog is shared and read-only: every build works on a deep
// copy and assigns fresh slide and element ids, so concurrent generations
// backed by the same catalog entry can never interfere.
package carousel

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// slotIDPattern splits a slot id back into its slide index and element id.
var slotIDPattern = regexp.MustCompile(`^slot-(\d+)-(.+)$`)

// Build merges generated content into a fresh copy of the template's
// slides. Text elements whose slot has content get the new text and a
// recomputed font size; slots without content keep the designer's
// placeholder and produce a warning. Non-text elements pass through with
// only their id regenerated.
func Build(tpl *models.Template, analysis models.TemplateAnalysis, content map[string]string) models.BuildResult {
	slotsByElement := make(map[string]models.Slot, len(analysis.Slots))
	for _, slot := range analysis.Slots {
		slotsByElement[elementKey(slot.SlideIndex, slot.ElementID)] = slot
	}

	result := models.BuildResult{
		Slides:     make([]models.Slide, 0, len(tpl.Slides)),
		TotalSlots: analysis.TotalSlots,
	}

	for i, slide := range tpl.Slides {
		fresh := models.Slide{
			ID:              uuid.New().String(),
			BackgroundColor: slide.BackgroundColor,
			Elements:        make([]models.Element, 0, len(slide.Elements)),
		}

		for _, el := range slide.Elements {
			clone := el
			clone.ID = uuid.New().String()

			if el.IsText() {
				if slot, ok := slotsByElement[elementKey(i, el.ID)]; ok {
					if text := content[slot.ID]; text != "" {
						clone.Text = text
						clone.FontSize = fitFontSize(el.FontSize, utf8.RuneCountInString(text))
						result.FilledSlots++
					} else {
						result.Warnings = append(result.Warnings,
							fmt.Sprintf("no content for %s, keeping placeholder", slot.ID))
					}
				}
			}

			fresh.Elements = append(fresh.Elements, clone)
		}

		result.Slides = append(result.Slides, fresh)
	}

	return result
}

// MergeContent is the partial-regeneration path: it replaces text only for
// the listed slot ids and leaves every other slide and element untouched.
// Slot ids name the template's element, but built slides carry fresh ids,
// so each target is resolved against the template and mapped into the
// slides by position (Build preserves element order). Unlike Build it does
// not recompute font sizes, so sizing a user may have adjusted by hand
// survives an edit round-trip.
func MergeContent(tpl *models.Template, slides []models.Slide, content map[string]string, slotIDs []string) []models.Slide {
	merged := cloneSlides(slides)

	for _, slotID := range slotIDs {
		m := slotIDPattern.FindStringSubmatch(slotID)
		if m == nil {
			continue
		}
		slideIndex, err := strconv.Atoi(m[1])
		if err != nil || slideIndex < 0 || slideIndex >= len(merged) || slideIndex >= len(tpl.Slides) {
			continue
		}
		text := content[slotID]
		if text == "" {
			continue
		}

		elementID := m[2]
		for j, tplEl := range tpl.Slides[slideIndex].Elements {
			if tplEl.ID != elementID {
				continue
			}
			if j >= len(merged[slideIndex].Elements) {
				break
			}
			if el := &merged[slideIndex].Elements[j]; el.IsText() {
				el.Text = text
			}
			break
		}
	}

	return merged
}

// fitFontSize shrinks a font size based on how much text landed in the
// element, bucketed by the element's original size band. Small text is
// never auto-shrunk.
func fitFontSize(original, chars int) int {
	switch {
	case original >= 72: // title
		switch {
		case chars > 50:
			return 48
		case chars > 40:
			return 56
		case chars > 25:
			return 64
		}
	case original >= 48: // heading
		switch {
		case chars > 100:
			return 32
		case chars > 80:
			return 36
		case chars > 50:
			return 42
		}
	case original >= 36: // subheading
		switch {
		case chars > 120:
			return 28
		case chars > 80:
			return 32
		}
	case original >= 28: // body
		switch {
		case chars > 250:
			return 22
		case chars > 200:
			return 24
		case chars > 150:
			return 26
		}
	}
	return original
}

// cloneSlides deep-copies slides; elements hold only value fields so
// copying the slices is a full deep copy.
func cloneSlides(slides []models.Slide) []models.Slide {
	cloned := make([]models.Slide, len(slides))
	for i, slide := range slides {
		cloned[i] = slide
		cloned[i].Elements = make([]models.Element, len(slide.Elements))
		copy(cloned[i].Elements, slide.Elements)
	}
	return cloned
}

func elementKey(slideIndex int, elementID string) string {
	return strconv.Itoa(slideIndex) + "|" + elementID
}
