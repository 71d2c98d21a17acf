// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import (
	"unicode/utf8"

	"slidepress/internal/models"
)

// PreviewData flattens the analysis into lightweight per-slide content
// boxes for the live preview: position, size, and the font size the full
// build would apply. Slots without generated content show their
// placeholder text.
func PreviewData(tpl *models.Template, analysis models.TemplateAnalysis, content map[string]string) []models.PreviewSlide {
	slotsBySlide := make(map[int][]models.Slot)
	for _, slot := range analysis.Slots {
		slotsBySlide[slot.SlideIndex] = append(slotsBySlide[slot.SlideIndex], slot)
	}

	preview := make([]models.PreviewSlide, 0, len(tpl.Slides))
	for i, slide := range tpl.Slides {
		ps := models.PreviewSlide{
			Index:           i,
			BackgroundColor: slide.BackgroundColor,
		}
		if breakdown := analysis.SlideBreakdown; i < len(breakdown) {
			ps.Purpose = breakdown[i].Purpose
		}

		for _, slot := range slotsBySlide[i] {
			box := models.PreviewBox{
				SlotID:   slot.ID,
				X:        slot.Position.X,
				Y:        slot.Position.Y,
				Width:    slot.Position.Width,
				Height:   slot.Position.Height,
				FontSize: slot.OriginalFontSize,
			}
			if text := content[slot.ID]; text != "" {
				box.Content = text
				box.FontSize = fitFontSize(slot.OriginalFontSize, utf8.RuneCountInString(text))
			} else {
				box.Content = slot.Placeholder
			}
			ps.Boxes = append(ps.Boxes, box)
		}

		preview = append(preview, ps)
	}

	return preview
}
