// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import (
	"math"
	"unicode/utf8"

	"slidepress/internal/models"
)

// ScoreQuality rates generated content 0-100. Length fit carries 40% of
// the score; the remaining 60 comes in flat bonuses for having content on
// the first slide, the last slide, and in every required slot. A perfect
// score therefore needs all three structural conditions plus every filled
// slot sitting in the 50-90% sweet spot of its length budget.
func ScoreQuality(analysis models.TemplateAnalysis, content map[string]string) int {
	var (
		lengthTotal  float64
		filled       int
		slide0Filled bool
		lastFilled   bool
	)
	requiredMet := true
	lastSlideIdx := analysis.TotalSlides - 1

	for _, slot := range analysis.Slots {
		text := content[slot.ID]
		if text == "" {
			if slot.Required {
				requiredMet = false
			}
			continue
		}

		filled++
		lengthTotal += lengthScore(utf8.RuneCountInString(text), slot.MaxLength)
		if slot.SlideIndex == 0 {
			slide0Filled = true
		}
		if slot.SlideIndex == lastSlideIdx {
			lastFilled = true
		}
	}

	score := 0.0
	if filled > 0 {
		score = 0.4 * (lengthTotal / float64(filled))
	}
	if slide0Filled {
		score += 20
	}
	if lastFilled {
		score += 20
	}
	if requiredMet {
		score += 20
	}

	return int(math.Round(score))
}

// lengthScore rewards content that uses 50-90% of the slot's budget,
// tolerates 30-100%, and penalizes overflow hardest.
func lengthScore(length, maxLength int) float64 {
	if maxLength <= 0 {
		return 50
	}
	ratio := float64(length) / float64(maxLength)
	switch {
	case ratio >= 0.5 && ratio <= 0.9:
		return 100
	case ratio >= 0.3 && ratio <= 1.0:
		return 70
	case ratio > 1.0:
		return 30
	default:
		return 50
	}
}
