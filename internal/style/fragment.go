// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package style

import (
	"fmt"
	"math"
	"strings"

	"slidepress/internal/models"
)

// Fixed lookup tables mapping profile values to prompt instructions.
// Every table has an entry for each closed-union value so the fragment is
// fully deterministic.

var vocabularyDirectives = map[models.VocabularyLevel]string{
	models.VocabularySimple:    "Use plain, everyday words. Avoid jargon.",
	models.VocabularyModerate:  "Use clear, accessible language with the occasional precise term.",
	models.VocabularyAdvanced:  "Use a rich vocabulary; precise, varied word choice is welcome.",
	models.VocabularyTechnical: "Use domain-specific terminology confidently; the audience is expert.",
}

var emojiDirectives = map[models.EmojiUsage]string{
	models.EmojiNone:     "Do not use emojis.",
	models.EmojiMinimal:  "Use at most one emoji, and only where it feels natural.",
	models.EmojiModerate: "Use a few emojis to add personality.",
	models.EmojiHeavy:    "Use emojis liberally, as visual punctuation.",
}

var hookDirectives = map[string]string{
	"question-based":    "open with a question that pulls the reader in",
	"personal-opening":  "open with a first-person moment or admission",
	"number-leading":    "open with a concrete number or statistic",
	"direct-statement":  "open with a bold, declarative statement",
	"contrarian-opener": "open by challenging a popular belief",
	"quote-opener":      "open with a short quotation",
	"short-punchy":      "open with a very short, punchy line",
	"narrative":         "open by dropping the reader into a story",
}

var ctaDirectives = map[string]string{
	"question-cta":    "close with a question to the reader",
	"opinion-seeking": "close by asking for the reader's opinion",
	"engagement-ask":  "close by inviting comments or shares",
	"save-prompt":     "close by telling readers to save the post",
	"follow-cta":      "close by inviting readers to follow for more",
	"link-cta":        "close by pointing readers to a link or resource",
}

// PromptFragment renders the profile as generation instructions, one line
// per profile field. It is the bridge from analysis to generation: the
// same profile always produces the same fragment.
func PromptFragment(p models.StyleProfile) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Write in a %s tone.", p.Tone))
	lines = append(lines, sentenceLengthDirective(p.AvgSentenceLength))
	lines = append(lines, vocabularyDirectives[p.VocabularyLevel])

	if d := patternDirective(p.HookPatterns, hookDirectives); d != "" {
		lines = append(lines, "Hooks: "+d+".")
	}
	if d := patternDirective(p.CTAPatterns, ctaDirectives); d != "" {
		lines = append(lines, "Calls to action: "+d+".")
	}

	lines = append(lines, formattingDirectives(p.Formatting)...)
	lines = append(lines, emojiDirectives[p.EmojiUsage])

	if p.Formatting.AvgHashtags > 0 {
		lines = append(lines, fmt.Sprintf("End with about %d hashtags.", int(math.Round(p.Formatting.AvgHashtags))))
	} else {
		lines = append(lines, "Do not add hashtags.")
	}

	if len(p.SignaturePhrases) > 0 {
		lines = append(lines, fmt.Sprintf("Where natural, reuse the author's recurring phrases: %s.",
			strings.Join(p.SignaturePhrases, ", ")))
	}
	if len(p.ContentThemes) > 0 {
		lines = append(lines, fmt.Sprintf("The author usually writes about: %s.",
			strings.Join(p.ContentThemes, ", ")))
	}

	return strings.Join(lines, "\n")
}

// sentenceLengthDirective buckets the average into short/medium/long advice.
func sentenceLengthDirective(avg int) string {
	switch {
	case avg < 10:
		return "Prefer short, punchy sentences."
	case avg <= 17:
		return "Use medium-length sentences."
	default:
		return "Longer, flowing sentences are fine."
	}
}

// patternDirective maps observed patterns through a directive table,
// keeping the profile's frequency order.
func patternDirective(patterns []string, table map[string]string) string {
	var parts []string
	for _, p := range patterns {
		if d, ok := table[p]; ok {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, "; or ")
}

func formattingDirectives(f models.FormattingStyle) []string {
	var lines []string
	if f.UsesLineBreaks {
		lines = append(lines, "Separate ideas with blank lines for easy scanning.")
	} else {
		lines = append(lines, "Write in continuous prose without extra blank lines.")
	}
	if f.UsesBullets {
		lines = append(lines, "Use bullet points for lists.")
	}
	if f.UsesNumberedList {
		lines = append(lines, "Use numbered lists for sequences or steps.")
	}
	if f.UsesBold {
		lines = append(lines, "Bold the key phrases.")
	}
	return lines
}
