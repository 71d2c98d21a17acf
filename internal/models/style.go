// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// VocabularyLevel buckets the complexity of an author's word choice.
type VocabularyLevel string

const (
	VocabularySimple    VocabularyLevel = "simple"
	VocabularyModerate  VocabularyLevel = "moderate"
	VocabularyAdvanced  VocabularyLevel = "advanced"
	VocabularyTechnical VocabularyLevel = "technical"
)

// EmojiUsage buckets how often an author uses emojis per post.
type EmojiUsage string

const (
	EmojiNone     EmojiUsage = "none"
	EmojiMinimal  EmojiUsage = "minimal"
	EmojiModerate EmojiUsage = "moderate"
	EmojiHeavy    EmojiUsage = "heavy"
)

// FormattingStyle captures the structural habits of an author's posts.
type FormattingStyle struct {
	UsesLineBreaks   bool    `json:"usesLineBreaks"`
	AvgParagraphLen  float64 `json:"avgParagraphLength"`
	UsesBullets      bool    `json:"usesBullets"`
	UsesNumberedList bool    `json:"usesNumberedLists"`
	UsesBold         bool    `json:"usesBold"`
	AvgHashtags      float64 `json:"avgHashtags"`
}

// StyleProfile is a statistical fingerprint of an author's prior writing.
// It is a pure function of the post arrays it was computed from and carries
// no identity or persistence of its own.
type StyleProfile struct {
	AvgSentenceLength int             `json:"avgSentenceLength"`
	VocabularyLevel   VocabularyLevel `json:"vocabularyLevel"`
	Tone              string          `json:"tone"`
	Formatting        FormattingStyle `json:"formattingStyle"`
	HookPatterns      []string        `json:"hookPatterns"`
	EmojiUsage        EmojiUsage      `json:"emojiUsage"`
	CTAPatterns       []string        `json:"ctaPatterns"`
	SignaturePhrases  []string        `json:"signaturePhrases"`
	ContentThemes     []string        `json:"contentThemes"`
}

// StyleMeta is the refresh bookkeeping for an account's style analysis.
// It records how many posts the last analysis covered and when it ran;
// the computed profile itself is never stored.
type StyleMeta struct {
	PostsAnalyzedCount int       `json:"posts_analyzed_count"`
	LastRefreshedAt    time.Time `json:"last_refreshed_at"`
}
