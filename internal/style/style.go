// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style computes a statistical voice fingerprint from an author's
// post history. Analyze is pure and does no I/O; the resulting profile is
// turned into prompt instructions by PromptFragment and fed to generation.
//
// The author's own posts count double in every aggregate so the profile
// leans toward their voice rather than their reading habits. The weighting
// is an explicit multiplier in the sums, not list duplication, so large
// histories are not copied. Signature-phrase mining runs on the unweighted
// own posts only, to avoid double-counting n-grams.
package style

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"slidepress/internal/models"
)

const (
	ownPostWeight   = 2
	savedPostWeight = 1
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	numberedLine  = regexp.MustCompile(`^\d+[.)]`)
	hashtagToken  = regexp.MustCompile(`#[A-Za-z]\w*`)
	wordToken     = regexp.MustCompile(`[a-z']+`)
)

// weightedPost pairs a post with its aggregate weight.
type weightedPost struct {
	text   string
	weight int
}

// Analyze computes a style profile from the author's own posts and the
// posts they saved for inspiration. Empty input yields DefaultProfile,
// never an error.
func Analyze(ownPosts, savedPosts []string) models.StyleProfile {
	posts := weightPosts(ownPosts, savedPosts)
	if len(posts) == 0 {
		return DefaultProfile()
	}

	return models.StyleProfile{
		AvgSentenceLength: avgSentenceLength(posts),
		VocabularyLevel:   vocabularyLevel(posts),
		Tone:              dominantTone(posts),
		Formatting:        formattingStyle(posts),
		HookPatterns:      topPatterns(hookCounts(posts), 3),
		EmojiUsage:        emojiUsage(posts),
		CTAPatterns:       topPatterns(ctaCounts(posts), 3),
		SignaturePhrases:  signaturePhrases(ownPosts),
		ContentThemes:     contentThemes(posts),
	}
}

// DefaultProfile is the fixed fallback used when no post history exists.
// Values describe a typical LinkedIn writer: medium sentences, moderate
// vocabulary, professional tone, blank-line paragraphs of ~2 lines, no
// emojis, around 3 hashtags.
func DefaultProfile() models.StyleProfile {
	return models.StyleProfile{
		AvgSentenceLength: 12,
		VocabularyLevel:   models.VocabularyModerate,
		Tone:              "professional",
		Formatting: models.FormattingStyle{
			UsesLineBreaks:  true,
			AvgParagraphLen: 2,
			AvgHashtags:     3,
		},
		HookPatterns:     []string{"direct-statement"},
		EmojiUsage:       models.EmojiNone,
		CTAPatterns:      []string{"question-cta"},
		SignaturePhrases: []string{},
		ContentThemes:    []string{},
	}
}

// weightPosts pairs non-blank posts with their weights, own posts first.
func weightPosts(own, saved []string) []weightedPost {
	var posts []weightedPost
	for _, p := range own {
		if strings.TrimSpace(p) != "" {
			posts = append(posts, weightedPost{text: p, weight: ownPostWeight})
		}
	}
	for _, p := range saved {
		if strings.TrimSpace(p) != "" {
			posts = append(posts, weightedPost{text: p, weight: savedPostWeight})
		}
	}
	return posts
}

// --- Sentence length ---

// avgSentenceLength returns the weighted mean word count per sentence.
// Newlines are treated as sentence terminators; fragments of three or
// fewer characters (stray bullets, lone emojis) are dropped.
func avgSentenceLength(posts []weightedPost) int {
	totalWords, totalSentences := 0, 0

	for _, p := range posts {
		flat := strings.ReplaceAll(p.text, "\n", ". ")
		for _, s := range sentenceSplit.Split(flat, -1) {
			s = strings.TrimSpace(s)
			if len(s) <= 3 {
				continue
			}
			totalWords += len(strings.Fields(s)) * p.weight
			totalSentences += p.weight
		}
	}

	if totalSentences == 0 {
		return 12
	}
	return int(math.Round(float64(totalWords) / float64(totalSentences)))
}

// --- Vocabulary ---

// vocabularyLevel buckets word complexity by average word length and the
// fraction of long (>8 char) words.
func vocabularyLevel(posts []weightedPost) models.VocabularyLevel {
	totalLen, totalWords, longWords := 0, 0, 0

	for _, p := range posts {
		for _, w := range strings.Fields(p.text) {
			w = strings.Trim(w, ".,!?;:\"'()#")
			if w == "" {
				continue
			}
			n := len([]rune(w))
			totalLen += n * p.weight
			totalWords += p.weight
			if n > 8 {
				longWords += p.weight
			}
		}
	}

	if totalWords == 0 {
		return models.VocabularyModerate
	}

	avgLen := float64(totalLen) / float64(totalWords)
	longFrac := float64(longWords) / float64(totalWords)

	switch {
	case avgLen > 6.5 || longFrac > 0.2:
		return models.VocabularyTechnical
	case avgLen > 5.5 || longFrac > 0.12:
		return models.VocabularyAdvanced
	case avgLen > 4.5:
		return models.VocabularyModerate
	default:
		return models.VocabularySimple
	}
}

// --- Tone ---

var toneKeywords = map[string][]string{
	"professional":   {"strategy", "business", "results", "clients", "value", "industry", "leadership", "growth", "team", "experience"},
	"conversational": {"honestly", "you know", "let's", "stuff", "folks", "pretty much", "kinda", "guess what", "real talk"},
	"motivational":   {"believe", "dream", "hustle", "mindset", "never give up", "push yourself", "you can", "success", "grind", "keep going"},
	"analytical":     {"data", "analysis", "metrics", "research", "study", "evidence", "trend", "numbers", "insight", "percent"},
	"humorous":       {"lol", "haha", "funny", "joke", "hilarious", "plot twist", "spoiler alert"},
	"educational":    {"how to", "learn", "tip", "guide", "step by step", "lesson", "framework", "here's why", "breakdown"},
}

// dominantTone scores six keyword buckets and joins the top one or two
// nonzero buckets. With no hits at all the tone defaults to professional.
func dominantTone(posts []weightedPost) string {
	scores := make(map[string]int, len(toneKeywords))
	for _, p := range posts {
		lower := strings.ToLower(p.text)
		for tone, keywords := range toneKeywords {
			for _, kw := range keywords {
				scores[tone] += strings.Count(lower, kw) * p.weight
			}
		}
	}

	top := topPatterns(scores, 2)
	if len(top) == 0 {
		return "professional"
	}
	return strings.Join(top, ", ")
}

// --- Formatting ---

func formattingStyle(posts []weightedPost) models.FormattingStyle {
	total := 0
	lineBreaks, bullets, numbered, bold := 0, 0, 0, 0
	paragraphLines, paragraphs := 0, 0
	hashtags := 0

	for _, p := range posts {
		total += p.weight
		if strings.Contains(p.text, "\n") {
			lineBreaks += p.weight
		}
		if strings.Contains(p.text, "**") || strings.Contains(p.text, "__") {
			bold += p.weight
		}

		hasBullet, hasNumber := false, false
		for _, line := range strings.Split(p.text, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*") {
				hasBullet = true
			}
			if numberedLine.MatchString(trimmed) {
				hasNumber = true
			}
		}
		if hasBullet {
			bullets += p.weight
		}
		if hasNumber {
			numbered += p.weight
		}

		for _, para := range strings.Split(p.text, "\n\n") {
			if strings.TrimSpace(para) == "" {
				continue
			}
			paragraphLines += len(strings.Split(strings.TrimSpace(para), "\n")) * p.weight
			paragraphs += p.weight
		}

		hashtags += len(hashtagToken.FindAllString(p.text, -1)) * p.weight
	}

	f := models.FormattingStyle{
		UsesLineBreaks:   ratio(lineBreaks, total) > 0.5,
		UsesBullets:      ratio(bullets, total) > 0.2,
		UsesNumberedList: ratio(numbered, total) > 0.2,
		UsesBold:         ratio(bold, total) > 0.2,
	}
	if paragraphs > 0 {
		f.AvgParagraphLen = round1(float64(paragraphLines) / float64(paragraphs))
	}
	if total > 0 {
		f.AvgHashtags = round1(float64(hashtags) / float64(total))
	}
	return f
}

// emojiUsage buckets the weighted average emoji count per post.
func emojiUsage(posts []weightedPost) models.EmojiUsage {
	total, emojis := 0, 0
	for _, p := range posts {
		total += p.weight
		emojis += countEmojis(p.text) * p.weight
	}
	if total == 0 {
		return models.EmojiNone
	}

	avg := float64(emojis) / float64(total)
	switch {
	case avg == 0:
		return models.EmojiNone
	case avg <= 1:
		return models.EmojiMinimal
	case avg <= 3:
		return models.EmojiModerate
	default:
		return models.EmojiHeavy
	}
}

// countEmojis counts runes in the common Unicode emoji blocks.
func countEmojis(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r >= 0x1F300 && r <= 0x1F5FF, // symbols & pictographs
			r >= 0x1F600 && r <= 0x1F64F, // emoticons
			r >= 0x1F680 && r <= 0x1F6FF, // transport & map
			r >= 0x1F900 && r <= 0x1F9FF, // supplemental
			r >= 0x2600 && r <= 0x26FF,   // miscellaneous symbols
			r >= 0x2700 && r <= 0x27BF:   // dingbats
			n++
		}
	}
	return n
}

// --- Hooks and CTAs ---

// hookCounts classifies the first line of each post. Classification order
// matters: more specific openers are checked before generic ones, and
// every first line lands in exactly one bucket.
func hookCounts(posts []weightedPost) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		line := firstLine(p.text)
		if line == "" {
			continue
		}
		counts[classifyHook(line)] += p.weight
	}
	return counts
}

func classifyHook(line string) string {
	lower := strings.ToLower(strings.TrimSpace(line))

	switch {
	case strings.HasSuffix(lower, "?"),
		hasAnyPrefix(lower, "what ", "why ", "how ", "have you", "did you", "do you", "would you"):
		return "question-based"
	case hasAnyPrefix(lower, "unpopular opinion", "hot take", "stop ", "everyone is wrong", "controversial"):
		return "contrarian-opener"
	case len(lower) > 0 && lower[0] >= '0' && lower[0] <= '9':
		return "number-leading"
	case hasAnyPrefix(lower, `"`, "“", "'"):
		return "quote-opener"
	case hasAnyPrefix(lower, "i ", "i'", "my ", "we ", "when i "):
		return "personal-opening"
	case hasAnyPrefix(lower, "last week", "last year", "yesterday", "a few years ago", "back in ", "once upon"):
		return "narrative"
	case len(strings.Fields(lower)) <= 5:
		return "short-punchy"
	default:
		return "direct-statement"
	}
}

// ctaCounts classifies the last three lines of each post, where the
// closing ask lives. Specific asks win over the generic question check.
func ctaCounts(posts []weightedPost) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		tail := lastLines(p.text, 3)
		if tail == "" {
			continue
		}
		if label := classifyCTA(tail); label != "" {
			counts[label] += p.weight
		}
	}
	return counts
}

func classifyCTA(tail string) string {
	lower := strings.ToLower(tail)

	switch {
	case strings.Contains(lower, "save this") || strings.Contains(lower, "bookmark"):
		return "save-prompt"
	case strings.Contains(lower, "follow me") || strings.Contains(lower, "follow for") || strings.Contains(lower, "follow +"):
		return "follow-cta"
	case strings.Contains(lower, "link in") || strings.Contains(lower, "check out") || strings.Contains(lower, "sign up"):
		return "link-cta"
	case strings.Contains(lower, "what do you think") || strings.Contains(lower, "agree?") || strings.Contains(lower, "thoughts?") || strings.Contains(lower, "am i wrong"):
		return "opinion-seeking"
	case strings.Contains(lower, "comment") || strings.Contains(lower, "share this") || strings.Contains(lower, "repost") || strings.Contains(lower, "tag someone"):
		return "engagement-ask"
	case strings.Contains(lower, "?"):
		return "question-cta"
	default:
		return ""
	}
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func lastLines(text string, n int) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// --- Signature phrases ---

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "i": true, "if": true, "in": true, "is": true, "it": true,
	"its": true, "my": true, "of": true, "on": true, "or": true, "our": true,
	"so": true, "that": true, "the": true, "their": true, "they": true,
	"this": true, "to": true, "was": true, "we": true, "were": true,
	"will": true, "with": true, "you": true, "your": true,
}

// signaturePhrases mines recurring 2-4 word n-grams from the author's own
// posts. Phrases led by a stop word or shorter than six characters are
// dropped; only phrases seen at least twice survive, top ten by frequency.
func signaturePhrases(ownPosts []string) []string {
	counts := make(map[string]int)

	for _, post := range ownPosts {
		words := wordToken.FindAllString(strings.ToLower(post), -1)
		for n := 2; n <= 4; n++ {
			for i := 0; i+n <= len(words); i++ {
				if stopWords[words[i]] {
					continue
				}
				phrase := strings.Join(words[i:i+n], " ")
				if len(phrase) < 6 {
					continue
				}
				counts[phrase]++
			}
		}
	}

	recurring := make(map[string]int)
	for phrase, c := range counts {
		if c >= 2 {
			recurring[phrase] = c
		}
	}
	return topPatterns(recurring, 10)
}

// --- Content themes ---

var themeKeywords = map[string][]string{
	"leadership":       {"leadership", "leader", "manager", "culture", "vision", "mentor", "delegate"},
	"sales":            {"sales", "selling", "pipeline", "prospect", "quota", "deal", "outreach", "close"},
	"marketing":        {"marketing", "brand", "audience", "campaign", "content", "seo", "funnel"},
	"technology":       {"technology", "software", "engineering", "code", "tech", "product", "automation", " ai "},
	"entrepreneurship": {"startup", "founder", "entrepreneur", "bootstrap", "funding", "venture", "launch"},
	"productivity":     {"productivity", "focus", "habit", "routine", "deep work", "priorities", "time management"},
	"career":           {"career", "job", "interview", "resume", "promotion", "hiring", "networking"},
	"growth":           {"growth", "improve", "learning", "progress", "scale", "compound", "develop"},
}

// contentThemes returns up to five themes whose keyword vocabularies hit
// the post history, ordered by hit count.
func contentThemes(posts []weightedPost) []string {
	scores := make(map[string]int, len(themeKeywords))
	for _, p := range posts {
		lower := strings.ToLower(p.text)
		for theme, keywords := range themeKeywords {
			for _, kw := range keywords {
				scores[theme] += strings.Count(lower, kw) * p.weight
			}
		}
	}
	return topPatterns(scores, 5)
}

// --- Shared helpers ---

// topPatterns returns up to n keys with nonzero counts, highest first.
// Ties break alphabetically so results are deterministic.
func topPatterns(counts map[string]int, n int) []string {
	type entry struct {
		key   string
		count int
	}
	var entries []entry
	for k, c := range counts {
		if c > 0 {
			entries = append(entries, entry{k, c})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.key)
	}
	return result
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
