// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt builds the system and user prompts for carousel content
// generation and parses the model's response back into per-slot content.
// Prompt construction is deterministic; parsing never panics and signals
// failure with a nil map so the caller owns the retry decision.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"slidepress/internal/models"
)

// SystemPromptInput carries everything the system prompt is built from.
// Style and Personalization are optional; empty values render nothing.
type SystemPromptInput struct {
	Analysis        models.TemplateAnalysis
	Tone            models.CarouselTone
	Audience        string
	Industry        string
	StyleFragment   string
	Personalization *models.PersonalizationContext
}

// UserPromptInput carries the per-request generation parameters.
type UserPromptInput struct {
	Topic             string
	KeyPoints         []string
	CTAType           models.CTAType
	CustomCTA         string
	Slots             []models.Slot
	AdditionalContext string
}

const missionStatement = `You are an expert LinkedIn carousel copywriter. You write scroll-stopping,
high-value carousel content that respects strict per-slot character limits.`

// toneGuidance maps each tone to writing instructions. Unknown tones fall
// back to the professional entry.
var toneGuidance = map[models.CarouselTone]string{
	models.ToneProfessional:  "Write with authority and polish. Clear claims, concrete evidence, no fluff.",
	models.ToneCasual:        "Write like you talk. Contractions, simple words, a friendly aside or two.",
	models.ToneEducational:   "Teach. Break the topic into digestible steps and explain the why behind each.",
	models.ToneInspirational: "Uplift. Paint the transformation and make the reader feel it is within reach.",
	models.ToneStorytelling:  "Tell a story. Set a scene, build tension across slides, land the lesson at the end.",
	models.ToneMatchMyStyle: "Mirror the author's voice EXACTLY as described in the style notes below. " +
		"Their phrasing, their rhythm, their quirks — the reader must believe the author wrote every word.",
}

// ctaPhrases maps named CTA types to the instruction for the final slide.
var ctaPhrases = map[models.CTAType]string{
	models.CTAFollow:  "End with a call to action inviting readers to follow the author for more content like this.",
	models.CTAComment: "End with a call to action asking readers to share their take in the comments.",
	models.CTAShare:   "End with a call to action encouraging readers to repost this with their network.",
	models.CTASave:    "End with a call to action telling readers to save this carousel for later.",
	models.CTALink:    "End with a call to action pointing readers to the link in the author's bio.",
	models.CTADM:      "End with a call to action inviting readers to send the author a direct message.",
}

// BuildSystemPrompt assembles the system prompt: mission, tone guidance,
// optional personalization and style context, and the template's structure
// with per-slot requirements and strict JSON output instructions.
func BuildSystemPrompt(in SystemPromptInput) string {
	var b strings.Builder

	b.WriteString(missionStatement)
	b.WriteString("\n\n")

	guidance, ok := toneGuidance[in.Tone]
	if !ok {
		guidance = toneGuidance[models.ToneProfessional]
	}
	b.WriteString("Tone: ")
	b.WriteString(guidance)
	b.WriteString("\n")

	matchStyle := in.Tone == models.ToneMatchMyStyle
	if in.Personalization != nil {
		b.WriteString("\n")
		b.WriteString(renderPersonalization(in.Personalization, matchStyle))
	}
	if in.StyleFragment != "" {
		b.WriteString("\nAuthor style notes:\n")
		b.WriteString(in.StyleFragment)
		b.WriteString("\n")
	}

	if in.Audience != "" {
		fmt.Fprintf(&b, "\nTarget audience: %s\n", in.Audience)
	}
	if in.Industry != "" {
		fmt.Fprintf(&b, "Industry context: %s\n", in.Industry)
	}

	b.WriteString("\n")
	b.WriteString(renderStructure(in.Analysis))
	b.WriteString("\n")
	b.WriteString(renderSlotRequirements(in.Analysis.Slots))

	b.WriteString(`
Output format:
Respond with ONLY a single JSON object. Each key is a slot id exactly as
listed above; each value is the content for that slot as a plain string.
No markdown, no code fences, no commentary, no keys that are not slot ids.
Every required slot MUST be present. Stay within each slot's character limit.`)

	return b.String()
}

// renderPersonalization emits the optional author/brand block. Each field
// renders only when present; match-my-style requests use stronger wording
// because generic output is the main failure mode being personalized away.
func renderPersonalization(p *models.PersonalizationContext, matchStyle bool) string {
	var b strings.Builder

	if matchStyle {
		b.WriteString("About the author (write as this person, never about them):\n")
	} else {
		b.WriteString("About the author:\n")
	}

	if p.Name != "" {
		fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	}
	if p.Headline != "" {
		fmt.Fprintf(&b, "- Headline: %s\n", p.Headline)
	}
	if p.Industry != "" {
		fmt.Fprintf(&b, "- Industry: %s\n", p.Industry)
	}
	if p.CompanyName != "" {
		fmt.Fprintf(&b, "- Company: %s\n", p.CompanyName)
	}
	if p.ValueProposition != "" {
		fmt.Fprintf(&b, "- Value proposition: %s\n", p.ValueProposition)
	}
	if p.ProductsAndServices != "" {
		fmt.Fprintf(&b, "- Products and services: %s\n", p.ProductsAndServices)
	}
	if p.TargetAudience != "" {
		fmt.Fprintf(&b, "- Target audience: %s\n", p.TargetAudience)
	}
	if p.ToneOfVoice != "" {
		fmt.Fprintf(&b, "- Brand voice: %s\n", p.ToneOfVoice)
	}

	if len(p.RecentPosts) > 0 {
		if matchStyle {
			b.WriteString("Recent posts by the author — study these and replicate their voice:\n")
		} else {
			b.WriteString("Recent posts by the author, for context:\n")
		}
		for i, post := range p.RecentPosts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, truncateText(post, 280))
		}
	}
	if len(p.SavedIdeas) > 0 {
		b.WriteString("Ideas the author saved for inspiration:\n")
		for i, idea := range p.SavedIdeas {
			fmt.Fprintf(&b, "%d. %s\n", i+1, truncateText(idea, 200))
		}
	}

	return b.String()
}

// renderStructure summarizes the template's slides for the model so it can
// plan the narrative arc across them.
func renderStructure(analysis models.TemplateAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The carousel template has %d slides:\n", analysis.TotalSlides)

	for _, slide := range analysis.SlideBreakdown {
		fmt.Fprintf(&b, "- Slide %d (%s): %d text area(s)", slide.Index+1, slide.Purpose, slide.TextElementCount)
		if slide.HasImage {
			b.WriteString(", includes an image")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderSlotRequirements lists every slot with its id, type, budget, and a
// truncated example of the designer's placeholder text.
func renderSlotRequirements(slots []models.Slot) string {
	var b strings.Builder
	b.WriteString("Content slots to fill:\n")

	for _, slot := range slots {
		required := ""
		if slot.Required {
			required = ", REQUIRED"
		}
		fmt.Fprintf(&b, "- %s (%s%s): %s, max %d characters", slot.ID, slot.Type, required, slot.Purpose, slot.MaxLength)
		if placeholder := strings.TrimSpace(slot.Placeholder); placeholder != "" {
			fmt.Fprintf(&b, `, example: "%s"`, truncateText(placeholder, 40))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// BuildUserPrompt assembles the per-request prompt: topic, key points, the
// CTA instruction, a JSON description of every slot, and closing reminders.
func BuildUserPrompt(in UserPromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create carousel content about: %s\n", in.Topic)

	if len(in.KeyPoints) > 0 {
		b.WriteString("\nKey points to cover:\n")
		for i, point := range in.KeyPoints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, point)
		}
	} else {
		b.WriteString("\nNo specific key points were provided — decide the best angle from the topic.\n")
	}

	b.WriteString("\n")
	b.WriteString(ctaInstruction(in.CTAType, in.CustomCTA))
	b.WriteString("\n")

	b.WriteString("\nSlots (fill every one, respecting maxLength):\n")
	b.WriteString(slotSpecJSON(in.Slots))
	b.WriteString("\n")

	if in.AdditionalContext != "" {
		fmt.Fprintf(&b, "\nAdditional context: %s\n", in.AdditionalContext)
	}

	b.WriteString(`
Remember: respond with only the JSON object keyed by slot id, stay within
every character limit, and make slide 1 impossible to scroll past.`)

	return b.String()
}

// ctaInstruction resolves the CTA policy for the final slide. An unknown
// or empty type falls back to a generic ask rather than failing.
func ctaInstruction(t models.CTAType, custom string) string {
	switch t {
	case models.CTANone:
		return "Do NOT include any call to action. End on the content itself."
	case models.CTACustom:
		if custom != "" {
			return fmt.Sprintf("Use this exact call to action on the final slide: %q", custom)
		}
		return "End with an engaging call to action on the final slide."
	default:
		if phrase, ok := ctaPhrases[t]; ok {
			return phrase
		}
		return "End with an engaging call to action on the final slide."
	}
}

// slotSpec is the compact slot description embedded in the user prompt.
type slotSpec struct {
	ID        string          `json:"id"`
	Type      models.SlotType `json:"type"`
	MaxLength int             `json:"maxLength"`
	Slide     int             `json:"slide"`
}

func slotSpecJSON(slots []models.Slot) string {
	specs := make([]slotSpec, 0, len(slots))
	for _, s := range slots {
		specs = append(specs, slotSpec{
			ID:        s.ID,
			Type:      s.Type,
			MaxLength: s.MaxLength,
			Slide:     s.SlideIndex + 1,
		})
	}

	// Marshalling a slice of plain structs cannot fail.
	data, _ := json.Marshal(specs)
	return string(data)
}

// truncateText cuts a string to maxLen runes, appending an ellipsis.
func truncateText(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
