// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"slidepress/internal/models"
)

// ParseResponse extracts the slot-id → content map from a raw model
// response. It strips surrounding code fences, takes the substring from
// the first "{" to the last "}", and keeps only string-valued entries.
// Any failure returns nil — never a panic — so the caller can decide to
// retry. Missing required slots after a successful parse are logged but
// not fatal.
func ParseResponse(raw string, expected []models.Slot) map[string]string {
	raw = stripCodeFences(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		slog.Warn("llm response contains no JSON object", "length", len(raw))
		return nil
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decoded); err != nil {
		slog.Warn("llm response JSON is invalid", "error", err)
		return nil
	}

	content := make(map[string]string, len(decoded))
	for key, value := range decoded {
		if s, ok := value.(string); ok {
			content[key] = s
		}
	}

	for _, slot := range expected {
		if slot.Required && content[slot.ID] == "" {
			slog.Warn("required slot missing from llm response", "slot", slot.ID)
		}
	}

	return content
}

// stripCodeFences removes a leading ```/```json fence line and the
// trailing fence, if present.
func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if idx := strings.Index(raw, "\n"); idx != -1 {
			raw = raw[idx+1:]
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

// Issue describes a single validation problem with generated content.
type Issue struct {
	SlotID  string `json:"slotId"`
	Message string `json:"message"`
}

// ValidationResult reports whether content satisfies the slots' rules.
type ValidationResult struct {
	IsValid bool    `json:"isValid"`
	Issues  []Issue `json:"issues"`
}

// minRequiredLength is the shortest acceptable content for a required slot;
// anything shorter is a stub like "OK" that would look broken on a slide.
const minRequiredLength = 5

// Validate checks generated content against the slots' rules: required
// slots must be present, nothing may exceed its character budget, and
// required content must not be trivially short.
func Validate(content map[string]string, slots []models.Slot) ValidationResult {
	var issues []Issue

	for _, slot := range slots {
		text, ok := content[slot.ID]
		if !ok || text == "" {
			if slot.Required {
				issues = append(issues, Issue{
					SlotID:  slot.ID,
					Message: fmt.Sprintf("required %s slot has no content", slot.Type),
				})
			}
			continue
		}

		length := utf8.RuneCountInString(text)
		if length > slot.MaxLength {
			issues = append(issues, Issue{
				SlotID:  slot.ID,
				Message: fmt.Sprintf("content is %d characters, limit is %d", length, slot.MaxLength),
			})
		}
		if slot.Required && length < minRequiredLength {
			issues = append(issues, Issue{
				SlotID:  slot.ID,
				Message: fmt.Sprintf("content is too short (%d characters)", length),
			})
		}
	}

	return ValidationResult{IsValid: len(issues) == 0, Issues: issues}
}

// TruncateToFit shortens text to at most maxLength characters, reserving
// room for an ellipsis. The cut backtracks to the last word boundary when
// one exists past 70% of the limit, so truncation prefers whole words.
func TruncateToFit(text string, maxLength int) string {
	r := []rune(text)
	if len(r) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(r[:maxLength])
	}

	cut := r[:maxLength-3]
	lastSpace := -1
	for i, c := range cut {
		if c == ' ' {
			lastSpace = i
		}
	}

	if lastSpace > int(float64(maxLength)*0.7) {
		return string(cut[:lastSpace]) + "..."
	}
	return string(cut) + "..."
}
