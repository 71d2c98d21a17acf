// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidepress/internal/analyzer"
	"slidepress/internal/carousel"
	"slidepress/internal/metrics"
	"slidepress/internal/middleware"
	"slidepress/internal/models"
	"slidepress/internal/prompt"
	"slidepress/internal/store"
	"slidepress/internal/style"
)

// Validation limits for generation request fields.
const (
	maxTopicLen     = 500
	maxKeyPoints    = 10
	maxKeyPointLen  = 500
	maxContextLen   = 2_000
	maxCustomCTALen = 300
)

// generateRequest is the body of POST /api/carousels.
type generateRequest struct {
	TemplateID        uuid.UUID           `json:"template_id"`
	Topic             string              `json:"topic"`
	Tone              models.CarouselTone `json:"tone"`
	KeyPoints         []string            `json:"key_points"`
	CTAType           models.CTAType      `json:"cta_type"`
	CustomCTA         string              `json:"custom_cta"`
	Audience          string              `json:"audience"`
	Industry          string              `json:"industry"`
	AdditionalContext string              `json:"additional_context"`
}

func (g *generateRequest) validate() string {
	g.Topic = strings.TrimSpace(g.Topic)
	if g.TemplateID == uuid.Nil {
		return "template_id is required"
	}
	if g.Topic == "" {
		return "topic is required"
	}
	if utf8.RuneCountInString(g.Topic) > maxTopicLen {
		return "topic is too long (max 500 characters)"
	}
	if len(g.KeyPoints) > maxKeyPoints {
		return "too many key points (max 10)"
	}
	for _, p := range g.KeyPoints {
		if utf8.RuneCountInString(p) > maxKeyPointLen {
			return "key point is too long (max 500 characters)"
		}
	}
	if utf8.RuneCountInString(g.AdditionalContext) > maxContextLen {
		return "additional context is too long (max 2,000 characters)"
	}
	if utf8.RuneCountInString(g.CustomCTA) > maxCustomCTALen {
		return "custom CTA is too long (max 300 characters)"
	}
	if g.Tone == "" {
		g.Tone = models.ToneProfessional
	}
	if g.CTAType == "" {
		g.CTAType = models.CTANone
	}
	return ""
}

// generateResponse wraps the persisted draft with build diagnostics.
type generateResponse struct {
	Carousel    *models.Carousel `json:"carousel"`
	FilledSlots int              `json:"filled_slots"`
	TotalSlots  int              `json:"total_slots"`
	Score       int              `json:"score"`
	Warnings    []string         `json:"warnings"`
}

// CreateCarousel runs the full generation pipeline: analyze the template,
// build prompts (with the author's style fragment when posts exist), call
// the model, parse and validate the response, merge content into fresh
// slides, score, and persist the draft.
func (a *API) CreateCarousel(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tpl, err := a.templates.FindByID(r.Context(), req.TemplateID)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		slog.Error("load template", "id", req.TemplateID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load template")
		return
	}

	analysis := analyzer.Analyze(tpl)
	if analysis.TotalSlots == 0 {
		writeError(w, http.StatusUnprocessableEntity, "template has no fillable slots, nothing to generate")
		return
	}

	styleFragment := a.styleFragment(r.Context(), account.ID)

	systemPrompt := prompt.BuildSystemPrompt(prompt.SystemPromptInput{
		Analysis:      analysis,
		Tone:          req.Tone,
		Audience:      req.Audience,
		Industry:      req.Industry,
		StyleFragment: styleFragment,
	})
	userPrompt := prompt.BuildUserPrompt(prompt.UserPromptInput{
		Topic:             req.Topic,
		KeyPoints:         req.KeyPoints,
		CTAType:           req.CTAType,
		CustomCTA:         req.CustomCTA,
		Slots:             analysis.Slots,
		AdditionalContext: req.AdditionalContext,
	})

	content, ok := a.generateContent(r.Context(), systemPrompt, userPrompt, analysis.Slots)
	if !ok {
		writeError(w, http.StatusBadGateway, "the model returned unusable output, try regenerating")
		return
	}

	truncateOverflow(content, analysis.Slots)
	if v := prompt.Validate(content, analysis.Slots); !v.IsValid {
		// Remaining issues are missing or stub required slots; the build
		// surfaces those as warnings on the draft rather than failing.
		slog.Warn("generated content incomplete", "issues", len(v.Issues))
	}

	result := carousel.Build(tpl, analysis, content)
	score := carousel.ScoreQuality(analysis, content)
	metrics.ObserveQualityScore(score)

	draft := &models.Carousel{
		AccountID:  account.ID,
		TemplateID: tpl.ID,
		Topic:      req.Topic,
		Tone:       req.Tone,
		Status:     models.CarouselDraft,
		Slides:     result.Slides,
		Content:    content,
		Score:      score,
		Warnings:   result.Warnings,
	}
	created, err := a.carousels.Create(r.Context(), draft)
	if err != nil {
		slog.Error("persist carousel", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save draft")
		return
	}

	a.cachePreview(r.Context(), created, tpl, analysis)

	writeJSON(w, http.StatusCreated, generateResponse{
		Carousel:    created,
		FilledSlots: result.FilledSlots,
		TotalSlots:  result.TotalSlots,
		Score:       score,
		Warnings:    result.Warnings,
	})
}

// regenerateRequest is the body of POST /api/carousels/{id}/regenerate.
type regenerateRequest struct {
	SlotIDs      []string `json:"slot_ids"`
	Instructions string   `json:"instructions"`
}

// RegenerateSlots regenerates content for a subset of slots and merges it
// into the stored slides in place. Font sizes of merged slots are kept as
// they are so manual size tweaks survive a text regeneration.
func (a *API) RegenerateSlots(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid carousel id")
		return
	}

	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.SlotIDs) == 0 {
		writeError(w, http.StatusBadRequest, "slot_ids is required")
		return
	}

	draft, err := a.carousels.FindByID(r.Context(), account.ID, id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "carousel not found")
		return
	}
	if err != nil {
		slog.Error("load carousel", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load carousel")
		return
	}

	tpl, err := a.templates.FindByID(r.Context(), draft.TemplateID)
	if err != nil {
		slog.Error("load template for regenerate", "id", draft.TemplateID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load template")
		return
	}

	analysis := analyzer.Analyze(tpl)
	targets := slotsByID(analysis.Slots, req.SlotIDs)
	if len(targets) == 0 {
		writeError(w, http.StatusBadRequest, "no listed slot id exists in this template")
		return
	}

	styleFragment := a.styleFragment(r.Context(), account.ID)
	systemPrompt := prompt.BuildSystemPrompt(prompt.SystemPromptInput{
		Analysis:      analysis,
		Tone:          draft.Tone,
		StyleFragment: styleFragment,
	})
	userPrompt := prompt.BuildUserPrompt(prompt.UserPromptInput{
		Topic:             draft.Topic,
		Slots:             targets,
		CTAType:           models.CTANone,
		AdditionalContext: req.Instructions,
	})

	fresh, ok := a.generateContent(r.Context(), systemPrompt, userPrompt, targets)
	if !ok {
		writeError(w, http.StatusBadGateway, "the model returned unusable output, try regenerating")
		return
	}

	truncateOverflow(fresh, targets)

	if draft.Content == nil {
		draft.Content = map[string]string{}
	}
	for _, slot := range targets {
		if text, found := fresh[slot.ID]; found && text != "" {
			draft.Content[slot.ID] = text
		}
	}

	draft.Slides = carousel.MergeContent(tpl, draft.Slides, fresh, req.SlotIDs)
	draft.Score = carousel.ScoreQuality(analysis, draft.Content)
	metrics.ObserveQualityScore(draft.Score)

	if err := a.carousels.Update(r.Context(), draft); err != nil {
		slog.Error("update carousel", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save draft")
		return
	}

	if a.drafts != nil {
		a.drafts.Invalidate(r.Context(), draft.ID.String())
	}

	writeJSON(w, http.StatusOK, draft)
}

// GetCarousel returns a stored draft.
func (a *API) GetCarousel(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid carousel id")
		return
	}

	draft, err := a.carousels.FindByID(r.Context(), account.ID, id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "carousel not found")
		return
	}
	if err != nil {
		slog.Error("load carousel", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load carousel")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// ListCarousels returns the account's drafts, newest first.
func (a *API) ListCarousels(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())

	list, err := a.carousels.ListByAccount(r.Context(), account.ID)
	if err != nil {
		slog.Error("list carousels", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load carousels")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DeleteCarousel removes a draft and its cached preview.
func (a *API) DeleteCarousel(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid carousel id")
		return
	}

	err = a.carousels.Delete(r.Context(), account.ID, id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "carousel not found")
		return
	}
	if err != nil {
		slog.Error("delete carousel", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete carousel")
		return
	}

	if a.drafts != nil {
		a.drafts.Invalidate(r.Context(), id.String())
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewCarousel returns simplified per-slide preview boxes for a draft,
// served from the draft cache when possible.
func (a *API) PreviewCarousel(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid carousel id")
		return
	}

	draft, err := a.carousels.FindByID(r.Context(), account.ID, id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "carousel not found")
		return
	}
	if err != nil {
		slog.Error("load carousel", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load carousel")
		return
	}

	if a.drafts != nil {
		if payload, found := a.drafts.Get(r.Context(), draft.ID.String()); found {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	tpl, err := a.templates.FindByID(r.Context(), draft.TemplateID)
	if err != nil {
		slog.Error("load template for preview", "id", draft.TemplateID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load template")
		return
	}

	analysis := analyzer.Analyze(tpl)
	a.cachePreview(r.Context(), draft, tpl, analysis)
	writeJSON(w, http.StatusOK, carousel.PreviewData(tpl, analysis, draft.Content))
}

// generateContent calls the active provider and parses its response into a
// content map. A nil parse is the designed retry signal, so it retries the
// call exactly once before giving up.
func (a *API) generateContent(ctx context.Context, systemPrompt, userPrompt string, slots []models.Slot) (map[string]string, bool) {
	provider := a.aiRegistry.ActiveName()

	for attempt := 0; attempt < 2; attempt++ {
		start := time.Now()
		raw, err := a.aiRegistry.Generate(ctx, systemPrompt, userPrompt)
		elapsed := time.Since(start).Seconds()
		if err != nil {
			metrics.ObserveGeneration(provider, "error", elapsed)
			slog.Error("ai generate failed", "provider", provider, "attempt", attempt+1, "error", err)
			continue
		}

		content := prompt.ParseResponse(raw, slots)
		if content == nil {
			metrics.ObserveGeneration(provider, "parse_failed", elapsed)
			metrics.IncParseFailure(provider)
			slog.Warn("unparseable ai response", "provider", provider, "attempt", attempt+1)
			continue
		}

		metrics.ObserveGeneration(provider, "ok", elapsed)
		return content, true
	}
	return nil, false
}

// styleFragment computes prompt directives from the account's post history.
// Accounts with no own posts get no fragment rather than a generic one.
func (a *API) styleFragment(ctx context.Context, accountID uuid.UUID) string {
	own, err := a.posts.Contents(ctx, accountID, models.PostOwn)
	if err != nil {
		slog.Error("load own posts for style", "error", err)
		return ""
	}
	if len(own) == 0 {
		return ""
	}
	saved, err := a.posts.Contents(ctx, accountID, models.PostSaved)
	if err != nil {
		slog.Error("load saved posts for style", "error", err)
		saved = nil
	}
	return style.PromptFragment(style.Analyze(own, saved))
}

// cachePreview stores the draft's preview JSON under its id.
func (a *API) cachePreview(ctx context.Context, draft *models.Carousel, tpl *models.Template, analysis models.TemplateAnalysis) {
	if a.drafts == nil {
		return
	}
	preview := carousel.PreviewData(tpl, analysis, draft.Content)
	payload, err := json.Marshal(preview)
	if err != nil {
		slog.Error("marshal preview", "error", err)
		return
	}
	a.drafts.Set(ctx, draft.ID.String(), payload)
}

// truncateOverflow trims content that exceeds its slot's character budget
// down to a word boundary. Other validation issues (missing required slots)
// surface as build warnings instead of failing the request.
func truncateOverflow(content map[string]string, slots []models.Slot) {
	for _, slot := range slots {
		text, found := content[slot.ID]
		if !found {
			continue
		}
		if utf8.RuneCountInString(text) > slot.MaxLength {
			content[slot.ID] = prompt.TruncateToFit(text, slot.MaxLength)
		}
	}
}

// slotsByID filters slots down to the requested ids, preserving order.
func slotsByID(slots []models.Slot, ids []string) []models.Slot {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Slot
	for _, slot := range slots {
		if wanted[slot.ID] {
			out = append(out, slot)
		}
	}
	return out
}
