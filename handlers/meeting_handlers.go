package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"meetsync/api-gateway/models"
	"meetsync/api-gateway/store"
	"meetsync/api-gateway/utils"
)

// SegmentView is the client-facing shape of one transcript segment.
type SegmentView struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	StartedAt string `json:"started_at"`
}

// GetMeeting assembles the full meeting view: bot status, ordered
// transcript, resolved assets and a naive summary. Missing pieces come back
// as null/empty fields, never as errors; a meeting nobody has heard of yet
// is simply an empty view.
func (h *ApplicationHandler) GetMeeting(c *fiber.Ctx) error {
	externalID := c.Params("externalId")
	if externalID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "externalId is required")
	}
	ctx := c.Context()

	bot, err := h.Store.FindBotRecord(ctx, externalID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Logger.WithError(err).WithField("external_id", externalID).Error("Failed to load bot record")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load meeting")
	}

	segments, err := h.Store.ListTranscriptSegments(ctx, externalID)
	if err != nil {
		h.Logger.WithError(err).WithField("external_id", externalID).Error("Failed to load transcript segments")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load meeting")
	}

	assets, err := h.Store.FindAssetRecord(ctx, externalID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Logger.WithError(err).WithField("external_id", externalID).Error("Failed to load asset record")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load meeting")
	}

	views := make([]SegmentView, 0, len(segments))
	labeled := make([]string, 0, len(segments))
	for _, seg := range segments {
		views = append(views, SegmentView{Speaker: seg.Speaker, Text: seg.Text, StartedAt: seg.StartedAt})
		labeled = append(labeled, fmt.Sprintf("[%s] %s", seg.Speaker, seg.Text))
	}
	transcriptText := strings.Join(labeled, " ")

	status := models.BotStatusUnknown
	var startedAt, lastEventAt, meetingURL interface{}
	hasTranscript := len(segments) > 0
	if bot != nil {
		status = bot.Status
		startedAt = bot.CreatedAt
		lastEventAt = bot.LastEventAt
		meetingURL = bot.MeetingURL
		hasTranscript = hasTranscript || bot.HasTranscript
	}

	summaryText, bullets := buildSummary(transcriptText)

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"external_id":    externalID,
		"status":         status,
		"started_at":     startedAt,
		"last_event_at":  lastEventAt,
		"meeting_url":    meetingURL,
		"has_transcript": hasTranscript,
		"has_recordings": assets != nil && assets.Ready,
		"transcript": fiber.Map{
			"segments": views,
			"text":     transcriptText,
		},
		"recordings": assets,
		"summary": fiber.Map{
			"text":    summaryText,
			"bullets": bullets,
		},
	})
}

// GetTranscript returns the ordered transcript segments and the joined
// plain text for a meeting.
func (h *ApplicationHandler) GetTranscript(c *fiber.Ctx) error {
	externalID := c.Params("externalId")
	if externalID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "externalId is required")
	}

	segments, err := h.Store.ListTranscriptSegments(c.Context(), externalID)
	if err != nil {
		h.Logger.WithError(err).WithField("external_id", externalID).Error("Failed to load transcript segments")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load transcript")
	}

	views := make([]SegmentView, 0, len(segments))
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		views = append(views, SegmentView{Speaker: seg.Speaker, Text: seg.Text, StartedAt: seg.StartedAt})
		texts = append(texts, seg.Text)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"external_id": externalID,
		"segments":    views,
		"text":        strings.TrimSpace(strings.Join(texts, " ")),
	})
}

// GetRecording returns the resolved media assets for a meeting. When the
// stored record is not ready (or absent), one lazy resolution pass runs
// first, so a client polling this endpoint converges to ready even if the
// provider's completion webhook was dropped.
func (h *ApplicationHandler) GetRecording(c *fiber.Ctx) error {
	externalID := c.Params("externalId")
	if externalID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "externalId is required")
	}
	ctx := c.Context()

	rec, err := h.Store.FindAssetRecord(ctx, externalID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Logger.WithError(err).WithField("external_id", externalID).Error("Failed to load asset record")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load recording")
	}

	if rec == nil || !rec.Ready {
		h.Reconciler.ResolveAssetsIfStale(ctx, externalID)

		rec, err = h.Store.FindAssetRecord(ctx, externalID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.Logger.WithError(err).WithField("external_id", externalID).Error("Failed to reload asset record")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not load recording")
		}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"external_id": externalID,
		"ready":       rec != nil && rec.Ready,
		"assets":      rec,
	})
}
