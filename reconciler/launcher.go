package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetsync/api-gateway/internal/recall"
	"meetsync/api-gateway/models"
	"meetsync/api-gateway/store"
)

// Launch failures are surfaced to the caller, unlike webhook reconciliation
// failures: this path is user-triggered and synchronous.
var (
	ErrEventNotFound         = errors.New("calendar event not found")
	ErrNoMeetingURL          = errors.New("no meeting URL on this event")
	ErrProviderNotConfigured = errors.New("provider credentials not configured")
)

// LaunchOptions are the per-request overrides for a bot launch. Nil fields
// fall back to the configured defaults (realtime on, captions off).
type LaunchOptions struct {
	Realtime *bool `json:"realtime,omitempty"`
	Captions *bool `json:"captions,omitempty"`
}

// LaunchResult identifies the launched bot session.
type LaunchResult struct {
	ExternalID string `json:"external_id"`
	BotID      string `json:"bot_id"`
}

// LaunchBot creates a provider bot for a stored calendar event and records
// the initial bot record. The external meeting identity is embedded in the
// creation request twice (top-level field and metadata) so every later
// webhook can recover it regardless of its envelope.
func (s *Service) LaunchBot(ctx context.Context, calendarID, eventID string, opts LaunchOptions) (*LaunchResult, error) {
	if s.cfg.RecallAPIKey == "" || s.cfg.CallbackBaseURL == "" {
		return nil, ErrProviderNotConfigured
	}

	ev, err := s.store.FindCalendarEvent(ctx, calendarID, eventID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading calendar event: %w", err)
	}

	meetingURL := MeetingURLFromCalendarEvent(ev)
	if meetingURL == "" {
		return nil, ErrNoMeetingURL
	}

	externalID := ExternalIDFromCalendarEvent(ev)
	if externalID == "" {
		return nil, fmt.Errorf("calendar event %s/%s has no usable identity", calendarID, eventID)
	}

	realtime := s.cfg.RealtimeEvents
	if opts.Realtime != nil {
		realtime = *opts.Realtime
	}
	captions := s.cfg.UseCaptions
	if opts.Captions != nil {
		captions = *opts.Captions
	}

	transcriptProvider := map[string]struct{}{"recallai_streaming": {}}
	if captions {
		transcriptProvider = map[string]struct{}{"meeting_captions": {}}
	}

	req := recall.CreateBotRequest{
		MeetingURL: meetingURL,
		ExternalID: externalID,
		Metadata: map[string]string{
			"external_id": externalID,
			"calendar_id": calendarID,
			"event_id":    eventID,
		},
		WebhookURL: s.cfg.WebhookURL(),
		RecordingConfig: recall.RecordingConfig{
			Transcript: recall.TranscriptConfig{Provider: transcriptProvider},
		},
	}
	if realtime {
		req.RecordingConfig.RealTimeEndpoints = []recall.RealtimeEndpoint{{
			Type: "webhook",
			URL:  s.cfg.WebhookURL(),
			Events: []string{
				models.EventTranscriptData,
				models.EventTranscriptPartialData,
				models.EventBotStatusChange,
			},
		}}
	}

	bot, err := s.provider.CreateBot(ctx, req)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"bot_id":      bot.ID,
		"meeting_url": meetingURL,
		"calendar_id": calendarID,
		"event_id":    eventID,
		"status":      models.BotStatusJoining,
		"created_at":  time.Now().UTC(),
	}
	if err := s.store.UpsertBotRecord(ctx, externalID, fields); err != nil {
		return nil, fmt.Errorf("recording bot launch: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"external_id": externalID,
		"bot_id":      bot.ID,
	}).Info("Bot launched")
	return &LaunchResult{ExternalID: externalID, BotID: bot.ID}, nil
}
