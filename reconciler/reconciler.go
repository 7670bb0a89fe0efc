// Package reconciler is the core of the gateway: it normalizes provider
// webhook events into a canonical identity and event kind, applies
// idempotent upserts across the bot, transcript and asset records, and
// resolves final media assets from the provider when a terminal signal
// arrives without them.
package reconciler

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"meetsync/api-gateway/config"
	"meetsync/api-gateway/internal/recall"
	"meetsync/api-gateway/models"
	"meetsync/api-gateway/store"
)

// BotAPI is the slice of the provider client the reconciler needs. Kept as
// an interface so tests can fake the provider.
type BotAPI interface {
	CreateBot(ctx context.Context, req recall.CreateBotRequest) (*recall.Bot, error)
	GetBot(ctx context.Context, botID string) (*recall.Bot, error)
}

// Service is the event reconciliation engine. It holds no per-meeting state
// of its own; all coordination happens through the store's per-record upsert
// atomicity, so concurrent events for the same meeting are safe.
type Service struct {
	store    store.MeetingStore
	provider BotAPI
	cfg      *config.Config
	log      *logrus.Logger
	attempts *cache.Cache
}

// NewService wires the reconciler to its store, provider client and config.
func NewService(st store.MeetingStore, provider BotAPI, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		store:    st,
		provider: provider,
		cfg:      cfg,
		log:      log,
		attempts: cache.New(resolveRetryTTL, 2*resolveRetryTTL),
	}
}

// HandleEvent classifies one webhook event and applies the matching store
// mutations. It never returns an error: by the time this runs the webhook
// has been accepted, and surfacing a failure would only trigger provider
// redelivery storms. Downstream failures are logged and swallowed; the
// provider's own redelivery is the recovery path.
func (s *Service) HandleEvent(ctx context.Context, ev *models.WebhookEvent) {
	externalID := ExternalIDFromWebhook(ev)
	if externalID == "" {
		s.log.WithField("event", ev.Event).Debug("Dropping webhook event without external id")
		return
	}
	botID := BotIDFromWebhook(ev)

	switch ev.Event {
	case models.EventBotStatusChange:
		status := models.BotStatusUnknown
		if ev.Data != nil && ev.Data.Status != "" {
			status = ev.Data.Status
		}
		fields := map[string]interface{}{
			"status":        status,
			"last_event_at": time.Now().UTC(),
		}
		s.upsertBotRecord(ctx, externalID, botID, fields)
		if status == models.BotStatusDone {
			s.ResolveAssets(ctx, externalID, botID)
		}

	case models.EventTranscriptData:
		seg := buildSegment(externalID, ev)
		if err := s.store.InsertTranscriptSegment(ctx, seg); err != nil {
			s.log.WithError(err).WithField("external_id", externalID).Error("Failed to store transcript segment")
		}
		s.upsertBotRecord(ctx, externalID, botID, map[string]interface{}{
			"has_transcript": true,
			"last_event_at":  time.Now().UTC(),
		})

	case models.EventTranscriptDone, models.EventRecordingDone:
		s.ResolveAssets(ctx, externalID, botID)

	default:
		// Unrecognized kinds (including transcript.partial_data, whose text
		// is interim and superseded by transcript.data) only refresh the
		// bot record's last-event time.
		s.upsertBotRecord(ctx, externalID, botID, map[string]interface{}{
			"last_event_at": time.Now().UTC(),
		})
	}
}

// upsertBotRecord merges fields into the bot record, attaching the bot id
// when the event carried one, and logs instead of failing on store errors.
func (s *Service) upsertBotRecord(ctx context.Context, externalID, botID string, fields map[string]interface{}) {
	if botID != "" {
		fields["bot_id"] = botID
	}
	if err := s.store.UpsertBotRecord(ctx, externalID, fields); err != nil {
		s.log.WithError(err).WithField("external_id", externalID).Error("Failed to upsert bot record")
	}
}

// buildSegment normalizes a real-time transcript chunk into a segment row.
// The start time falls back from the first word's absolute timestamp to the
// batch-level timestamp to the current time; the speaker falls back from the
// participant name to the participant id to "Unknown". An empty word list is
// valid and yields an empty-text segment.
func buildSegment(externalID string, ev *models.WebhookEvent) models.TranscriptSegment {
	var rd *models.RealtimeData
	if ev.Data != nil {
		rd = ev.Data.Data
	}

	var words []models.TranscriptWord
	if rd != nil {
		words = rd.Words
	}
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))

	startedAt := ""
	if len(words) > 0 && words[0].StartTimestamp != nil {
		startedAt = words[0].StartTimestamp.Absolute
	}
	if startedAt == "" && rd != nil && rd.StartTimestamp != nil {
		startedAt = rd.StartTimestamp.Absolute
	}
	if startedAt == "" {
		startedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	speaker := "Unknown"
	if rd != nil {
		if rd.Participant != nil && rd.Participant.Name != "" {
			speaker = rd.Participant.Name
		} else if id := stringify(rd.ParticipantID); id != "" {
			speaker = id
		}
	}

	rawWords, _ := json.Marshal(words)
	return models.TranscriptSegment{
		DedupKey:   segmentDedupKey(externalID, startedAt, speaker, text),
		ExternalID: externalID,
		Speaker:    speaker,
		Text:       text,
		StartedAt:  startedAt,
		Words:      rawWords,
		CreatedAt:  time.Now().UTC(),
	}
}

// segmentDedupKey is a content-addressed key: the same chunk redelivered by
// the provider maps to the same key, turning the append into a no-op merge.
func segmentDedupKey(externalID, startedAt, speaker, text string) string {
	content := externalID + "|" + startedAt + "|" + speaker + "|" + text
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(content)).String()
}
