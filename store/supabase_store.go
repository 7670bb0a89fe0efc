package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"meetsync/api-gateway/models"
)

// Table names in Supabase.
const (
	botRecordsTable         = "bot_records"
	transcriptSegmentsTable = "transcript_segments"
	assetRecordsTable       = "asset_records"
	calendarEventsTable     = "calendar_events"
)

var ascending = &postgrest.OrderOpts{Ascending: true}

// SupabaseStore implements MeetingStore on top of Supabase/PostgREST.
// Upserts use on_conflict with merge-duplicates resolution, which updates
// only the supplied columns of an existing row. That gives the field-level
// upsert semantics the reconciler relies on without any transactions.
type SupabaseStore struct {
	db  *supa.Client
	log *logrus.Logger
}

// NewSupabaseStore connects to the Supabase project at url using key.
func NewSupabaseStore(url, key string, log *logrus.Logger) (*SupabaseStore, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing supabase client: %w", err)
	}
	return &SupabaseStore{db: client, log: log}, nil
}

// UpsertBotRecord implements MeetingStore.UpsertBotRecord.
func (s *SupabaseStore) UpsertBotRecord(ctx context.Context, externalID string, fields map[string]interface{}) error {
	row := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row["external_id"] = externalID

	_, _, err := s.db.From(botRecordsTable).
		Upsert(row, "external_id", "minimal", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("upserting bot record %s: %w", externalID, err)
	}
	return nil
}

// FindBotRecord implements MeetingStore.FindBotRecord.
func (s *SupabaseStore) FindBotRecord(ctx context.Context, externalID string) (*models.BotRecord, error) {
	body, _, err := s.db.From(botRecordsTable).
		Select("*", "", false).
		Eq("external_id", externalID).
		Limit(1, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching bot record %s: %w", externalID, err)
	}

	var records []models.BotRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding bot record %s: %w", externalID, err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// InsertTranscriptSegment implements MeetingStore.InsertTranscriptSegment.
// The upsert on dedup_key makes redelivery of the same chunk merge onto the
// identical row rather than appending a duplicate segment.
func (s *SupabaseStore) InsertTranscriptSegment(ctx context.Context, seg models.TranscriptSegment) error {
	_, _, err := s.db.From(transcriptSegmentsTable).
		Upsert(seg, "dedup_key", "minimal", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("inserting transcript segment for %s: %w", seg.ExternalID, err)
	}
	return nil
}

// ListTranscriptSegments implements MeetingStore.ListTranscriptSegments.
func (s *SupabaseStore) ListTranscriptSegments(ctx context.Context, externalID string) ([]models.TranscriptSegment, error) {
	body, _, err := s.db.From(transcriptSegmentsTable).
		Select("*", "", false).
		Eq("external_id", externalID).
		Order("started_at", ascending).
		Order("created_at", ascending).
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transcript segments for %s: %w", externalID, err)
	}

	var segments []models.TranscriptSegment
	if err := json.Unmarshal(body, &segments); err != nil {
		return nil, fmt.Errorf("decoding transcript segments for %s: %w", externalID, err)
	}
	return segments, nil
}

// UpsertAssetRecord implements MeetingStore.UpsertAssetRecord. The record
// serializes every column, so this is a whole-row replacement.
func (s *SupabaseStore) UpsertAssetRecord(ctx context.Context, rec models.AssetRecord) error {
	_, _, err := s.db.From(assetRecordsTable).
		Upsert(rec, "external_id", "minimal", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("upserting asset record %s: %w", rec.ExternalID, err)
	}
	return nil
}

// FindAssetRecord implements MeetingStore.FindAssetRecord.
func (s *SupabaseStore) FindAssetRecord(ctx context.Context, externalID string) (*models.AssetRecord, error) {
	body, _, err := s.db.From(assetRecordsTable).
		Select("*", "", false).
		Eq("external_id", externalID).
		Limit(1, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching asset record %s: %w", externalID, err)
	}

	var records []models.AssetRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding asset record %s: %w", externalID, err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// FindCalendarEvent implements MeetingStore.FindCalendarEvent.
func (s *SupabaseStore) FindCalendarEvent(ctx context.Context, calendarID, eventID string) (models.CalendarEvent, error) {
	body, _, err := s.db.From(calendarEventsTable).
		Select("*", "", false).
		Eq("calendar_id", calendarID).
		Eq("event_id", eventID).
		Limit(1, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar event %s/%s: %w", calendarID, eventID, err)
	}

	// The event document itself lives in the payload column, preserved in
	// whatever casing convention the calendar sync wrote it with.
	var rows []struct {
		CalendarID string               `json:"calendar_id"`
		EventID    string               `json:"event_id"`
		Payload    models.CalendarEvent `json:"payload"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding calendar event %s/%s: %w", calendarID, eventID, err)
	}
	if len(rows) == 0 || rows[0].Payload == nil {
		return nil, ErrNotFound
	}
	return rows[0].Payload, nil
}
