package store

import (
	"context"
	"errors"

	"meetsync/api-gateway/models"
)

// ErrNotFound is returned by the find methods when no row matches.
var ErrNotFound = errors.New("record not found")

// MeetingStore is the persistence abstraction over the three meeting
// collections (bot records, transcript segments, asset records) plus the
// read-only calendar event source. All records are keyed by the external
// meeting identity; upserts are field-level merges so concurrent events for
// the same meeting can race safely.
type MeetingStore interface {
	// UpsertBotRecord merges the given fields into the bot record for
	// externalID, creating the record if it does not exist.
	UpsertBotRecord(ctx context.Context, externalID string, fields map[string]interface{}) error

	// FindBotRecord returns the bot record for externalID, or ErrNotFound.
	FindBotRecord(ctx context.Context, externalID string) (*models.BotRecord, error)

	// InsertTranscriptSegment writes a segment. A segment with an already
	// stored dedup key merges onto the existing row instead of duplicating.
	InsertTranscriptSegment(ctx context.Context, seg models.TranscriptSegment) error

	// ListTranscriptSegments returns all segments for externalID ordered by
	// start timestamp, then insertion time for equal timestamps.
	ListTranscriptSegments(ctx context.Context, externalID string) ([]models.TranscriptSegment, error)

	// UpsertAssetRecord replaces the asset record for the record's external
	// identity with the given one.
	UpsertAssetRecord(ctx context.Context, rec models.AssetRecord) error

	// FindAssetRecord returns the asset record for externalID, or ErrNotFound.
	FindAssetRecord(ctx context.Context, externalID string) (*models.AssetRecord, error)

	// FindCalendarEvent returns the stored calendar event document, or
	// ErrNotFound.
	FindCalendarEvent(ctx context.Context, calendarID, eventID string) (models.CalendarEvent, error)
}
