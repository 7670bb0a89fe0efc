package models

import (
	"encoding/json"
	"time"
)

// TranscriptSegment is one finalized chunk of real-time transcript text.
// DedupKey is derived deterministically from the segment content so that a
// redelivered webhook merges onto the same row instead of appending a
// duplicate. Ordered reads sort by StartedAt, then CreatedAt for equal
// timestamps.
type TranscriptSegment struct {
	DedupKey   string          `json:"dedup_key"`
	ExternalID string          `json:"external_id"`
	Speaker    string          `json:"speaker"`
	Text       string          `json:"text"`
	StartedAt  string          `json:"started_at"`
	Words      json.RawMessage `json:"words,omitempty"` // raw word-level payload from the provider
	CreatedAt  time.Time       `json:"created_at"`
}
