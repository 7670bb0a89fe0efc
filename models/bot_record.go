package models

import "time"

// Well-known bot lifecycle statuses. The provider may send other values;
// those are stored as-is and only "done" has special meaning.
const (
	BotStatusJoining = "joining"
	BotStatusInCall  = "in_call"
	BotStatusDone    = "done"
	BotStatusUnknown = "unknown"
)

// BotRecord tracks one provider bot session per external meeting identity.
// There is at most one row per external_id; every webhook event for the
// meeting touches this record.
type BotRecord struct {
	ExternalID    string     `json:"external_id"`
	BotID         *string    `json:"bot_id,omitempty"`
	Status        string     `json:"status"`
	MeetingURL    *string    `json:"meeting_url,omitempty"`
	CalendarID    *string    `json:"calendar_id,omitempty"`
	EventID       *string    `json:"event_id,omitempty"`
	HasTranscript bool       `json:"has_transcript"`
	HasRecordings bool       `json:"has_recordings"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	LastEventAt   *time.Time `json:"last_event_at,omitempty"`
}
