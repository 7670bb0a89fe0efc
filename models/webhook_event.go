package models

// Webhook event kinds the reconciler understands. Anything else is treated
// as a keep-alive for the bot record.
const (
	EventBotStatusChange       = "bot.status_change"
	EventTranscriptData        = "transcript.data"
	EventTranscriptPartialData = "transcript.partial_data"
	EventTranscriptDone        = "transcript.done"
	EventRecordingDone         = "recording.done"
)

// WebhookEvent is the provider's webhook payload. Only the subset relevant
// to reconciliation is modeled; unknown fields are ignored on decode.
type WebhookEvent struct {
	Event      string       `json:"event"`
	ExternalID string       `json:"external_id,omitempty"`
	BotID      string       `json:"bot_id,omitempty"`
	Data       *WebhookData `json:"data,omitempty"`
}

// WebhookData is the event-specific envelope nested under "data".
type WebhookData struct {
	Status     string            `json:"status,omitempty"`
	ExternalID string            `json:"external_id,omitempty"`
	BotID      string            `json:"bot_id,omitempty"`
	Bot        *WebhookBot       `json:"bot,omitempty"`
	Data       *RealtimeData     `json:"data,omitempty"`
	Recording  *WebhookRecording `json:"recording,omitempty"`
}

// WebhookBot identifies the provider bot that emitted the event, together
// with the metadata that was attached at launch time.
type WebhookBot struct {
	ID       string        `json:"id,omitempty"`
	Metadata EventMetadata `json:"metadata,omitempty"`
}

// WebhookRecording carries recording-scoped metadata.
type WebhookRecording struct {
	Metadata EventMetadata `json:"metadata,omitempty"`
}

// EventMetadata mirrors the metadata embedded in the bot-creation request so
// later webhooks can recover the external meeting identity.
type EventMetadata struct {
	ExternalID string `json:"external_id,omitempty"`
}

// RealtimeData is the payload of a real-time transcript event.
type RealtimeData struct {
	Words          []TranscriptWord `json:"words,omitempty"`
	StartTimestamp *WordTimestamp   `json:"start_timestamp,omitempty"`
	Participant    *Participant     `json:"participant,omitempty"`
	// ParticipantID arrives as either a string or a number depending on the
	// provider's transcript backend.
	ParticipantID any `json:"participant_id,omitempty"`
}

// TranscriptWord is a single word with its absolute timestamp.
type TranscriptWord struct {
	Text           string         `json:"text"`
	StartTimestamp *WordTimestamp `json:"start_timestamp,omitempty"`
}

// WordTimestamp wraps the provider's absolute timestamp (RFC 3339).
type WordTimestamp struct {
	Absolute string `json:"absolute,omitempty"`
}

// Participant describes the speaker of a transcript chunk.
type Participant struct {
	Name string `json:"name,omitempty"`
}
