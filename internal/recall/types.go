package recall

// CreateBotRequest is the POST /bot body. The external meeting identity is
// carried both as a top-level field and inside Metadata so that every later
// webhook, whichever envelope it uses, can recover it.
type CreateBotRequest struct {
	MeetingURL      string            `json:"meeting_url"`
	ExternalID      string            `json:"external_id"`
	Metadata        map[string]string `json:"metadata"`
	WebhookURL      string            `json:"webhook_url"`
	RecordingConfig RecordingConfig   `json:"recording_config"`
}

// RecordingConfig selects what the bot captures and where real-time events
// are delivered.
type RecordingConfig struct {
	Transcript        TranscriptConfig   `json:"transcript"`
	VideoMixedMP4     struct{}           `json:"video_mixed_mp4"`
	AudioMixedMP3     struct{}           `json:"audio_mixed_mp3"`
	RealTimeEndpoints []RealtimeEndpoint `json:"real_time_endpoints,omitempty"`
}

// TranscriptConfig names the transcript provider; the value is an empty
// provider-specific options object, e.g. {"recallai_streaming": {}}.
type TranscriptConfig struct {
	Provider map[string]struct{} `json:"provider"`
}

// RealtimeEndpoint subscribes a webhook URL to real-time events.
type RealtimeEndpoint struct {
	Type   string   `json:"type"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// Bot is the subset of the provider's bot detail the gateway reads.
type Bot struct {
	ID             string          `json:"id"`
	MediaShortcuts *MediaShortcuts `json:"media_shortcuts,omitempty"`
}

// MediaShortcuts exposes the final download links once artifacts exist.
// Any subset may be absent.
type MediaShortcuts struct {
	Transcript    *TranscriptShortcut `json:"transcript,omitempty"`
	VideoMixedMP4 *MediaShortcut      `json:"video_mixed_mp4,omitempty"`
	AudioMixedMP3 *MediaShortcut      `json:"audio_mixed_mp3,omitempty"`
}

// TranscriptShortcut nests its download URL one level deeper than the audio
// and video shortcuts do.
type TranscriptShortcut struct {
	Data *MediaShortcut `json:"data,omitempty"`
}

// MediaShortcut is a single downloadable artifact.
type MediaShortcut struct {
	DownloadURL string `json:"download_url,omitempty"`
}
