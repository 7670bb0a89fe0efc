package models

import "time"

// AssetRecord holds the resolved media download URLs for one meeting.
// Re-resolution overwrites the whole record, so the URL fields serialize
// explicit nulls rather than being omitted; a stale URL must not survive a
// refresh that no longer returns it.
//
// ResolvedAt is always stamped, even when no URLs were found, so callers can
// tell "never attempted" apart from "attempted, found nothing".
type AssetRecord struct {
	ExternalID               string    `json:"external_id"`
	BotID                    *string   `json:"bot_id"`
	TranscriptDownloadURL    *string   `json:"transcript_download_url"`
	VideoMixedMP4DownloadURL *string   `json:"video_mixed_mp4_download_url"`
	AudioMixedMP3DownloadURL *string   `json:"audio_mixed_mp3_download_url"`
	Ready                    bool      `json:"ready"`
	ResolvedAt               time.Time `json:"resolved_at"`
}
