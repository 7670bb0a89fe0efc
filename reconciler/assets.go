package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"meetsync/api-gateway/internal/recall"
	"meetsync/api-gateway/models"
	"meetsync/api-gateway/store"
)

// resolveRetryTTL is how long an unsuccessful resolution attempt suppresses
// further lazy attempts for the same meeting. A polling client hitting the
// recording endpoint every second triggers at most one provider call per
// window; a meeting whose assets appear late still converges on a later
// window.
const resolveRetryTTL = 30 * time.Second

// ResolveAssets fetches the bot detail from the provider and overwrites the
// asset record for externalID with whatever download URLs exist right now.
// It is idempotent and intentionally never reports failure: no resolvable
// bot id, missing provider credentials and provider errors all leave the
// assets unresolved for a future attempt.
//
// When at least one URL was found the bot record is also marked done with
// recordings, unifying the webhook and poll completion signals.
func (s *Service) ResolveAssets(ctx context.Context, externalID, botID string) {
	if s.cfg.RecallAPIKey == "" {
		s.log.WithField("external_id", externalID).Debug("Skipping asset resolution, provider not configured")
		return
	}

	if botID == "" {
		rec, err := s.store.FindBotRecord(ctx, externalID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			s.log.WithError(err).WithField("external_id", externalID).Warn("Failed to look up bot record for asset resolution")
		}
		if rec != nil && rec.BotID != nil {
			botID = *rec.BotID
		}
	}
	if botID == "" {
		// No bot id anywhere means nothing to resolve against. Not an
		// error; a future event may still supply one.
		return
	}

	bot, err := s.provider.GetBot(ctx, botID)
	if err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"external_id": externalID,
			"bot_id":      botID,
		}).Warn("Provider bot lookup failed, recording empty resolution")
		bot = nil
	}

	transcriptURL, videoURL, audioURL := extractAssetURLs(bot)
	ready := transcriptURL != nil || videoURL != nil || audioURL != nil

	rec := models.AssetRecord{
		ExternalID:               externalID,
		BotID:                    &botID,
		TranscriptDownloadURL:    transcriptURL,
		VideoMixedMP4DownloadURL: videoURL,
		AudioMixedMP3DownloadURL: audioURL,
		Ready:                    ready,
		ResolvedAt:               time.Now().UTC(),
	}
	if err := s.store.UpsertAssetRecord(ctx, rec); err != nil {
		s.log.WithError(err).WithField("external_id", externalID).Error("Failed to upsert asset record")
		return
	}

	if ready {
		s.upsertBotRecord(ctx, externalID, botID, map[string]interface{}{
			"status":         models.BotStatusDone,
			"has_recordings": true,
			"last_event_at":  time.Now().UTC(),
		})
	}
}

// ResolveAssetsIfStale is the lazy read-time path: it runs one resolution
// pass unless one was already attempted for this meeting within the retry
// window. cache.Add is atomic, so concurrent reads race to a single attempt.
func (s *Service) ResolveAssetsIfStale(ctx context.Context, externalID string) {
	if err := s.attempts.Add(externalID, time.Now(), cache.DefaultExpiration); err != nil {
		return
	}
	s.ResolveAssets(ctx, externalID, "")
}

// extractAssetURLs pulls the download URLs out of a bot detail response,
// tolerating the absence of any subset. The transcript link sits one level
// deeper than the audio and video links.
func extractAssetURLs(bot *recall.Bot) (transcript, video, audio *string) {
	if bot == nil || bot.MediaShortcuts == nil {
		return nil, nil, nil
	}
	ms := bot.MediaShortcuts
	if ms.Transcript != nil && ms.Transcript.Data != nil && ms.Transcript.Data.DownloadURL != "" {
		transcript = &ms.Transcript.Data.DownloadURL
	}
	if ms.VideoMixedMP4 != nil && ms.VideoMixedMP4.DownloadURL != "" {
		video = &ms.VideoMixedMP4.DownloadURL
	}
	if ms.AudioMixedMP3 != nil && ms.AudioMixedMP3.DownloadURL != "" {
		audio = &ms.AudioMixedMP3.DownloadURL
	}
	return transcript, video, audio
}
