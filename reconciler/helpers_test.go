package reconciler

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"meetsync/api-gateway/config"
	"meetsync/api-gateway/internal/recall"
	"meetsync/api-gateway/models"
	"meetsync/api-gateway/store"
)

// fakeStore is an in-memory MeetingStore with the same merge-upsert and
// ordering semantics as the Supabase implementation.
type fakeStore struct {
	bots     map[string]*models.BotRecord
	segments []models.TranscriptSegment
	assets   map[string]models.AssetRecord
	events   map[string]models.CalendarEvent

	botUpserts   int
	assetUpserts int
	failWrites   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bots:   make(map[string]*models.BotRecord),
		assets: make(map[string]models.AssetRecord),
		events: make(map[string]models.CalendarEvent),
	}
}

var errWriteFailed = errors.New("write failed")

func (f *fakeStore) UpsertBotRecord(_ context.Context, externalID string, fields map[string]interface{}) error {
	if f.failWrites {
		return errWriteFailed
	}
	rec, ok := f.bots[externalID]
	if !ok {
		rec = &models.BotRecord{ExternalID: externalID, Status: models.BotStatusUnknown}
		f.bots[externalID] = rec
	}
	for k, v := range fields {
		switch k {
		case "status":
			rec.Status = v.(string)
		case "bot_id":
			s := v.(string)
			rec.BotID = &s
		case "meeting_url":
			s := v.(string)
			rec.MeetingURL = &s
		case "calendar_id":
			s := v.(string)
			rec.CalendarID = &s
		case "event_id":
			s := v.(string)
			rec.EventID = &s
		case "has_transcript":
			rec.HasTranscript = v.(bool)
		case "has_recordings":
			rec.HasRecordings = v.(bool)
		case "created_at":
			t := v.(time.Time)
			rec.CreatedAt = &t
		case "last_event_at":
			t := v.(time.Time)
			rec.LastEventAt = &t
		}
	}
	f.botUpserts++
	return nil
}

func (f *fakeStore) FindBotRecord(_ context.Context, externalID string) (*models.BotRecord, error) {
	rec, ok := f.bots[externalID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) InsertTranscriptSegment(_ context.Context, seg models.TranscriptSegment) error {
	if f.failWrites {
		return errWriteFailed
	}
	for i := range f.segments {
		if f.segments[i].DedupKey == seg.DedupKey {
			f.segments[i] = seg
			return nil
		}
	}
	f.segments = append(f.segments, seg)
	return nil
}

func (f *fakeStore) ListTranscriptSegments(_ context.Context, externalID string) ([]models.TranscriptSegment, error) {
	var out []models.TranscriptSegment
	for _, seg := range f.segments {
		if seg.ExternalID == externalID {
			out = append(out, seg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartedAt != out[j].StartedAt {
			return out[i].StartedAt < out[j].StartedAt
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) UpsertAssetRecord(_ context.Context, rec models.AssetRecord) error {
	if f.failWrites {
		return errWriteFailed
	}
	f.assets[rec.ExternalID] = rec
	f.assetUpserts++
	return nil
}

func (f *fakeStore) FindAssetRecord(_ context.Context, externalID string) (*models.AssetRecord, error) {
	rec, ok := f.assets[externalID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeStore) FindCalendarEvent(_ context.Context, calendarID, eventID string) (models.CalendarEvent, error) {
	ev, ok := f.events[calendarID+"|"+eventID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return ev, nil
}

// fakeProvider is a scripted BotAPI.
type fakeProvider struct {
	bots        map[string]*recall.Bot
	getErr      error
	getCalls    int
	createErr   error
	createCalls int
	lastCreate  *recall.CreateBotRequest
	createdBot  *recall.Bot
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{bots: make(map[string]*recall.Bot)}
}

func (f *fakeProvider) CreateBot(_ context.Context, req recall.CreateBotRequest) (*recall.Bot, error) {
	f.createCalls++
	f.lastCreate = &req
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createdBot != nil {
		return f.createdBot, nil
	}
	return &recall.Bot{ID: "bot-1"}, nil
}

func (f *fakeProvider) GetBot(_ context.Context, botID string) (*recall.Bot, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	bot, ok := f.bots[botID]
	if !ok {
		return nil, &recall.APIError{StatusCode: 404, Detail: "not found"}
	}
	return bot, nil
}

func newTestService(fs *fakeStore, fp *fakeProvider) *Service {
	cfg := &config.Config{
		SupabaseURL:     "https://project.supabase.co",
		SupabaseKey:     "test-key",
		RecallAPIKey:    "recall-key",
		RecallRegion:    "us-west-2",
		CallbackBaseURL: "https://gateway.example.com",
		RealtimeEvents:  true,
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(fs, fp, cfg, logger)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
