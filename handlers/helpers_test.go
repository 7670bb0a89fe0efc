package handlers

import (
	"context"
	"io"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"meetsync/api-gateway/models"
	"meetsync/api-gateway/reconciler"
	"meetsync/api-gateway/store"
)

// fakeStore serves reads for the projection handlers.
type fakeStore struct {
	bots     map[string]*models.BotRecord
	segments []models.TranscriptSegment
	assets   map[string]models.AssetRecord
	events   map[string]models.CalendarEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bots:   make(map[string]*models.BotRecord),
		assets: make(map[string]models.AssetRecord),
		events: make(map[string]models.CalendarEvent),
	}
}

func (f *fakeStore) UpsertBotRecord(context.Context, string, map[string]interface{}) error {
	return nil
}

func (f *fakeStore) FindBotRecord(_ context.Context, externalID string) (*models.BotRecord, error) {
	rec, ok := f.bots[externalID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) InsertTranscriptSegment(_ context.Context, seg models.TranscriptSegment) error {
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
	f.assets[rec.ExternalID] = rec
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

// fakeReconciler records calls and plays back scripted results.
type fakeReconciler struct {
	handled      []*models.WebhookEvent
	resolved     []string
	onResolve    func(externalID string)
	launchResult *reconciler.LaunchResult
	launchErr    error
}

func (f *fakeReconciler) HandleEvent(_ context.Context, ev *models.WebhookEvent) {
	f.handled = append(f.handled, ev)
}

func (f *fakeReconciler) ResolveAssetsIfStale(_ context.Context, externalID string) {
	f.resolved = append(f.resolved, externalID)
	if f.onResolve != nil {
		f.onResolve(externalID)
	}
}

func (f *fakeReconciler) LaunchBot(context.Context, string, string, reconciler.LaunchOptions) (*reconciler.LaunchResult, error) {
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	return f.launchResult, nil
}

func newTestApp(rec ReconcilerService, st store.MeetingStore) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewApplicationHandler(rec, st, logger)

	app := fiber.New()
	meetings := app.Group("/api/v1/meetings")
	meetings.Post("/webhook", h.IngestWebhook)
	meetings.Post("/bot/start", h.StartBot)
	meetings.Get("/:externalId", h.GetMeeting)
	meetings.Get("/:externalId/transcript", h.GetTranscript)
	meetings.Get("/:externalId/recording", h.GetRecording)
	return app
}

func strPtr(s string) *string { return &s }
