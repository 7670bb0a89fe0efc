package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"meetsync/api-gateway/models"
	"meetsync/api-gateway/reconciler"
	"meetsync/api-gateway/store"
)

// ReconcilerService defines the operations handlers expect from the
// reconciliation core. This allows for decoupling and easier testing.
type ReconcilerService interface {
	HandleEvent(ctx context.Context, ev *models.WebhookEvent)
	ResolveAssetsIfStale(ctx context.Context, externalID string)
	LaunchBot(ctx context.Context, calendarID, eventID string, opts reconciler.LaunchOptions) (*reconciler.LaunchResult, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Reconciler ReconcilerService
	Store      store.MeetingStore
	Logger     *logrus.Logger
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(rec ReconcilerService, st store.MeetingStore, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Reconciler: rec,
		Store:      st,
		Logger:     logger,
	}
}
