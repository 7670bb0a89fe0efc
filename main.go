package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"meetsync/api-gateway/config"
	"meetsync/api-gateway/handlers"
	"meetsync/api-gateway/internal/recall"
	"meetsync/api-gateway/middleware"
	"meetsync/api-gateway/reconciler"
	"meetsync/api-gateway/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	meetingStore, err := store.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize meeting store: %v", err)
	}

	provider := recall.NewClient(cfg.RecallAPIKey, cfg.RecallRegion, logger)
	svc := reconciler.NewService(meetingStore, provider, cfg, logger)
	h := handlers.NewApplicationHandler(svc, meetingStore, logger)

	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Meeting gateway is healthy",
		})
	})

	// API v1 routes
	apiV1 := app.Group("/api/v1")
	meetings := apiV1.Group("/meetings")

	meetings.Post("/webhook", h.IngestWebhook)
	meetings.Post("/bot/start", h.StartBot)
	meetings.Get("/:externalId", h.GetMeeting)
	meetings.Get("/:externalId/transcript", h.GetTranscript)
	meetings.Get("/:externalId/recording", h.GetRecording)

	logger.Infof("Starting meeting gateway on port %s...", cfg.Port)
	logger.Fatal(app.Listen(":" + cfg.Port))
}
