package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"meetsync/api-gateway/models"
)

// IngestWebhook accepts a provider webhook delivery. The contract with the
// provider is deliberately lenient: only an unparsable body is rejected.
// Everything else, including events the reconciler ends up dropping or
// downstream failures it swallows, is acknowledged with 200 so the provider
// does not amplify redeliveries.
func (h *ApplicationHandler) IngestWebhook(c *fiber.Ctx) error {
	var ev models.WebhookEvent
	if err := json.Unmarshal(c.Body(), &ev); err != nil {
		h.Logger.WithError(err).Debug("Rejecting unparsable webhook body")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid JSON")
	}

	h.Reconciler.HandleEvent(c.Context(), &ev)

	return c.Status(fiber.StatusOK).SendString("ok")
}
