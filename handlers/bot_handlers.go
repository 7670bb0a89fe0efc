package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"meetsync/api-gateway/internal/recall"
	"meetsync/api-gateway/reconciler"
	"meetsync/api-gateway/utils"
)

// StartBotRequest defines the expected request body for launching a bot
// into a calendar event's meeting.
type StartBotRequest struct {
	CalendarID string                   `json:"calendar_id" validate:"required"`
	EventID    string                   `json:"event_id" validate:"required"`
	Options    reconciler.LaunchOptions `json:"options"`
}

var validate = validator.New()

// StartBot launches a provider bot for a calendar event. Unlike webhook
// ingestion this path reports failures to the caller, including the
// provider's own rejection detail.
func (h *ApplicationHandler) StartBot(c *fiber.Ctx) error {
	payload := new(StartBotRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}

	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	result, err := h.Reconciler.LaunchBot(c.Context(), payload.CalendarID, payload.EventID, payload.Options)
	if err != nil {
		var apiErr *recall.APIError
		switch {
		case errors.Is(err, reconciler.ErrEventNotFound):
			return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, reconciler.ErrNoMeetingURL):
			return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, reconciler.ErrProviderNotConfigured):
			h.Logger.Error("Bot launch attempted without provider configuration")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Server missing provider configuration")
		case errors.As(err, &apiErr):
			h.Logger.WithError(err).Warn("Provider rejected bot creation")
			return utils.RespondWithError(c, fiber.StatusBadGateway, apiErr.Detail)
		default:
			h.Logger.WithError(err).Error("Bot launch failed")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not launch bot")
		}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"external_id": result.ExternalID,
		"bot":         fiber.Map{"id": result.BotID},
	})
}
