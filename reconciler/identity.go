package reconciler

import (
	"fmt"
	"math"
	"strconv"

	"meetsync/api-gateway/models"
)

// ExternalIDFromCalendarEvent derives the external meeting identity from a
// calendar event document. Recurring occurrences get a composite of the
// series UID and the occurrence's original start, so two occurrences of the
// same series never collide; single events use the plain event id. The
// derivation is pure and deterministic.
func ExternalIDFromCalendarEvent(ev models.CalendarEvent) string {
	uid, _ := ev.Field("ICalUID", "iCalUID").(string)
	originalStart := originalStartValue(ev)
	if uid != "" && originalStart != "" {
		return uid + "__" + originalStart
	}
	return stringify(ev.Field("EventId", "id"))
}

// MeetingURLFromCalendarEvent extracts a joinable URL: the conference entry
// point of type "video" if present, else the hangout-style link. Empty means
// the event has nothing a bot can join.
func MeetingURLFromCalendarEvent(ev models.CalendarEvent) string {
	if cd, ok := ev.Field("ConferenceData", "conferenceData").(map[string]any); ok {
		if points, ok := cd["entryPoints"].([]any); ok {
			for _, p := range points {
				entry, ok := p.(map[string]any)
				if !ok {
					continue
				}
				entryType, _ := entry["entryPointType"].(string)
				uri, _ := entry["uri"].(string)
				if entryType == "video" && uri != "" {
					return uri
				}
			}
		}
	}
	link, _ := ev.Field("HangoutLink", "hangoutLink").(string)
	return link
}

// ExternalIDFromWebhook reads the external meeting identity from a webhook
// payload, checking the known locations in priority order. An empty result
// means the event is unidentifiable and must be acknowledged and dropped.
func ExternalIDFromWebhook(ev *models.WebhookEvent) string {
	if ev.ExternalID != "" {
		return ev.ExternalID
	}
	if ev.Data == nil {
		return ""
	}
	if ev.Data.ExternalID != "" {
		return ev.Data.ExternalID
	}
	if ev.Data.Bot != nil && ev.Data.Bot.Metadata.ExternalID != "" {
		return ev.Data.Bot.Metadata.ExternalID
	}
	if ev.Data.Recording != nil && ev.Data.Recording.Metadata.ExternalID != "" {
		return ev.Data.Recording.Metadata.ExternalID
	}
	return ""
}

// BotIDFromWebhook reads the provider bot id from a webhook payload, empty
// when the event does not carry one.
func BotIDFromWebhook(ev *models.WebhookEvent) string {
	if ev.Data != nil {
		if ev.Data.Bot != nil && ev.Data.Bot.ID != "" {
			return ev.Data.Bot.ID
		}
		if ev.Data.BotID != "" {
			return ev.Data.BotID
		}
	}
	return ev.BotID
}

func originalStartValue(ev models.CalendarEvent) string {
	ost, ok := ev.Field("OriginalStartTime", "originalStartTime").(map[string]any)
	if !ok {
		return ""
	}
	if v, ok := ost["dateTime"].(string); ok && v != "" {
		return v
	}
	if v, ok := ost["date"].(string); ok {
		return v
	}
	return ""
}

// stringify coerces a decoded JSON value to its string form. Whole numbers
// render without an exponent or fraction so numeric event ids stay stable.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
