package models

// CalendarEvent is a schemaless calendar event document. Events are stored
// by an upstream calendar sync that has used two casing conventions over
// time ("EventId" vs "id"), so the event is kept as a raw map and read
// through tolerant lookups instead of a struct.
type CalendarEvent map[string]any

// Field returns the first present value among the given keys, nil if none
// are set.
func (ev CalendarEvent) Field(keys ...string) any {
	for _, key := range keys {
		if v, ok := ev[key]; ok && v != nil {
			return v
		}
	}
	return nil
}
