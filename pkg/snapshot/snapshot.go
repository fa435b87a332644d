package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumina-cal/lumina/pkg/event"
)

// storedEvent is the wire shape of one event inside the snapshot blob.
type storedEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Color       string `json:"color"`
}

// Encode serializes the events into the snapshot blob. Instants are stored
// as RFC3339 text with second precision.
func Encode(events []event.Event) ([]byte, error) {
	stored := make([]storedEvent, 0, len(events))
	for _, e := range events {
		stored = append(stored, storedEvent{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Start:       e.StartTime.Format(time.RFC3339),
			End:         e.EndTime.Format(time.RFC3339),
			Color:       e.Color,
		})
	}
	return json.MarshalIndent(stored, "", "  ")
}

// Decode deserializes a snapshot blob. Any malformed entry fails the whole
// blob; the caller decides whether to fall back to an empty collection.
func Decode(data []byte) ([]event.Event, error) {
	var stored []storedEvent
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("snapshot blob is not valid JSON: %w", err)
	}

	events := make([]event.Event, 0, len(stored))
	for _, s := range stored {
		startTime, err := time.Parse(time.RFC3339, s.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q for event %s: %w", s.Start, s.ID, err)
		}
		endTime, err := time.Parse(time.RFC3339, s.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end time %q for event %s: %w", s.End, s.ID, err)
		}
		events = append(events, event.Event{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			StartTime:   startTime,
			EndTime:     endTime,
			Color:       s.Color,
		})
	}
	return events, nil
}
