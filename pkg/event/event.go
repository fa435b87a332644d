package event

import "time"

// DefaultColor is applied to events created without an explicit color,
// including every event produced by the smart parser.
const DefaultColor = "#3b82f6"

// Event is a single calendar entry. Events are never mutated in place:
// they are created, read, and deleted wholesale.
type Event struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Color       string
}
