package event_bus

import "time"

const (
	EventCreated EventType = "calendar.event.created"
	EventDeleted EventType = "calendar.event.deleted"
)

// CalendarEventCreated is published after a new event is stored, whether it
// came from the manual form or the smart parser.
type CalendarEventCreated struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Color     string
}

// CalendarEventDeleted is published after an event is removed by id.
type CalendarEventDeleted struct {
	ID string
}
