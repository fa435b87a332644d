package view

import (
	"time"

	"github.com/lumina-cal/lumina/pkg/event"
)

// Metrics holds the logical sizing used by the layout engine.
type Metrics struct {
	// HourHeight is the logical height of one hour in time-grid views.
	HourHeight float64
	// MinEventHeight keeps very short events visible and clickable.
	MinEventHeight float64
	// MaxVisiblePerDay caps the events shown in a month cell before the
	// overflow counter takes over.
	MaxVisiblePerDay int
}

func DefaultMetrics() Metrics {
	return Metrics{
		HourHeight:       80,
		MinEventHeight:   20,
		MaxVisiblePerDay: 3,
	}
}

// MonthCell is the layout of a single month-view cell: the capped list of
// events plus the count of events that did not fit.
type MonthCell struct {
	Visible       []event.Event
	OverflowCount int
}

// PositionedEvent is an event placed in a time-grid column.
type PositionedEvent struct {
	Event  event.Event
	Top    float64
	Height float64
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// eventsOnDay selects the events whose start instant falls on day,
// preserving the order of the source collection. An event that ends on a
// later day still belongs to its start day only.
func eventsOnDay(day time.Time, events []event.Event) []event.Event {
	matching := make([]event.Event, 0, len(events))
	for _, e := range events {
		if SameDay(e.StartTime, day) {
			matching = append(matching, e)
		}
	}
	return matching
}

// LayoutMonthDay computes a month cell for the given day: up to maxVisible
// events in source order plus the overflow count. Events are deliberately
// not sorted by start time; the cell mirrors the insertion order of the
// store.
func LayoutMonthDay(day time.Time, events []event.Event, maxVisible int) MonthCell {
	matching := eventsOnDay(day, events)

	visible := matching
	if len(visible) > maxVisible {
		visible = visible[:maxVisible]
	}
	return MonthCell{
		Visible:       visible,
		OverflowCount: len(matching) - len(visible),
	}
}

// LayoutTimeGridDay positions the day's events in a time-grid column.
// Top offset comes from the start time of day, height from the absolute
// duration clamped to MinEventHeight. Overlapping events are stacked in
// the same band without collision avoidance, and an event spanning
// midnight keeps its full-duration height on the start day's column.
func LayoutTimeGridDay(day time.Time, events []event.Event, m Metrics) []PositionedEvent {
	matching := eventsOnDay(day, events)

	positioned := make([]PositionedEvent, 0, len(matching))
	for _, e := range matching {
		top := float64(e.StartTime.Hour())*m.HourHeight +
			float64(e.StartTime.Minute())/60*m.HourHeight

		height := e.EndTime.Sub(e.StartTime).Hours() * m.HourHeight
		if height < m.MinEventHeight {
			height = m.MinEventHeight
		}

		positioned = append(positioned, PositionedEvent{
			Event:  e,
			Top:    top,
			Height: height,
		})
	}
	return positioned
}
