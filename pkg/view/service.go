package view

import (
	"context"
	"fmt"
	"time"

	"github.com/lumina-cal/lumina/internal/utils"
	"github.com/lumina-cal/lumina/pkg/event"
)

// MonthDay is one rendered cell of the month grid.
type MonthDay struct {
	Day  time.Time
	Cell MonthCell
}

// TimeGridDay is one rendered column of the week or day grid.
type TimeGridDay struct {
	Day    time.Time
	Events []PositionedEvent
}

// ViewService combines the event store with the pure window and layout
// functions. It never mutates the events it lays out.
type ViewService struct {
	events  event.EventService
	clock   utils.Clock
	metrics Metrics
}

func NewViewService(events event.EventService, clock utils.Clock, metrics Metrics) *ViewService {
	return &ViewService{events: events, clock: clock, metrics: metrics}
}

func (s *ViewService) Metrics() Metrics {
	return s.metrics
}

// Month lays out the whole month window around the anchor.
func (s *ViewService) Month(ctx context.Context, anchor time.Time) ([]MonthDay, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	days := DaysForView(anchor, ModeMonth)
	cells := make([]MonthDay, 0, len(days))
	for _, day := range days {
		cells = append(cells, MonthDay{
			Day:  day,
			Cell: LayoutMonthDay(day, events, s.metrics.MaxVisiblePerDay),
		})
	}
	return cells, nil
}

// TimeGrid lays out the week or day window around the anchor.
func (s *ViewService) TimeGrid(ctx context.Context, anchor time.Time, mode Mode) ([]TimeGridDay, error) {
	if mode == ModeMonth {
		return nil, fmt.Errorf("month mode has no time grid")
	}
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	days := DaysForView(anchor, mode)
	columns := make([]TimeGridDay, 0, len(days))
	for _, day := range days {
		columns = append(columns, TimeGridDay{
			Day:    day,
			Events: LayoutTimeGridDay(day, events, s.metrics),
		})
	}
	return columns, nil
}

// Navigate steps the anchor forward or back by one unit of the mode, or
// resets it to the current day for "today".
func (s *ViewService) Navigate(anchor time.Time, mode Mode, direction string) (time.Time, error) {
	switch direction {
	case "prev":
		return Step(anchor, mode, DirectionPrev), nil
	case "next":
		return Step(anchor, mode, DirectionNext), nil
	case "today":
		return StartOfDay(s.clock.Now()), nil
	}
	return time.Time{}, fmt.Errorf("unknown direction: %q", direction)
}
