package view

import (
	"fmt"
	"time"
)

// Mode selects which day window and layout strategy apply.
type Mode int

const (
	ModeMonth Mode = iota
	ModeWeek
	ModeDay
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "month":
		return ModeMonth, nil
	case "week":
		return ModeWeek, nil
	case "day":
		return ModeDay, nil
	}
	return ModeMonth, fmt.Errorf("unknown view mode: %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeWeek:
		return "week"
	case ModeDay:
		return "day"
	default:
		return "month"
	}
}

type Direction int

const (
	DirectionPrev Direction = iota
	DirectionNext
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday starting the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// endOfWeek returns the Saturday ending the week containing t.
func endOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, int(time.Saturday-day.Weekday()))
}

// DaysForView computes the ordered sequence of start-of-day instants to
// render for the given anchor and mode.
//
// Month windows cover whole Sunday-to-Saturday weeks from the week of the
// 1st through the week of the last day of the anchor's month, so their
// length is always a multiple of 7. Week windows are the 7 days of the
// anchor's week. Day windows contain only the anchor's day.
func DaysForView(anchor time.Time, mode Mode) []time.Time {
	switch mode {
	case ModeWeek:
		return daysBetween(startOfWeek(anchor), endOfWeek(anchor))
	case ModeDay:
		return []time.Time{StartOfDay(anchor)}
	default:
		firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		lastOfMonth := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, anchor.Location())
		return daysBetween(startOfWeek(firstOfMonth), endOfWeek(lastOfMonth))
	}
}

// daysBetween returns every day from first through last, inclusive.
func daysBetween(first, last time.Time) []time.Time {
	days := make([]time.Time, 0, 42)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Step advances the anchor by one month, week, or day in the given
// direction. Month steps clamp the day-of-month when the target month is
// shorter (Jan 31 -> Feb 28), instead of Go's default normalization into
// the following month.
func Step(anchor time.Time, mode Mode, direction Direction) time.Time {
	n := 1
	if direction == DirectionPrev {
		n = -1
	}
	switch mode {
	case ModeWeek:
		return anchor.AddDate(0, 0, 7*n)
	case ModeDay:
		return anchor.AddDate(0, 0, n)
	default:
		return AddMonths(anchor, n)
	}
}

// AddMonths adds n calendar months to t, clamping the day-of-month to the
// last day of the target month when needed.
func AddMonths(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	lastDay := time.Date(firstOfTarget.Year(), firstOfTarget.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	hour, min, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}
