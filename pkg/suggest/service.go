package suggest

import (
	"context"
	"fmt"
	"time"

	"github.com/lumina-cal/lumina/internal/utils"
	"github.com/lumina-cal/lumina/pkg/event"
	log "github.com/sirupsen/logrus"
)

// ErrNoSuggestion is the only failure the smart parser surfaces. Network
// errors, schema mismatches, and unparseable dates all collapse into it;
// the user simply retries by resubmitting.
var ErrNoSuggestion = fmt.Errorf("no suggestion produced")

type SuggestService interface {
	CreateFromText(ctx context.Context, text string) (event.Event, error)
}

type SuggestServiceImpl struct {
	client Client
	events event.EventService
	clock  utils.Clock
}

func NewSuggestService(client Client, events event.EventService, clock utils.Clock) *SuggestServiceImpl {
	return &SuggestServiceImpl{client: client, events: events, clock: clock}
}

// CreateFromText parses the free text into a suggestion and stores it as a
// regular event with the default color. A malformed suggestion never
// produces a partial event.
func (s *SuggestServiceImpl) CreateFromText(ctx context.Context, text string) (event.Event, error) {
	suggestion, err := s.client.Parse(ctx, text, s.clock.Now())
	if err != nil {
		log.Warnf("smart event parsing failed: %v", err)
		return event.Event{}, ErrNoSuggestion
	}

	startTime, err := parseISOInstant(suggestion.StartDate)
	if err != nil {
		log.Warnf("smart event suggestion has invalid start date %q: %v", suggestion.StartDate, err)
		return event.Event{}, ErrNoSuggestion
	}
	endTime, err := parseISOInstant(suggestion.EndDate)
	if err != nil {
		log.Warnf("smart event suggestion has invalid end date %q: %v", suggestion.EndDate, err)
		return event.Event{}, ErrNoSuggestion
	}

	created, err := s.events.CreateEvent(ctx, event.Event{
		Title:       suggestion.Title,
		Description: suggestion.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Color:       event.DefaultColor,
	})
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to store suggested event: %w", err)
	}

	return created, nil
}

// parseISOInstant accepts RFC3339 and the zone-less variant some model
// responses use, interpreted as local wall-clock time.
func parseISOInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
}
