package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumina-cal/lumina/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyTitle = fmt.Errorf("event title must not be empty")

type EventService interface {
	CreateEvent(ctx context.Context, draft Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]Event, error)
}

type EventServiceImpl struct {
	repo EventRepository
	bus  *event_bus.EventBus
}

func NewEventService(repo EventRepository, bus *event_bus.EventBus) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, bus: bus}
}

// CreateEvent stores the draft under a freshly generated id and returns the
// stored event. The draft's ID field is ignored. End before start is not
// rejected here; the layout engine clamps the resulting height.
func (s *EventServiceImpl) CreateEvent(ctx context.Context, draft Event) (Event, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return Event{}, ErrEmptyTitle
	}
	if draft.Color == "" {
		draft.Color = DefaultColor
	}
	draft.ID = uuid.NewString()

	if err := s.repo.StoreEvent(ctx, draft); err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.EventCreated, event_bus.CalendarEventCreated{
		ID:        draft.ID,
		Title:     draft.Title,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Color:     draft.Color,
	})

	return draft, nil
}

// DeleteEvent removes the event with the given id. Removing an id that is
// not present succeeds silently.
func (s *EventServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(ctx, event_bus.EventDeleted, event_bus.CalendarEventDeleted{ID: id})

	return nil
}

func (s *EventServiceImpl) ListEvents(ctx context.Context) ([]Event, error) {
	return s.repo.ListEvents(ctx)
}

// publish notifies subscribers of a store change. Subscriber failures (for
// example a snapshot write error) must not fail the store operation itself.
func (s *EventServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
