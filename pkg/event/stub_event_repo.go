package event

import "context"

type StubEventRepository struct {
	Events []Event
}

func (s *StubEventRepository) StoreEvent(ctx context.Context, event Event) error {
	s.Events = append(s.Events, event)
	return nil
}

func (s *StubEventRepository) DeleteEvent(ctx context.Context, id string) error {
	for i, e := range s.Events {
		if e.ID == id {
			s.Events = append(s.Events[:i], s.Events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *StubEventRepository) ListEvents(ctx context.Context) ([]Event, error) {
	snapshot := make([]Event, len(s.Events))
	copy(snapshot, s.Events)
	return snapshot, nil
}

func (s *StubEventRepository) CountEvents(ctx context.Context) (int, error) {
	return len(s.Events), nil
}

func (s *StubEventRepository) Cleanup() {
	s.Events = []Event{}
}
