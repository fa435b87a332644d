package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumina-cal/lumina/internal/event_bus"
	"github.com/lumina-cal/lumina/pkg/event"
	log "github.com/sirupsen/logrus"
)

// SnapshotService mirrors the event store into a single JSON blob file.
// It saves on every store change (via the event bus) and restores the blob
// into an empty store on startup. A missing or corrupt blob is never an
// error: the calendar simply starts empty.
type SnapshotService struct {
	repo event.EventRepository
	path string
}

func NewSnapshotService(repo event.EventRepository, path string) *SnapshotService {
	return &SnapshotService{repo: repo, path: path}
}

// SubscribeToChanges saves a fresh snapshot after every event creation and
// deletion. The returned function unsubscribes both handlers.
func (s *SnapshotService) SubscribeToChanges(bus *event_bus.EventBus) (unsubscribe func()) {
	onChange := func(e event_bus.Event) error {
		return s.Save(e.Context())
	}
	unsubCreated := bus.Subscribe(event_bus.EventCreated, onChange)
	unsubDeleted := bus.Subscribe(event_bus.EventDeleted, onChange)
	return func() {
		unsubCreated()
		unsubDeleted()
	}
}

// Save writes the current store contents to the blob file. The write goes
// through a temp file and rename so a crash cannot leave a half-written
// blob behind.
func (s *SnapshotService) Save(ctx context.Context) error {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events for snapshot: %w", err)
	}

	data, err := Encode(events)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	log.Debugf("Saved snapshot of %d events to %s", len(events), s.path)
	return nil
}

// Restore reads the blob file and returns its events. Absent or malformed
// data is treated as "no saved data": it is logged and an empty collection
// is returned, never an error.
func (s *SnapshotService) Restore() []event.Event {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Failed to read snapshot at %s: %v", s.path, err)
		}
		return nil
	}

	events, err := Decode(data)
	if err != nil {
		log.Warnf("Ignoring corrupt snapshot at %s: %v", s.path, err)
		return nil
	}
	return events
}

// ImportIfEmpty loads the snapshot blob into the store when the store has
// no events yet. Called once at startup.
func (s *SnapshotService) ImportIfEmpty(ctx context.Context) error {
	count, err := s.repo.CountEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	events := s.Restore()
	if len(events) == 0 {
		return nil
	}

	for _, e := range events {
		if err := s.repo.StoreEvent(ctx, e); err != nil {
			return fmt.Errorf("failed to import snapshot event %s: %w", e.ID, err)
		}
	}
	log.Infof("Imported %d events from snapshot %s", len(events), s.path)
	return nil
}
