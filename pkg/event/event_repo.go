package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventRepository interface {
	StoreEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]Event, error)
	CountEvents(ctx context.Context) (int, error)
}

type EventRepositoryImpl struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

// StoreEvent stores a new Event to the database
func (r *EventRepositoryImpl) StoreEvent(ctx context.Context, event Event) error {
	query := `INSERT INTO calendar_event (id, title, description, start_time, end_time, color)
              VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, event.ID, event.Title, event.Description,
		event.StartTime.UnixMilli(), event.EndTime.UnixMilli(), event.Color)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}

	return nil
}

// DeleteEvent removes the event with the given id. Deleting a nonexistent
// id is a no-op, not an error.
func (r *EventRepositoryImpl) DeleteEvent(ctx context.Context, id string) error {
	query := `DELETE FROM calendar_event WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

// ListEvents returns all events in insertion order. Month cells rely on
// this ordering; there is deliberately no sort by start time.
func (r *EventRepositoryImpl) ListEvents(ctx context.Context) ([]Event, error) {
	query := `SELECT id, title, description, start_time, end_time, color
              FROM calendar_event
              ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query calendar events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var event Event
		var startTimeMillis int64
		var endTimeMillis int64
		err := rows.Scan(&event.ID, &event.Title, &event.Description, &startTimeMillis, &endTimeMillis, &event.Color)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		event.StartTime = time.UnixMilli(startTimeMillis)
		event.EndTime = time.UnixMilli(endTimeMillis)
		events = append(events, event)
	}
	return events, nil
}

func (r *EventRepositoryImpl) CountEvents(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_event`)
	var count int
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not count calendar events: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}
