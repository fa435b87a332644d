package app

import (
	"database/sql"

	"github.com/lumina-cal/lumina/internal/config"
	"github.com/lumina-cal/lumina/internal/event_bus"
	"github.com/lumina-cal/lumina/internal/utils"
	"github.com/lumina-cal/lumina/pkg/event"
	"github.com/lumina-cal/lumina/pkg/snapshot"
	"github.com/lumina-cal/lumina/pkg/suggest"
	"github.com/lumina-cal/lumina/pkg/view"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	EventRepo    event.EventRepository
	EventService event.EventService
	EventHandler *event.EventHandler

	ViewService *view.ViewService
	ViewHandler *view.Handler

	SuggestClient  suggest.Client
	SuggestService suggest.SuggestService
	SuggestHandler *suggest.Handler

	SnapshotService *snapshot.SnapshotService
	SnapshotHandler *snapshot.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.EventRepo = event.NewEventRepo(db)
	deps.EventService = event.NewEventService(deps.EventRepo, deps.Bus)
	deps.EventHandler = event.NewEventHandler(deps.EventService)

	metrics := view.Metrics{
		HourHeight:       cfg.Layout.HourHeight,
		MinEventHeight:   cfg.Layout.MinEventHeight,
		MaxVisiblePerDay: cfg.Layout.MaxVisiblePerDay,
	}
	deps.ViewService = view.NewViewService(deps.EventService, deps.Clock, metrics)
	deps.ViewHandler = view.NewHandler(deps.ViewService)

	deps.SuggestClient = suggest.NewGeminiClient(cfg.Gemini)
	deps.SuggestService = suggest.NewSuggestService(deps.SuggestClient, deps.EventService, deps.Clock)
	deps.SuggestHandler = suggest.NewHandler(deps.SuggestService)

	deps.SnapshotService = snapshot.NewSnapshotService(deps.EventRepo, cfg.Snapshot.Path)
	deps.SnapshotHandler = snapshot.NewHandler(deps.EventRepo)

	return deps
}
