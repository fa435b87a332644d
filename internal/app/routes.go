package app

import (
	"github.com/gorilla/mux"
	"github.com/lumina-cal/lumina/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event", deps.EventHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/event/smart", deps.SuggestHandler.CreateSmartEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Calendar views
	r.HandleFunc("/api/view", deps.ViewHandler.GetView).Queries("mode", "{mode}", "date", "{date}").Methods("GET")
	r.HandleFunc("/api/view/navigate", deps.ViewHandler.Navigate).
		Queries("mode", "{mode}", "date", "{date}", "direction", "{direction}").Methods("GET")

	// Snapshot export
	r.HandleFunc("/api/snapshot", deps.SnapshotHandler.Download).Methods("GET")
}
