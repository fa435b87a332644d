package snapshot

import (
	"net/http"

	"github.com/lumina-cal/lumina/pkg/event"
)

type Handler struct {
	repo event.EventRepository
}

func NewHandler(repo event.EventRepository) *Handler {
	return &Handler{repo}
}

// Download serves the current event collection as a snapshot blob.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.ListEvents(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := Encode(events)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="lumina_events.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}
