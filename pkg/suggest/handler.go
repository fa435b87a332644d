package suggest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lumina-cal/lumina/internal/rest"
	"github.com/lumina-cal/lumina/pkg/event"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	suggestService SuggestService
}

func NewHandler(suggestService SuggestService) *Handler {
	return &Handler{suggestService}
}

// CreateSmartEvent turns a free-text description into a stored event.
func (h *Handler) CreateSmartEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating smart event")

	var request struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	if strings.TrimSpace(request.Text) == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Text must not be empty",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	created, err := h.suggestService.CreateFromText(r.Context(), request.Text)
	if err != nil {
		if errors.Is(err, ErrNoSuggestion) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "No suggestion produced",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
				return
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(event.EventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
