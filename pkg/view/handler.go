package view

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lumina-cal/lumina/internal/rest"
	"github.com/lumina-cal/lumina/pkg/event"
)

type Handler struct {
	view *ViewService
}

func NewHandler(view *ViewService) *Handler {
	return &Handler{view}
}

type monthDayDTO struct {
	Date          string           `json:"date"`
	Events        []event.EventDTO `json:"events"`
	OverflowCount int              `json:"overflowCount"`
}

type positionedEventDTO struct {
	Event  event.EventDTO `json:"event"`
	Top    float64        `json:"top"`
	Height float64        `json:"height"`
}

type timeGridDayDTO struct {
	Date   string               `json:"date"`
	Events []positionedEventDTO `json:"events"`
}

type viewDTO struct {
	Mode      string           `json:"mode"`
	Anchor    string           `json:"anchor"`
	TimeSlots []string         `json:"timeSlots,omitempty"`
	MonthDays []monthDayDTO    `json:"monthDays,omitempty"`
	GridDays  []timeGridDayDTO `json:"gridDays,omitempty"`
}

// GetView renders the day window and event layout for the requested mode
// and anchor date.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	mode, anchor, ok := h.decodeModeAndDate(w, r)
	if !ok {
		return
	}

	response := viewDTO{
		Mode:   mode.String(),
		Anchor: anchor.Format(time.RFC3339),
	}

	if mode == ModeMonth {
		days, err := h.view.Month(r.Context(), anchor)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		response.MonthDays = make([]monthDayDTO, 0, len(days))
		for _, d := range days {
			dto := monthDayDTO{
				Date:          d.Day.Format(time.RFC3339),
				Events:        make([]event.EventDTO, 0, len(d.Cell.Visible)),
				OverflowCount: d.Cell.OverflowCount,
			}
			for _, e := range d.Cell.Visible {
				dto.Events = append(dto.Events, event.EventToDTO(e))
			}
			response.MonthDays = append(response.MonthDays, dto)
		}
	} else {
		days, err := h.view.TimeGrid(r.Context(), anchor, mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, slot := range TimeSlots() {
			response.TimeSlots = append(response.TimeSlots, slot.Label)
		}
		response.GridDays = make([]timeGridDayDTO, 0, len(days))
		for _, d := range days {
			dto := timeGridDayDTO{
				Date:   d.Day.Format(time.RFC3339),
				Events: make([]positionedEventDTO, 0, len(d.Events)),
			}
			for _, p := range d.Events {
				dto.Events = append(dto.Events, positionedEventDTO{
					Event:  event.EventToDTO(p.Event),
					Top:    p.Top,
					Height: p.Height,
				})
			}
			response.GridDays = append(response.GridDays, dto)
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Navigate steps the anchor date by one unit of the mode.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	mode, anchor, ok := h.decodeModeAndDate(w, r)
	if !ok {
		return
	}

	direction := r.URL.Query().Get("direction")
	next, err := h.view.Navigate(anchor, mode, direction)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid direction",
			Details: "'direction' must be one of prev, next, today",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(struct {
		Date string `json:"date"`
	}{Date: next.Format(time.RFC3339)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) decodeModeAndDate(w http.ResponseWriter, r *http.Request) (Mode, time.Time, bool) {
	mode, err := ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid view mode",
			Details: "'mode' must be one of month, week, day",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return 0, time.Time{}, false
		}
		return 0, time.Time{}, false
	}

	anchor, err := time.Parse(time.RFC3339, r.URL.Query().Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "'date' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return 0, time.Time{}, false
		}
		return 0, time.Time{}, false
	}

	return mode, anchor, true
}
