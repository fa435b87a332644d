package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumina-cal/lumina/internal/utils"
	"github.com/lumina-cal/lumina/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T, now time.Time) (*Handler, event.EventService) {
	t.Helper()
	events := event.NewEventService(&event.StubEventRepository{}, nil)
	service := NewViewService(events, &utils.MockClock{FixedNow: now}, DefaultMetrics())
	return NewHandler(service), events
}

func TestGetView_InvalidMode(t *testing.T) {
	handler, _ := setupHandlerTest(t, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/view?mode=quarter&date=2024-05-10T00:00:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetView_InvalidDate(t *testing.T) {
	handler, _ := setupHandlerTest(t, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/view?mode=month&date=not-a-date", nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetView_Month(t *testing.T) {
	handler, events := setupHandlerTest(t, time.Now())

	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := events.CreateEvent(context.Background(), event.Event{
			Title:     fmt.Sprintf("event-%d", i),
			StartTime: day.Add(time.Duration(9+i) * time.Hour),
			EndTime:   day.Add(time.Duration(10+i) * time.Hour),
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/view?mode=month&date=2024-05-10T00:00:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response struct {
		Mode      string `json:"mode"`
		MonthDays []struct {
			Date          string            `json:"date"`
			Events        []event.EventDTO  `json:"events"`
			OverflowCount int               `json:"overflowCount"`
		} `json:"monthDays"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, "month", response.Mode)
	assert.Equal(t, 0, len(response.MonthDays)%7)

	found := false
	for _, d := range response.MonthDays {
		if d.Date == day.Format(time.RFC3339) {
			found = true
			assert.Len(t, d.Events, 3)
			assert.Equal(t, 2, d.OverflowCount)
		} else {
			assert.Empty(t, d.Events)
		}
	}
	assert.True(t, found, "the event day must be part of the month window")
}

func TestGetView_Week(t *testing.T) {
	handler, events := setupHandlerTest(t, time.Now())

	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	_, err := events.CreateEvent(context.Background(), event.Event{
		Title:     "meeting",
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/view?mode=week&date=2024-05-10T00:00:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Mode      string   `json:"mode"`
		TimeSlots []string `json:"timeSlots"`
		GridDays  []struct {
			Date   string `json:"date"`
			Events []struct {
				Event  event.EventDTO `json:"event"`
				Top    float64        `json:"top"`
				Height float64        `json:"height"`
			} `json:"events"`
		} `json:"gridDays"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, "week", response.Mode)
	assert.Len(t, response.TimeSlots, 24)
	require.Len(t, response.GridDays, 7)

	for _, d := range response.GridDays {
		if d.Date != day.Format(time.RFC3339) {
			assert.Empty(t, d.Events)
			continue
		}
		require.Len(t, d.Events, 1)
		assert.Equal(t, "meeting", d.Events[0].Event.Title)
		assert.Equal(t, 720.0, d.Events[0].Top)
		assert.Equal(t, 120.0, d.Events[0].Height)
	}
}

func TestNavigate(t *testing.T) {
	now := time.Date(2024, time.May, 21, 15, 0, 0, 0, time.UTC)
	handler, _ := setupHandlerTest(t, now)

	t.Run("next month", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/view/navigate?mode=month&date=2024-05-10T00:00:00Z&direction=next", nil)
		w := httptest.NewRecorder()

		handler.Navigate(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Date string `json:"date"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "2024-06-10T00:00:00Z", response.Date)
	})

	t.Run("today resets to the clock's day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/view/navigate?mode=week&date=2023-01-01T00:00:00Z&direction=today", nil)
		w := httptest.NewRecorder()

		handler.Navigate(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Date string `json:"date"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "2024-05-21T00:00:00Z", response.Date)
	})

	t.Run("unknown direction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/view/navigate?mode=day&date=2024-05-10T00:00:00Z&direction=sideways", nil)
		w := httptest.NewRecorder()

		handler.Navigate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
