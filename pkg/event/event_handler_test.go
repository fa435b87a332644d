package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*EventHandler, *StubEventRepository) {
	t.Helper()
	repo := &StubEventRepository{}
	handler := NewEventHandler(NewEventService(repo, nil))
	return handler, repo
}

func TestCreateEventHandler_InvalidBody(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/event", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEventHandler_InvalidStartTime(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	body, _ := json.Marshal(map[string]string{
		"title": "Dinner",
		"start": "yesterday",
		"end":   "2024-05-10T20:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/event", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "Invalid start time format")
	assert.Contains(t, errResponse.Details, "RFC3339")
}

func TestCreateEventHandler_EmptyTitle(t *testing.T) {
	handler, repo := setupHandlerTest(t)

	body, _ := json.Marshal(map[string]string{
		"title": "",
		"start": "2024-05-10T19:00:00Z",
		"end":   "2024-05-10T20:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/event", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.Events)
}

func TestCreateEventHandler_Success(t *testing.T) {
	handler, repo := setupHandlerTest(t)

	body, _ := json.Marshal(map[string]string{
		"title":       "Dinner",
		"description": "With Sophie",
		"start":       "2024-05-10T19:00:00Z",
		"end":         "2024-05-10T20:00:00Z",
		"color":       "#10b981",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/event", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dto EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "Dinner", dto.Title)
	assert.Equal(t, "With Sophie", dto.Description)
	assert.Equal(t, "2024-05-10T19:00:00Z", dto.Start)
	assert.Equal(t, "2024-05-10T20:00:00Z", dto.End)
	assert.Equal(t, "#10b981", dto.Color)

	require.Len(t, repo.Events, 1)
}

func TestListEventsHandler(t *testing.T) {
	handler, repo := setupHandlerTest(t)

	addTestEvent(t, handler, "First")
	addTestEvent(t, handler, "Second")
	require.Len(t, repo.Events, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/event", nil)
	w := httptest.NewRecorder()

	handler.ListEvents(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var dtos []EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, "First", dtos[0].Title)
	assert.Equal(t, "Second", dtos[1].Title)
}

func TestDeleteEventHandler(t *testing.T) {
	handler, repo := setupHandlerTest(t)

	addTestEvent(t, handler, "Dinner")
	require.Len(t, repo.Events, 1)
	id := repo.Events[0].ID

	req := httptest.NewRequest(http.MethodDelete, "/api/event/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"eventId": id})
	w := httptest.NewRecorder()

	handler.DeleteEvent(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.Events)
}

func addTestEvent(t *testing.T, handler *EventHandler, title string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"title": title,
		"start": "2024-05-10T19:00:00Z",
		"end":   "2024-05-10T20:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/event", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CreateEvent(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}
