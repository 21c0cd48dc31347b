package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) *mux.Router {
	f := setupService(t)
	handler := NewHandler(f.service)
	router := mux.NewRouter()
	router.HandleFunc("/api/calendar/event", handler.GetEvents).Methods("GET")
	router.HandleFunc("/api/calendar/event", handler.CreateEvent).Methods("POST")
	router.HandleFunc("/api/calendar/event/{eventUid}", handler.GetEvent).Methods("GET")
	router.HandleFunc("/api/calendar/event/{eventUid}", handler.UpdateEvent).Methods("PUT")
	router.HandleFunc("/api/calendar/event/{eventUid}", handler.DeleteEvent).Methods("DELETE")
	router.HandleFunc("/api/calendar/day", handler.GetDay).Methods("GET")
	router.HandleFunc("/api/calendar/month", handler.GetMonth).Methods("GET")
	router.HandleFunc("/api/calendar/stats", handler.GetStats).Methods("GET")
	router.HandleFunc("/api/calendar/feed.ics", handler.GetFeed).Methods("GET")
	return router
}

func serve(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(venueCtx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createEvent(t *testing.T, router *mux.Router, body string) EventDTO {
	t.Helper()
	rr := serve(router, "POST", "/api/calendar/event", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var dto EventDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
	return dto
}

func TestHandler_CreateEvent(t *testing.T) {
	router := setupHandler(t)

	dto := createEvent(t, router, `{
		"title": "Gala dinner",
		"startDate": "2024-06-20T18:00:00Z",
		"endDate": "2024-06-20T23:00:00Z",
		"locationId": "hall",
		"priority": "urgent",
		"attendees": ["Ann", "Bob"]
	}`)

	assert.NotEmpty(t, dto.UID)
	assert.Equal(t, "meeting", dto.Category)
	assert.Equal(t, "urgent", dto.Priority)
	require.NotNil(t, dto.Location)
	assert.Equal(t, "Main Hall", *dto.Location)
	assert.Equal(t, []string{"Ann", "Bob"}, dto.Attendees)

	rr := serve(router, "GET", "/api/calendar/event/"+dto.UID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Gala dinner"`)
}

func TestHandler_CreateEvent_Errors(t *testing.T) {
	router := setupHandler(t)

	rr := serve(router, "POST", "/api/calendar/event", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid request body format")

	rr = serve(router, "POST", "/api/calendar/event", `{"title": "x", "startDate": "2024-06-20T18:00:00Z", "endDate": "2024-06-20T17:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "endDate")
}

func TestHandler_UpdateEvent(t *testing.T) {
	router := setupHandler(t)
	created := createEvent(t, router, `{"title": "Tasting", "startDate": "2024-06-20T18:00:00Z"}`)

	body := fmt.Sprintf(`{"title": "Wine tasting", "startDate": "2024-06-20T18:00:00Z", "location": "Cellar", "updatedAt": %q}`,
		created.UpdatedAt.Format(time.RFC3339Nano))
	rr := serve(router, "PUT", "/api/calendar/event/"+created.UID, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated EventDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "Wine tasting", updated.Title)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Cellar", *updated.Location)

	stale := fmt.Sprintf(`{"title": "Stale", "startDate": "2024-06-20T18:00:00Z", "updatedAt": "%s"}`, "2000-01-01T00:00:00Z")
	rr = serve(router, "PUT", "/api/calendar/event/"+created.UID, stale)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = serve(router, "PUT", "/api/calendar/event/not-a-uid", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_DeleteEvent(t *testing.T) {
	router := setupHandler(t)
	created := createEvent(t, router, `{"title": "Tasting", "startDate": "2024-06-20T18:00:00Z"}`)

	rr := serve(router, "DELETE", "/api/calendar/event/"+created.UID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(router, "DELETE", "/api/calendar/event/"+created.UID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Views(t *testing.T) {
	router := setupHandler(t)
	createEvent(t, router, `{"title": "Festival", "startDate": "2024-06-01T10:00:00Z", "endDate": "2024-06-03T12:00:00Z"}`)

	rr := serve(router, "GET", "/api/calendar/day?date=2024-06-02", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var day []EventDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&day))
	require.Len(t, day, 1)
	assert.Equal(t, "Festival", day[0].Title)

	rr = serve(router, "GET", "/api/calendar/day?date=06/02/2024", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, "GET", "/api/calendar/month?year=2024&month=6", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var month MonthViewDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&month))
	require.Len(t, month.Weeks, 6)
	for _, week := range month.Weeks {
		assert.Len(t, week, 7)
	}
	assert.Equal(t, "2024-05-27", month.Weeks[0][0].Date)
	assert.Len(t, month.Weeks[0][5].Events, 1)

	rr = serve(router, "GET", "/api/calendar/month?year=2024&month=13", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, "GET", "/api/calendar/event?from=2024-06-02T00:00:00Z&to=2024-06-02T23:59:59Z", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Festival")

	rr = serve(router, "GET", "/api/calendar/event?from=yesterday&to=2024-06-02T23:59:59Z", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, "GET", "/api/calendar/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stats Stats
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Total)

	rr = serve(router, "GET", "/api/calendar/feed.ics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "SUMMARY:Festival")
}
