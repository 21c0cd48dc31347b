package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/rest"
	"github.com/venuecal/venuecal/pkg/date_grid"
)

type Handler struct {
	calendar Service
}

type EventDTO struct {
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    *string   `json:"location"`
	// LocationId selects one of the venue's locations. It takes precedence over Location.
	LocationId string    `json:"locationId,omitempty"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
	Attendees  []string  `json:"attendees"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type DayCellDTO struct {
	Date    string     `json:"date"`
	InMonth bool       `json:"inMonth"`
	IsToday bool       `json:"isToday"`
	Events  []EventDTO `json:"events"`
}

type MonthViewDTO struct {
	Year           int            `json:"year"`
	Month          int            `json:"month"`
	MonthName      string         `json:"monthName"`
	WeekdayHeaders []string       `json:"weekdayHeaders"`
	Weeks          [][]DayCellDTO `json:"weeks"`
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

// GetEvents godoc
// @Summary List events
// @Description Events overlapping the period, ordered by start
// @Tags Calendar
// @Produce json
// @Param from query string true "Start of the period (RFC3339)"
// @Param to query string true "End of the period (RFC3339)"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid period"
// @Router /api/calendar/event [get]
// @Security XVenueCode
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting events")
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteBadRequest(w, "Invalid from (date) format", "'from' must be in RFC3339 format")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteBadRequest(w, "Invalid to (date) format", "'to' must be in RFC3339 format")
		return
	}

	events, err := h.calendar.GetEvents(r.Context(), from, to)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsToDTO(events))
}

// GetEvent godoc
// @Summary Get event
// @Tags Calendar
// @Produce json
// @Param eventUid path string true "Event UID"
// @Success 200 {object} EventDTO
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/calendar/event/{eventUid} [get]
// @Security XVenueCode
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	uid, ok := eventUid(w, r)
	if !ok {
		return
	}
	log.Tracef("Getting event %s", uid)

	event, err := h.calendar.GetEvent(r.Context(), uid)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventToDTO(event))
}

// CreateEvent godoc
// @Summary Create event
// @Description Missing category, priority and end date are filled from the venue configuration
// @Tags Calendar
// @Accept json
// @Produce json
// @Param event body EventDTO true "Event"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Router /api/calendar/event [post]
// @Security XVenueCode
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating event")
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	event, err := h.calendar.AddEvent(r.Context(), dtoToDraft(eventDTO))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, eventToDTO(event))
}

// UpdateEvent godoc
// @Summary Update event
// @Description Omitted category and priority keep the event's current codes. When updatedAt is sent, the update fails with 409 if the event changed since
// @Tags Calendar
// @Accept json
// @Produce json
// @Param eventUid path string true "Event UID"
// @Param event body EventDTO true "Event"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 409 {object} rest.ErrorResponse "Event was modified"
// @Router /api/calendar/event/{eventUid} [put]
// @Security XVenueCode
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	uid, ok := eventUid(w, r)
	if !ok {
		return
	}
	log.Debugf("Updating event %s", uid)
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	event, err := h.calendar.ModifyEvent(r.Context(), uid, dtoToDraft(eventDTO), eventDTO.UpdatedAt)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventToDTO(event))
}

// DeleteEvent godoc
// @Summary Delete event
// @Tags Calendar
// @Param eventUid path string true "Event UID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/calendar/event/{eventUid} [delete]
// @Security XVenueCode
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	uid, ok := eventUid(w, r)
	if !ok {
		return
	}
	log.Debugf("Deleting event %s", uid)

	if err := h.calendar.DeleteEvent(r.Context(), uid); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDay godoc
// @Summary Events of a day
// @Description Every event covering the day, multi-day events included
// @Tags Calendar
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/calendar/day [get]
// @Security XVenueCode
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := date_grid.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteBadRequest(w, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}
	log.Tracef("Getting events on %s", date)

	events, err := h.calendar.EventsOnDate(r.Context(), date)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsToDTO(events))
}

// GetMonth godoc
// @Summary Month view
// @Description Six week grid of the month starting on the venue's first day of week
// @Tags Calendar
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} MonthViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Router /api/calendar/month [get]
// @Security XVenueCode
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteBadRequest(w, "Invalid year", "'year' must be a number")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		rest.WriteBadRequest(w, "Invalid month", "'month' must be a number between 1 and 12")
		return
	}
	log.Tracef("Getting month view %d-%02d", year, month)

	view, err := h.calendar.MonthView(r.Context(), year, time.Month(month))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, monthViewToDTO(view))
}

// GetStats godoc
// @Summary Event statistics
// @Tags Calendar
// @Produce json
// @Success 200 {object} Stats
// @Router /api/calendar/stats [get]
// @Security XVenueCode
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting stats")
	stats, err := h.calendar.Stats(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stats)
}

// GetFeed godoc
// @Summary iCalendar feed
// @Tags Calendar
// @Produce text/calendar
// @Param from query string false "Start of the period (RFC3339)"
// @Param to query string false "End of the period (RFC3339)"
// @Success 200 {string} string
// @Router /api/calendar/feed.ics [get]
// @Security XVenueCode
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	log.Trace("Rendering iCalendar feed")
	var from, to time.Time
	var err error
	if value := r.URL.Query().Get("from"); value != "" {
		if from, err = time.Parse(time.RFC3339, value); err != nil {
			rest.WriteBadRequest(w, "Invalid from (date) format", "'from' must be in RFC3339 format")
			return
		}
	}
	if value := r.URL.Query().Get("to"); value != "" {
		if to, err = time.Parse(time.RFC3339, value); err != nil {
			rest.WriteBadRequest(w, "Invalid to (date) format", "'to' must be in RFC3339 format")
			return
		}
	}

	feed, err := h.calendar.Feed(r.Context(), from, to)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		log.Errorf("failed to write feed: %v", err)
	}
}

func eventUid(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	uid, err := uuid.Parse(mux.Vars(r)["eventUid"])
	if err != nil {
		rest.WriteBadRequest(w, "Invalid event uid", err.Error())
		return uuid.Nil, false
	}
	return uid, true
}

func eventToDTO(e Event) EventDTO {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return EventDTO{
		UID:         e.UID.String(),
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		Category:    e.Category,
		Priority:    e.Priority,
		Attendees:   attendees,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventsToDTO(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	return dtos
}

func dtoToDraft(e EventDTO) EventDraft {
	draft := EventDraft{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Category:    e.Category,
		Priority:    e.Priority,
		Attendees:   e.Attendees,
	}
	switch {
	case e.LocationId != "":
		draft.Location = SelectedLocation{LocationId: e.LocationId}
	case e.Location != nil:
		draft.Location = FreeTextLocation{Text: *e.Location}
	}
	return draft
}

func monthViewToDTO(view MonthView) MonthViewDTO {
	dto := MonthViewDTO{
		Year:           view.Year,
		Month:          int(view.Month),
		MonthName:      view.MonthName,
		WeekdayHeaders: view.WeekdayHeaders,
		Weeks:          make([][]DayCellDTO, 0, date_grid.Rows),
	}
	for _, week := range view.Weeks {
		days := make([]DayCellDTO, 0, date_grid.Columns)
		for _, cell := range week {
			days = append(days, DayCellDTO{
				Date:    cell.Date.String(),
				InMonth: cell.InMonth,
				IsToday: cell.IsToday,
				Events:  eventsToDTO(cell.Events),
			})
		}
		dto.Weeks = append(dto.Weeks, days)
	}
	return dto
}
