package google

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/rest"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client}
}

// ListCalendars godoc
// @Summary List Google calendars
// @Description Calendars shared with the service account. One of them can be set as the venue's googleCalendarId.
// @Tags Integrations
// @Produce json
// @Success 200 {array} CalendarItemDto
// @Router /api/integrations/google/calendars [get]
// @Security XVenueCode
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing Google calendars")
	calendars, err := h.client.ListCalendars(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	items := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		items = append(items, CalendarItemDto{Id: c.ID, Summary: c.Summary})
	}
	rest.WriteJSON(w, http.StatusOK, items)
}
