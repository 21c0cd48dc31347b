package venue

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/rest"
)

type VenueDTO struct {
	Id               int       `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	GoogleCalendarId string    `json:"googleCalendarId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateVenue godoc
// @Summary Provision a venue
// @Description Create a venue together with its default configuration
// @Tags Venue
// @Accept json
// @Produce json
// @Param venue body VenueDTO true "Venue"
// @Success 201 {object} VenueDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Code already in use"
// @Router /api/venue [post]
func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating venue")
	var dto VenueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	created, err := h.service.CreateVenue(r.Context(), dto.Code, dto.Name)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Infof("Provisioned venue %s (%d)", created.Code, created.Id)
	rest.WriteJSON(w, http.StatusCreated, venueToDTO(created))
}

// CurrentVenue godoc
// @Summary Get current venue
// @Tags Venue
// @Produce json
// @Success 200 {object} VenueDTO
// @Failure 403 {string} string "Venue not found"
// @Router /api/venue/current [get]
// @Security XVenueCode
func (h *Handler) CurrentVenue(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current venue")
	current, err := h.service.GetCurrentVenue(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, venueToDTO(current))
}

// UpdateCurrentVenue godoc
// @Summary Update current venue
// @Description Rename the venue or change the Google calendar its events are mirrored to
// @Tags Venue
// @Accept json
// @Produce json
// @Param venue body VenueDTO true "Venue"
// @Success 200 {object} VenueDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/venue/current [put]
// @Security XVenueCode
func (h *Handler) UpdateCurrentVenue(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating current venue")
	var dto VenueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}

	updated, err := h.service.UpdateCurrentVenue(r.Context(), dto.Name, dto.GoogleCalendarId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, venueToDTO(updated))
}

// ListVenues godoc
// @Summary List venues
// @Tags Venue
// @Produce json
// @Success 200 {array} VenueDTO
// @Router /api/venues [get]
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing venues")
	venues, err := h.service.ListVenues(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]VenueDTO, 0, len(venues))
	for _, v := range venues {
		dtos = append(dtos, venueToDTO(v))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func venueToDTO(v Venue) VenueDTO {
	return VenueDTO{
		Id:               v.Id,
		Code:             v.Code,
		Name:             v.Name,
		GoogleCalendarId: v.GoogleCalendarId,
		CreatedAt:        v.CreatedAt,
	}
}
