package venue_config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/rest"
)

// maxImportSize bounds the size of an imported configuration document.
const maxImportSize = 1 << 20

// OptionsDTO is what the event form offers: only selectable entries, in display order.
type OptionsDTO struct {
	Locations  []LocationOption `json:"locations"`
	Categories []CategoryOption `json:"categories"`
	Priorities []PriorityOption `json:"priorities"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetConfig godoc
// @Summary Get venue configuration
// @Description Effective configuration of the current venue, defaults filled in
// @Tags Config
// @Produce json
// @Success 200 {object} VenueConfig
// @Router /api/config [get]
// @Security XVenueCode
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting venue configuration")
	config, err := h.service.GetConfig(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, config)
}

// UpdateConfig godoc
// @Summary Update venue configuration
// @Description Fields present in the body replace the current values, absent fields are kept
// @Tags Config
// @Accept json
// @Produce json
// @Param config body ConfigPatch true "Changed fields"
// @Success 200 {object} VenueConfig
// @Failure 400 {object} rest.ErrorResponse "Invalid value"
// @Router /api/config [put]
// @Security XVenueCode
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating venue configuration")
	var updates ConfigPatch
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&updates); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		rest.WriteBadRequest(w, "Invalid request body format", "unexpected content after the configuration object")
		return
	}

	config, err := h.service.UpdateConfig(r.Context(), updates)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, config)
}

// ExportConfig godoc
// @Summary Export venue configuration
// @Tags Config
// @Produce json
// @Produce application/yaml
// @Param format query string false "json (default) or yaml"
// @Success 200 {object} VenueConfig
// @Router /api/config/export [get]
// @Security XVenueCode
func (h *Handler) ExportConfig(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting venue configuration")
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	data, err := h.service.ExportConfig(r.Context(), format)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"venue-config.%s\"", format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Errorf("failed to write exported configuration: %v", err)
	}
}

// ImportConfig godoc
// @Summary Import venue configuration
// @Description Replace the venue configuration with an exported document. Missing fields fall back to defaults.
// @Tags Config
// @Accept json
// @Accept application/yaml
// @Produce json
// @Param format query string false "json (default) or yaml"
// @Success 200 {object} VenueConfig
// @Failure 400 {object} rest.ErrorResponse "Invalid value"
// @Failure 422 {object} rest.ErrorResponse "Document cannot be read or is too large"
// @Router /api/config/import [post]
// @Security XVenueCode
func (h *Handler) ImportConfig(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing venue configuration")
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rest.WriteError(w, fmt.Errorf("%w: document exceeds %d bytes", ErrMalformedConfig, tooLarge.Limit))
			return
		}
		rest.WriteBadRequest(w, "Cannot read request body", err.Error())
		return
	}

	config, err := h.service.ImportConfig(r.Context(), data, format)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Info("Venue configuration imported")
	rest.WriteJSON(w, http.StatusOK, config)
}

// GetOptions godoc
// @Summary Selectable options
// @Description Active locations, effective categories and priorities for the event form
// @Tags Config
// @Produce json
// @Success 200 {object} OptionsDTO
// @Router /api/config/options [get]
// @Security XVenueCode
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting selectable options")
	config, err := h.service.GetConfig(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, OptionsDTO{
		Locations:  ActiveLocations(config),
		Categories: EffectiveCategories(config),
		Priorities: EffectivePriorities(config),
	})
}

// ListOptions godoc
// @Summary List an option list
// @Description Every entry of the list including inactive ones. Categories and priorities start with the defaults.
// @Tags Config
// @Produce json
// @Param kind path string true "locations, categories or priorities"
// @Success 200 {array} object
// @Failure 400 {object} rest.ErrorResponse "Unknown list"
// @Router /api/config/{kind} [get]
// @Security XVenueCode
func (h *Handler) ListOptions(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Tracef("Listing %s", kind)

	var options any
	switch kind {
	case KindLocations:
		options, err = h.service.ListLocations(r.Context())
	case KindCategories:
		options, err = h.service.ListCategories(r.Context())
	case KindPriorities:
		options, err = h.service.ListPriorities(r.Context())
	}
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, options)
}

// AddOption godoc
// @Summary Add a custom option
// @Description The id is derived from the name when omitted
// @Tags Config
// @Accept json
// @Produce json
// @Param kind path string true "locations, categories or priorities"
// @Success 201 {object} object
// @Failure 400 {object} rest.ErrorResponse "Invalid option"
// @Router /api/config/{kind} [post]
// @Security XVenueCode
func (h *Handler) AddOption(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Adding option to %s", kind)

	var added any
	switch kind {
	case KindLocations:
		location := LocationOption{IsActive: true}
		if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
			rest.WriteBadRequest(w, "Invalid request body format", err.Error())
			return
		}
		added, err = h.service.AddLocation(r.Context(), location)
	case KindCategories:
		category := CategoryOption{IsActive: true}
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			rest.WriteBadRequest(w, "Invalid request body format", err.Error())
			return
		}
		added, err = h.service.AddCategory(r.Context(), category)
	case KindPriorities:
		priority := PriorityOption{IsActive: true}
		if err := json.NewDecoder(r.Body).Decode(&priority); err != nil {
			rest.WriteBadRequest(w, "Invalid request body format", err.Error())
			return
		}
		added, err = h.service.AddPriority(r.Context(), priority)
	}
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, added)
}

// ToggleOption godoc
// @Summary Activate or deactivate a custom option
// @Description Unknown ids leave the configuration unchanged
// @Tags Config
// @Produce json
// @Param kind path string true "locations, categories or priorities"
// @Param id path string true "Option id"
// @Success 200 {object} VenueConfig
// @Failure 400 {object} rest.ErrorResponse "Default options are read-only"
// @Router /api/config/{kind}/{id}/toggle [patch]
// @Security XVenueCode
func (h *Handler) ToggleOption(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := ParseKind(vars["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Toggling %s/%s", kind, vars["id"])

	config, err := h.service.ToggleOption(r.Context(), kind, vars["id"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, config)
}

// RemoveOption godoc
// @Summary Remove a custom option
// @Tags Config
// @Produce json
// @Param kind path string true "locations, categories or priorities"
// @Param id path string true "Option id"
// @Success 200 {object} VenueConfig
// @Failure 400 {object} rest.ErrorResponse "Default options are read-only"
// @Failure 404 {object} rest.ErrorResponse "Option not found"
// @Router /api/config/{kind}/{id} [delete]
// @Security XVenueCode
func (h *Handler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := ParseKind(vars["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debugf("Removing %s/%s", kind, vars["id"])

	config, err := h.service.RemoveOption(r.Context(), kind, vars["id"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, config)
}
