package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteBadRequest is used for request decoding problems that happen before any domain call.
func WriteBadRequest(w http.ResponseWriter, message, details string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

// WriteError maps an error kind onto an HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorResponse{Error: err.Error()})
}

func StatusFor(err error) int {
	var validationErr *apperr.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrMalformedConfig):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
