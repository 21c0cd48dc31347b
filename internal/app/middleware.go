package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/rest"
	"github.com/venuecal/venuecal/pkg/venue"
)

const (
	venueHeader     = "X-Venue-Code"
	venueQueryParam = "venue"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(venueMiddleware(deps.VenueService))
}

// venueMiddleware resolves the venue code into the request context. Calendar clients cannot send
// headers, so the code is also accepted as ?venue=.
func venueMiddleware(venues venue.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !needsVenue(req) {
				next.ServeHTTP(w, req)
				return
			}

			code := req.Header.Get(venueHeader)
			if code == "" {
				code = req.URL.Query().Get(venueQueryParam)
			}
			if code == "" {
				rest.WriteBadRequest(w, "Venue required", venueHeader+" header is missing")
				return
			}

			v, err := venues.GetVenueByCode(req.Context(), code)
			if err != nil {
				if errors.Is(err, venue.ErrVenueNotFound) {
					log.Debugf("venue not found: %s", code)
					rest.WriteJSON(w, http.StatusForbidden, rest.ErrorResponse{Error: "unknown venue"})
					return
				}
				log.Errorf("failed to get venue: %v", err)
				rest.WriteError(w, err)
				return
			}
			log.Tracef("venue resolved: %s", v.Code)
			next.ServeHTTP(w, req.WithContext(venue.WithVenue(req.Context(), v)))
		})
	}
}

// needsVenue is true for every API call except provisioning and listing venues.
func needsVenue(req *http.Request) bool {
	if !strings.HasPrefix(req.URL.Path, "/api/") {
		return false
	}
	switch {
	case req.Method == http.MethodPost && req.URL.Path == "/api/venue":
		return false
	case req.Method == http.MethodGet && req.URL.Path == "/api/venues":
		return false
	}
	return true
}
