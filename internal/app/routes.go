package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Venues
	r.HandleFunc("/api/venue", deps.VenueHandler.CreateVenue).Methods("POST")
	r.HandleFunc("/api/venues", deps.VenueHandler.ListVenues).Methods("GET")
	r.HandleFunc("/api/venue/current", deps.VenueHandler.CurrentVenue).Methods("GET")
	r.HandleFunc("/api/venue/current", deps.VenueHandler.UpdateCurrentVenue).Methods("PUT")

	// Venue configuration
	r.HandleFunc("/api/config", deps.VenueConfigHandler.GetConfig).Methods("GET")
	r.HandleFunc("/api/config", deps.VenueConfigHandler.UpdateConfig).Methods("PUT")
	r.HandleFunc("/api/config/export", deps.VenueConfigHandler.ExportConfig).Methods("GET")
	r.HandleFunc("/api/config/import", deps.VenueConfigHandler.ImportConfig).Methods("POST")
	r.HandleFunc("/api/config/options", deps.VenueConfigHandler.GetOptions).Methods("GET")
	r.HandleFunc("/api/config/{kind}", deps.VenueConfigHandler.ListOptions).Methods("GET")
	r.HandleFunc("/api/config/{kind}", deps.VenueConfigHandler.AddOption).Methods("POST")
	r.HandleFunc("/api/config/{kind}/{id}/toggle", deps.VenueConfigHandler.ToggleOption).Methods("PATCH")
	r.HandleFunc("/api/config/{kind}/{id}", deps.VenueConfigHandler.RemoveOption).Methods("DELETE")

	// Calendar
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/day", deps.CalendarHandler.GetDay).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/calendar/month", deps.CalendarHandler.GetMonth).Queries("year", "{year}", "month", "{month}").Methods("GET")
	r.HandleFunc("/api/calendar/stats", deps.CalendarHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/calendar/feed.ics", deps.CalendarHandler.GetFeed).Methods("GET")

	// Live refresh
	if deps.WebsocketHandler != nil {
		r.HandleFunc("/api/ws", deps.WebsocketHandler.Connect).Methods("GET")
	}

	// Google integration
	if deps.GoogleHandler != nil {
		r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	}
}
