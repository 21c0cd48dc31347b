package app

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/config"
	"github.com/venuecal/venuecal/internal/event_bus"
	"github.com/venuecal/venuecal/internal/utils"
	"github.com/venuecal/venuecal/internal/websocket"
	"github.com/venuecal/venuecal/pkg/calendar"
	"github.com/venuecal/venuecal/pkg/google"
	"github.com/venuecal/venuecal/pkg/venue"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	VenueService venue.Service
	VenueHandler *venue.Handler

	VenueConfigService *venue_config.ServiceImpl
	VenueConfigHandler *venue_config.Handler

	CalendarService *calendar.ServiceImpl
	CalendarHandler *calendar.Handler

	// nil when websockets are disabled
	Hub              *websocket.Hub
	WebsocketHandler *websocket.Handler

	// nil when Google publishing is not configured
	GooglePublisher *google.Publisher
	GoogleHandler   *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := newDependencies(
		venue.NewRepository(db),
		venue_config.NewRepository(db),
		calendar.NewRepository(db),
		utils.SystemClock{},
		cfg,
	)

	if cfg.Google.Enabled() {
		client, err := google.NewClient(ctx, cfg.Google.CredentialsFile)
		if err != nil {
			return nil, err
		}
		deps.GooglePublisher = google.NewPublisher(client, deps.VenueService.GetVenue, cfg.Google.TimeZone)
		deps.GooglePublisher.Subscribe(deps.EventBus)
		deps.GoogleHandler = google.NewHandler(client)
		log.Info("Publishing events to Google Calendar")
	}

	return deps, nil
}

func newDependencies(
	venueRepo venue.Repository,
	configRepo venue_config.Repository,
	calendarRepo calendar.Repository,
	clock utils.Clock,
	cfg config.Application,
) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = clock

	deps.VenueService = venue.NewService(venueRepo)
	deps.VenueHandler = venue.NewHandler(deps.VenueService)

	deps.VenueConfigService = venue_config.NewService(configRepo, deps.EventBus)
	deps.VenueConfigHandler = venue_config.NewHandler(deps.VenueConfigService)

	deps.CalendarService = calendar.NewService(calendarRepo, deps.VenueConfigService.GetConfig, deps.EventBus, deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	if cfg.Websocket.Enabled {
		deps.Hub = websocket.NewHub()
		websocket.SubscribeToBus(deps.EventBus, deps.Hub)
		deps.WebsocketHandler = websocket.NewHandler(deps.Hub, originPatterns(cfg.Host))
	}
	return deps
}

func originPatterns(host string) []string {
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		log.Warnf("cannot derive websocket origin from host %q, accepting same-origin only", host)
		return nil
	}
	return []string{u.Host}
}
