package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var ErrRemoteEventNotFound = errors.New("google calendar event not found")

// Client is the part of the Google Calendar API the publisher needs.
type Client interface {
	InsertEvent(ctx context.Context, calendarId string, event *gcal.Event) error
	UpdateEvent(ctx context.Context, calendarId string, event *gcal.Event) error
	DeleteEvent(ctx context.Context, calendarId, eventId string) error
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
}

type CalendarItem struct {
	ID      string
	Summary string
}

type ClientImpl struct {
	service *gcal.Service
}

// NewClient authenticates with the service account key at credentialsFile.
func NewClient(ctx context.Context, credentialsFile string) (*ClientImpl, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read Google credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, key, gcal.CalendarEventsScope, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse Google credentials: %w", err)
	}
	service, err := gcal.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar client: %w", err)
	}
	return &ClientImpl{service: service}, nil
}

func (c *ClientImpl) InsertEvent(ctx context.Context, calendarId string, event *gcal.Event) error {
	_, err := c.service.Events.Insert(calendarId, event).Context(ctx).Do()
	return translate(err)
}

func (c *ClientImpl) UpdateEvent(ctx context.Context, calendarId string, event *gcal.Event) error {
	_, err := c.service.Events.Update(calendarId, event.Id, event).Context(ctx).Do()
	return translate(err)
}

func (c *ClientImpl) DeleteEvent(ctx context.Context, calendarId, eventId string) error {
	return translate(c.service.Events.Delete(calendarId, eventId).Context(ctx).Do())
}

func (c *ClientImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	calendars, err := c.service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		log.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		return nil, translate(err)
	}
	items := make([]CalendarItem, 0, len(calendars.Items))
	for _, cal := range calendars.Items {
		items = append(items, CalendarItem{ID: cal.Id, Summary: cal.Summary})
	}
	return items, nil
}

func translate(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return fmt.Errorf("%w: %v", ErrRemoteEventNotFound, err)
	}
	return err
}
