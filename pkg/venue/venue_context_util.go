package venue

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const VenueKey contextKey = "venue"

var ErrNoVenue = errors.New("venue not found in context")

// CurrentId retrieves the current venue's ID from the context. Returns ErrNoVenue if no venue was resolved.
func CurrentId(ctx context.Context) (int, error) {
	v, ok := ctx.Value(VenueKey).(Venue)
	if !ok {
		log.Trace("venue not found in context")
		return 0, ErrNoVenue
	}
	return v.Id, nil
}

func CurrentVenue(ctx context.Context) (Venue, error) {
	v, ok := ctx.Value(VenueKey).(Venue)
	if !ok {
		log.Trace("venue not found in context")
		return Venue{}, ErrNoVenue
	}
	return v, nil
}

func WithVenue(ctx context.Context, v Venue) context.Context {
	return context.WithValue(ctx, VenueKey, v)
}
