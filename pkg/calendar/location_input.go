package calendar

import (
	"strings"

	"github.com/venuecal/venuecal/internal/apperr"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

// LocationInput is what the event form submits for the location: either one of the venue's
// locations or free text. It is resolved once, when the event is saved.
type LocationInput interface {
	resolve(config venue_config.VenueConfig) (*string, error)
}

// SelectedLocation refers to an active location of the venue by id.
type SelectedLocation struct {
	LocationId string
}

// FreeTextLocation is typed by the user. Blank text means no location.
type FreeTextLocation struct {
	Text string
}

func (s SelectedLocation) resolve(config venue_config.VenueConfig) (*string, error) {
	location, ok := venue_config.FindActiveLocation(config, s.LocationId)
	if !ok {
		return nil, apperr.Invalid("location", "unknown location %q", s.LocationId)
	}
	return &location.Name, nil
}

func (f FreeTextLocation) resolve(venue_config.VenueConfig) (*string, error) {
	text := strings.TrimSpace(f.Text)
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

func resolveLocation(input LocationInput, config venue_config.VenueConfig) (*string, error) {
	if input == nil {
		return nil, nil
	}
	return input.resolve(config)
}
