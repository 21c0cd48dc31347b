package venue_config

import (
	"fmt"

	"github.com/venuecal/venuecal/internal/apperr"
)

var ErrConfigNotFound = fmt.Errorf("venue configuration %w", apperr.ErrNotFound)
var ErrOptionNotFound = fmt.Errorf("option %w", apperr.ErrNotFound)
var ErrMalformedConfig = fmt.Errorf("cannot read configuration: %w", apperr.ErrMalformedConfig)
var ErrReadOnlyOption = apperr.Invalid("id", "default options are read-only")

type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

// VenueConfig is the effective configuration of a venue: defaults with the venue's overrides applied.
type VenueConfig struct {
	CompanyName          string           `json:"companyName" yaml:"companyName"`
	Logo                 string           `json:"logo" yaml:"logo"`
	Tagline              string           `json:"tagline" yaml:"tagline"`
	PrimaryColor         string           `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor       string           `json:"secondaryColor" yaml:"secondaryColor"`
	VenueName            string           `json:"venueName" yaml:"venueName"`
	VenueAddress         string           `json:"venueAddress" yaml:"venueAddress"`
	VenuePhone           string           `json:"venuePhone" yaml:"venuePhone"`
	VenueEmail           string           `json:"venueEmail" yaml:"venueEmail"`
	VenueWebsite         string           `json:"venueWebsite" yaml:"venueWebsite"`
	Locations            []LocationOption `json:"locations" yaml:"locations"`
	CustomCategories     []CategoryOption `json:"customCategories" yaml:"customCategories"`
	CustomPriorities     []PriorityOption `json:"customPriorities" yaml:"customPriorities"`
	DefaultEventDuration int              `json:"defaultEventDuration" yaml:"defaultEventDuration"`
	DefaultCategory      string           `json:"defaultCategory" yaml:"defaultCategory"`
	DefaultPriority      string           `json:"defaultPriority" yaml:"defaultPriority"`
	TimeFormat           TimeFormat       `json:"timeFormat" yaml:"timeFormat"`
	DateFormat           string           `json:"dateFormat" yaml:"dateFormat"`
	FirstDayOfWeek       int              `json:"firstDayOfWeek" yaml:"firstDayOfWeek"`
	Features             Features         `json:"features" yaml:"features"`
}

type Features struct {
	ShowAttendees        bool `json:"showAttendees" yaml:"showAttendees"`
	ShowLocation         bool `json:"showLocation" yaml:"showLocation"`
	ShowDescription      bool `json:"showDescription" yaml:"showDescription"`
	AllowRecurring       bool `json:"allowRecurring" yaml:"allowRecurring"`
	AllowFileAttachments bool `json:"allowFileAttachments" yaml:"allowFileAttachments"`
}

type LocationOption struct {
	Id       string `json:"id" yaml:"id"`
	VenueId  int    `json:"venueId" yaml:"venueId"`
	Name     string `json:"name" yaml:"name"`
	Address  string `json:"address" yaml:"address"`
	Capacity int    `json:"capacity" yaml:"capacity"`
	IsActive bool   `json:"isActive" yaml:"isActive"`
}

// CategoryOption is either a system default (VenueId == nil) or owned by a venue.
type CategoryOption struct {
	Id       string `json:"id" yaml:"id"`
	VenueId  *int   `json:"venueId" yaml:"venueId"`
	Name     string `json:"name" yaml:"name"`
	Color    string `json:"color" yaml:"color"`
	IsActive bool   `json:"isActive" yaml:"isActive"`
}

type PriorityOption struct {
	Id       string `json:"id" yaml:"id"`
	VenueId  *int   `json:"venueId" yaml:"venueId"`
	Name     string `json:"name" yaml:"name"`
	Color    string `json:"color" yaml:"color"`
	Level    int    `json:"level" yaml:"level"`
	IsActive bool   `json:"isActive" yaml:"isActive"`
}

func (c CategoryOption) IsDefault() bool { return c.VenueId == nil }

func (p PriorityOption) IsDefault() bool { return p.VenueId == nil }

// ConfigPatch carries a partial configuration. A nil pointer or nil slice means "not present";
// present values replace the corresponding field wholesale, except Features which merges flag by flag.
// The venue's stored overrides use the same shape.
type ConfigPatch struct {
	CompanyName          *string          `json:"companyName,omitempty" yaml:"companyName,omitempty"`
	Logo                 *string          `json:"logo,omitempty" yaml:"logo,omitempty"`
	Tagline              *string          `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	PrimaryColor         *string          `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty"`
	SecondaryColor       *string          `json:"secondaryColor,omitempty" yaml:"secondaryColor,omitempty"`
	VenueName            *string          `json:"venueName,omitempty" yaml:"venueName,omitempty"`
	VenueAddress         *string          `json:"venueAddress,omitempty" yaml:"venueAddress,omitempty"`
	VenuePhone           *string          `json:"venuePhone,omitempty" yaml:"venuePhone,omitempty"`
	VenueEmail           *string          `json:"venueEmail,omitempty" yaml:"venueEmail,omitempty"`
	VenueWebsite         *string          `json:"venueWebsite,omitempty" yaml:"venueWebsite,omitempty"`
	Locations            []LocationOption `json:"locations,omitempty" yaml:"locations,omitempty"`
	CustomCategories     []CategoryOption `json:"customCategories,omitempty" yaml:"customCategories,omitempty"`
	CustomPriorities     []PriorityOption `json:"customPriorities,omitempty" yaml:"customPriorities,omitempty"`
	DefaultEventDuration *int             `json:"defaultEventDuration,omitempty" yaml:"defaultEventDuration,omitempty"`
	DefaultCategory      *string          `json:"defaultCategory,omitempty" yaml:"defaultCategory,omitempty"`
	DefaultPriority      *string          `json:"defaultPriority,omitempty" yaml:"defaultPriority,omitempty"`
	TimeFormat           *TimeFormat      `json:"timeFormat,omitempty" yaml:"timeFormat,omitempty"`
	DateFormat           *string          `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
	FirstDayOfWeek       *int             `json:"firstDayOfWeek,omitempty" yaml:"firstDayOfWeek,omitempty"`
	Features             *FeaturesPatch   `json:"features,omitempty" yaml:"features,omitempty"`
}

type FeaturesPatch struct {
	ShowAttendees        *bool `json:"showAttendees,omitempty" yaml:"showAttendees,omitempty"`
	ShowLocation         *bool `json:"showLocation,omitempty" yaml:"showLocation,omitempty"`
	ShowDescription      *bool `json:"showDescription,omitempty" yaml:"showDescription,omitempty"`
	AllowRecurring       *bool `json:"allowRecurring,omitempty" yaml:"allowRecurring,omitempty"`
	AllowFileAttachments *bool `json:"allowFileAttachments,omitempty" yaml:"allowFileAttachments,omitempty"`
}

// Kind identifies one of the venue editable option lists.
type Kind string

const (
	KindLocations  Kind = "locations"
	KindCategories Kind = "categories"
	KindPriorities Kind = "priorities"
)

func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindLocations, KindCategories, KindPriorities:
		return Kind(value), nil
	default:
		return "", apperr.Invalid("kind", "unknown option list %q", value)
	}
}
