package venue_config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/venuecal/venuecal/internal/apperr"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(value) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", apperr.Invalid("format", "unsupported format %q", value)
	}
}

func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Export serializes the whole configuration. JSON is the default format.
func Export(cfg VenueConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON, "":
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, apperr.Invalid("format", "unsupported format %q", format)
	}
}

// Import reads a configuration document. Fields missing from the document are taken from defaults.
// A document that cannot be read as a configuration object fails with ErrMalformedConfig; a
// readable one with unacceptable values fails with a validation error.
func Import(data []byte, format Format, defaults VenueConfig) (ConfigPatch, VenueConfig, error) {
	patch, err := DecodePatch(data, format)
	if err != nil {
		return ConfigPatch{}, VenueConfig{}, err
	}
	cfg := EffectiveConfig(patch, defaults)
	if err := Validate(cfg); err != nil {
		return ConfigPatch{}, VenueConfig{}, err
	}
	return patch, cfg, nil
}

// DecodePatch reads a partial configuration document.
func DecodePatch(data []byte, format Format) (ConfigPatch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ConfigPatch{}, fmt.Errorf("%w: empty document", ErrMalformedConfig)
	}

	var patch *ConfigPatch
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(trimmed, &patch)
	case FormatJSON, "":
		err = json.Unmarshal(trimmed, &patch)
	default:
		return ConfigPatch{}, apperr.Invalid("format", "unsupported format %q", format)
	}
	if err != nil {
		return ConfigPatch{}, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	if patch == nil {
		return ConfigPatch{}, fmt.Errorf("%w: document is not an object", ErrMalformedConfig)
	}
	return *patch, nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the values a configuration must satisfy to be usable by the calendar.
// All problems are reported together.
func Validate(cfg VenueConfig) error {
	var errs []error
	checkColor := func(field, value string) {
		if !hexColor.MatchString(value) {
			errs = append(errs, apperr.Invalid(field, "%q is not a hex color", value))
		}
	}

	checkColor("primaryColor", cfg.PrimaryColor)
	checkColor("secondaryColor", cfg.SecondaryColor)
	if cfg.FirstDayOfWeek < 0 || cfg.FirstDayOfWeek > 6 {
		errs = append(errs, apperr.Invalid("firstDayOfWeek", "must be between 0 and 6, got %d", cfg.FirstDayOfWeek))
	}
	if cfg.TimeFormat != TimeFormat12h && cfg.TimeFormat != TimeFormat24h {
		errs = append(errs, apperr.Invalid("timeFormat", "must be %q or %q", TimeFormat12h, TimeFormat24h))
	}
	if cfg.DefaultEventDuration <= 0 {
		errs = append(errs, apperr.Invalid("defaultEventDuration", "must be positive"))
	}

	seen := map[string]bool{}
	for _, location := range cfg.Locations {
		if location.Id == "" || location.Name == "" {
			errs = append(errs, apperr.Invalid("locations", "id and name are required"))
		} else if seen["l:"+location.Id] {
			errs = append(errs, apperr.Invalid("locations", "duplicate id %q", location.Id))
		}
		if location.Capacity < 0 {
			errs = append(errs, apperr.Invalid("locations", "capacity of %q cannot be negative", location.Id))
		}
		seen["l:"+location.Id] = true
	}
	for _, category := range cfg.CustomCategories {
		if category.Id == "" || category.Name == "" {
			errs = append(errs, apperr.Invalid("customCategories", "id and name are required"))
		} else if seen["c:"+category.Id] || IsDefaultCategory(category.Id) {
			errs = append(errs, apperr.Invalid("customCategories", "duplicate id %q", category.Id))
		}
		checkColor("customCategories", category.Color)
		seen["c:"+category.Id] = true
	}
	for _, priority := range cfg.CustomPriorities {
		if priority.Id == "" || priority.Name == "" {
			errs = append(errs, apperr.Invalid("customPriorities", "id and name are required"))
		} else if seen["p:"+priority.Id] || IsDefaultPriority(priority.Id) {
			errs = append(errs, apperr.Invalid("customPriorities", "duplicate id %q", priority.Id))
		}
		if priority.Level < 1 || priority.Level > 10 {
			errs = append(errs, apperr.Invalid("customPriorities", "level of %q must be between 1 and 10", priority.Id))
		}
		checkColor("customPriorities", priority.Color)
		seen["p:"+priority.Id] = true
	}

	if _, ok := FindCategory(cfg, cfg.DefaultCategory); !ok {
		errs = append(errs, apperr.Invalid("defaultCategory", "unknown category %q", cfg.DefaultCategory))
	}
	if _, ok := FindPriority(cfg, cfg.DefaultPriority); !ok {
		errs = append(errs, apperr.Invalid("defaultPriority", "unknown priority %q", cfg.DefaultPriority))
	}
	return errors.Join(errs...)
}
