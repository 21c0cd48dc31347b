package venue_config

import (
	"slices"
	"sort"
)

var defaultCategories = []CategoryOption{
	{Id: "meeting", Name: "Meeting", Color: "#3b82f6", IsActive: true},
	{Id: "personal", Name: "Personal", Color: "#10b981", IsActive: true},
	{Id: "work", Name: "Work", Color: "#f59e0b", IsActive: true},
	{Id: "other", Name: "Other", Color: "#6b7280", IsActive: true},
}

var defaultPriorities = []PriorityOption{
	{Id: "high", Name: "High", Color: "#ef4444", Level: 8, IsActive: true},
	{Id: "medium", Name: "Medium", Color: "#f59e0b", Level: 5, IsActive: true},
	{Id: "low", Name: "Low", Color: "#10b981", Level: 2, IsActive: true},
}

// DefaultCategories returns the system-wide categories every venue gets, in display order.
func DefaultCategories() []CategoryOption {
	return slices.Clone(defaultCategories)
}

// DefaultPriorities returns the system-wide priorities every venue gets, in display order.
func DefaultPriorities() []PriorityOption {
	return slices.Clone(defaultPriorities)
}

func IsDefaultCategory(id string) bool {
	return slices.ContainsFunc(defaultCategories, func(c CategoryOption) bool { return c.Id == id })
}

func IsDefaultPriority(id string) bool {
	return slices.ContainsFunc(defaultPriorities, func(p PriorityOption) bool { return p.Id == id })
}

// Defaults is the configuration of a venue that has not overridden anything.
func Defaults() VenueConfig {
	return VenueConfig{
		CompanyName:          "Event Planner",
		PrimaryColor:         "#3b82f6",
		SecondaryColor:       "#1e40af",
		Locations:            []LocationOption{},
		CustomCategories:     []CategoryOption{},
		CustomPriorities:     []PriorityOption{},
		DefaultEventDuration: 60,
		DefaultCategory:      "meeting",
		DefaultPriority:      "medium",
		TimeFormat:           TimeFormat12h,
		DateFormat:           "MM/DD/YYYY",
		FirstDayOfWeek:       0,
		Features: Features{
			ShowAttendees:   true,
			ShowLocation:    true,
			ShowDescription: true,
		},
	}
}

// EffectiveConfig overlays the venue's stored overrides on defaults, field by field.
func EffectiveConfig(stored ConfigPatch, defaults VenueConfig) VenueConfig {
	return stored.Apply(defaults)
}

// UpdateConfig applies updates to the current configuration with the same rules as EffectiveConfig.
func UpdateConfig(current VenueConfig, updates ConfigPatch) VenueConfig {
	return updates.Apply(current)
}

// Apply returns base with every present field of p replacing the one in base. The result never
// shares list storage with base or p.
func (p ConfigPatch) Apply(base VenueConfig) VenueConfig {
	cfg := base
	setIfPresent(&cfg.CompanyName, p.CompanyName)
	setIfPresent(&cfg.Logo, p.Logo)
	setIfPresent(&cfg.Tagline, p.Tagline)
	setIfPresent(&cfg.PrimaryColor, p.PrimaryColor)
	setIfPresent(&cfg.SecondaryColor, p.SecondaryColor)
	setIfPresent(&cfg.VenueName, p.VenueName)
	setIfPresent(&cfg.VenueAddress, p.VenueAddress)
	setIfPresent(&cfg.VenuePhone, p.VenuePhone)
	setIfPresent(&cfg.VenueEmail, p.VenueEmail)
	setIfPresent(&cfg.VenueWebsite, p.VenueWebsite)
	setIfPresent(&cfg.DefaultEventDuration, p.DefaultEventDuration)
	setIfPresent(&cfg.DefaultCategory, p.DefaultCategory)
	setIfPresent(&cfg.DefaultPriority, p.DefaultPriority)
	setIfPresent(&cfg.TimeFormat, p.TimeFormat)
	setIfPresent(&cfg.DateFormat, p.DateFormat)
	setIfPresent(&cfg.FirstDayOfWeek, p.FirstDayOfWeek)

	cfg.Locations = cloneList(firstPresent(p.Locations, base.Locations))
	cfg.CustomCategories = cloneList(firstPresent(p.CustomCategories, base.CustomCategories))
	cfg.CustomPriorities = cloneList(firstPresent(p.CustomPriorities, base.CustomPriorities))

	if p.Features != nil {
		setIfPresent(&cfg.Features.ShowAttendees, p.Features.ShowAttendees)
		setIfPresent(&cfg.Features.ShowLocation, p.Features.ShowLocation)
		setIfPresent(&cfg.Features.ShowDescription, p.Features.ShowDescription)
		setIfPresent(&cfg.Features.AllowRecurring, p.Features.AllowRecurring)
		setIfPresent(&cfg.Features.AllowFileAttachments, p.Features.AllowFileAttachments)
	}
	return cfg
}

// Overlay merges updates on top of p and returns the combined patch, so that for any base
// p.Overlay(u).Apply(base) == u.Apply(p.Apply(base)).
func (p ConfigPatch) Overlay(updates ConfigPatch) ConfigPatch {
	merged := p
	overrideIfPresent(&merged.CompanyName, updates.CompanyName)
	overrideIfPresent(&merged.Logo, updates.Logo)
	overrideIfPresent(&merged.Tagline, updates.Tagline)
	overrideIfPresent(&merged.PrimaryColor, updates.PrimaryColor)
	overrideIfPresent(&merged.SecondaryColor, updates.SecondaryColor)
	overrideIfPresent(&merged.VenueName, updates.VenueName)
	overrideIfPresent(&merged.VenueAddress, updates.VenueAddress)
	overrideIfPresent(&merged.VenuePhone, updates.VenuePhone)
	overrideIfPresent(&merged.VenueEmail, updates.VenueEmail)
	overrideIfPresent(&merged.VenueWebsite, updates.VenueWebsite)
	overrideIfPresent(&merged.DefaultEventDuration, updates.DefaultEventDuration)
	overrideIfPresent(&merged.DefaultCategory, updates.DefaultCategory)
	overrideIfPresent(&merged.DefaultPriority, updates.DefaultPriority)
	overrideIfPresent(&merged.TimeFormat, updates.TimeFormat)
	overrideIfPresent(&merged.DateFormat, updates.DateFormat)
	overrideIfPresent(&merged.FirstDayOfWeek, updates.FirstDayOfWeek)

	if updates.Locations != nil {
		merged.Locations = slices.Clone(updates.Locations)
	}
	if updates.CustomCategories != nil {
		merged.CustomCategories = slices.Clone(updates.CustomCategories)
	}
	if updates.CustomPriorities != nil {
		merged.CustomPriorities = slices.Clone(updates.CustomPriorities)
	}

	if updates.Features != nil {
		features := FeaturesPatch{}
		if p.Features != nil {
			features = *p.Features
		}
		overrideIfPresent(&features.ShowAttendees, updates.Features.ShowAttendees)
		overrideIfPresent(&features.ShowLocation, updates.Features.ShowLocation)
		overrideIfPresent(&features.ShowDescription, updates.Features.ShowDescription)
		overrideIfPresent(&features.AllowRecurring, updates.Features.AllowRecurring)
		overrideIfPresent(&features.AllowFileAttachments, updates.Features.AllowFileAttachments)
		merged.Features = &features
	}
	return merged
}

// PatchOf describes cfg as a patch in which every field is present.
func PatchOf(cfg VenueConfig) ConfigPatch {
	return ConfigPatch{
		CompanyName:          ptr(cfg.CompanyName),
		Logo:                 ptr(cfg.Logo),
		Tagline:              ptr(cfg.Tagline),
		PrimaryColor:         ptr(cfg.PrimaryColor),
		SecondaryColor:       ptr(cfg.SecondaryColor),
		VenueName:            ptr(cfg.VenueName),
		VenueAddress:         ptr(cfg.VenueAddress),
		VenuePhone:           ptr(cfg.VenuePhone),
		VenueEmail:           ptr(cfg.VenueEmail),
		VenueWebsite:         ptr(cfg.VenueWebsite),
		Locations:            cloneList(cfg.Locations),
		CustomCategories:     cloneList(cfg.CustomCategories),
		CustomPriorities:     cloneList(cfg.CustomPriorities),
		DefaultEventDuration: ptr(cfg.DefaultEventDuration),
		DefaultCategory:      ptr(cfg.DefaultCategory),
		DefaultPriority:      ptr(cfg.DefaultPriority),
		TimeFormat:           ptr(cfg.TimeFormat),
		DateFormat:           ptr(cfg.DateFormat),
		FirstDayOfWeek:       ptr(cfg.FirstDayOfWeek),
		Features: &FeaturesPatch{
			ShowAttendees:        ptr(cfg.Features.ShowAttendees),
			ShowLocation:         ptr(cfg.Features.ShowLocation),
			ShowDescription:      ptr(cfg.Features.ShowDescription),
			AllowRecurring:       ptr(cfg.Features.AllowRecurring),
			AllowFileAttachments: ptr(cfg.Features.AllowFileAttachments),
		},
	}
}

// EffectiveCategories lists the default categories followed by the venue's active custom ones in
// stored order. Defaults are always present whatever their IsActive flag says.
func EffectiveCategories(cfg VenueConfig) []CategoryOption {
	categories := DefaultCategories()
	for _, category := range cfg.CustomCategories {
		if category.IsActive {
			categories = append(categories, category)
		}
	}
	return categories
}

// EffectivePriorities lists the default priorities in their fixed order followed by the venue's
// active custom priorities, highest level first. Custom priorities of equal level keep stored order.
func EffectivePriorities(cfg VenueConfig) []PriorityOption {
	custom := make([]PriorityOption, 0, len(cfg.CustomPriorities))
	for _, priority := range cfg.CustomPriorities {
		if priority.IsActive {
			custom = append(custom, priority)
		}
	}
	sort.SliceStable(custom, func(i, j int) bool {
		return custom[i].Level > custom[j].Level
	})
	return append(DefaultPriorities(), custom...)
}

func ActiveLocations(cfg VenueConfig) []LocationOption {
	locations := make([]LocationOption, 0, len(cfg.Locations))
	for _, location := range cfg.Locations {
		if location.IsActive {
			locations = append(locations, location)
		}
	}
	return locations
}

// AllCategories is the editor view: defaults (VenueId == nil) and every custom category, active or not.
func AllCategories(cfg VenueConfig, venueId int) []CategoryOption {
	categories := DefaultCategories()
	for _, category := range cfg.CustomCategories {
		category.VenueId = &venueId
		categories = append(categories, category)
	}
	return categories
}

func AllPriorities(cfg VenueConfig, venueId int) []PriorityOption {
	priorities := DefaultPriorities()
	for _, priority := range cfg.CustomPriorities {
		priority.VenueId = &venueId
		priorities = append(priorities, priority)
	}
	return priorities
}

// FindCategory resolves a category code against the effective list.
func FindCategory(cfg VenueConfig, id string) (CategoryOption, bool) {
	for _, category := range EffectiveCategories(cfg) {
		if category.Id == id {
			return category, true
		}
	}
	return CategoryOption{}, false
}

func FindPriority(cfg VenueConfig, id string) (PriorityOption, bool) {
	for _, priority := range EffectivePriorities(cfg) {
		if priority.Id == id {
			return priority, true
		}
	}
	return PriorityOption{}, false
}

// FindActiveLocation looks a location up by id among the active ones.
func FindActiveLocation(cfg VenueConfig, id string) (LocationOption, bool) {
	for _, location := range ActiveLocations(cfg) {
		if location.Id == id {
			return location, true
		}
	}
	return LocationOption{}, false
}

func setIfPresent[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}

func overrideIfPresent[T any](dst **T, value *T) {
	if value != nil {
		v := *value
		*dst = &v
	}
}

func firstPresent[T any](override, base []T) []T {
	if override != nil {
		return override
	}
	return base
}

// cloneList copies a list and turns nil into an empty list so serialized configs never carry null lists.
func cloneList[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return slices.Clone(list)
}

func ptr[T any](value T) *T {
	return &value
}
