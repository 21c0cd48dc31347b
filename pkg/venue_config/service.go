package venue_config

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/apperr"
	"github.com/venuecal/venuecal/internal/event_bus"
	"github.com/venuecal/venuecal/pkg/venue"
)

type Service interface {
	GetConfig(ctx context.Context) (VenueConfig, error)
	UpdateConfig(ctx context.Context, updates ConfigPatch) (VenueConfig, error)
	ExportConfig(ctx context.Context, format Format) ([]byte, error)
	ImportConfig(ctx context.Context, data []byte, format Format) (VenueConfig, error)

	ListLocations(ctx context.Context) ([]LocationOption, error)
	ListCategories(ctx context.Context) ([]CategoryOption, error)
	ListPriorities(ctx context.Context) ([]PriorityOption, error)
	AddLocation(ctx context.Context, location LocationOption) (LocationOption, error)
	AddCategory(ctx context.Context, category CategoryOption) (CategoryOption, error)
	AddPriority(ctx context.Context, priority PriorityOption) (PriorityOption, error)
	ToggleOption(ctx context.Context, kind Kind, id string) (VenueConfig, error)
	RemoveOption(ctx context.Context, kind Kind, id string) (VenueConfig, error)
}

// State of a venue's configuration inside the service.
type State int

const (
	Uninitialized State = iota
	Loaded
	Modified
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Modified:
		return "modified"
	default:
		return "uninitialized"
	}
}

type cachedConfig struct {
	state  State
	stored ConfigPatch
	config VenueConfig
}

// ServiceImpl keeps the effective configuration of every venue it has seen. The cached copy only
// changes after the repository has acknowledged a write. Concurrent writers to the same venue are
// serialized and the last one wins.
type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	defaults VenueConfig

	mu      sync.RWMutex
	writeMu sync.Mutex
	cache   map[int]*cachedConfig
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		eventBus: eventBus,
		defaults: Defaults(),
		cache:    map[int]*cachedConfig{},
	}
}

// State reports where the venue's configuration is in its lifecycle.
func (s *ServiceImpl) State(venueId int) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cached, ok := s.cache[venueId]; ok {
		return cached.state
	}
	return Uninitialized
}

func (s *ServiceImpl) GetConfig(ctx context.Context) (VenueConfig, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return VenueConfig{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	cached, err := s.load(ctx, venueId)
	if err != nil {
		return VenueConfig{}, err
	}
	return cached.config, nil
}

// load returns a snapshot of the cached configuration, reading it from the repository on first use.
func (s *ServiceImpl) load(ctx context.Context, venueId int) (cachedConfig, error) {
	s.mu.RLock()
	cached, ok := s.cache[venueId]
	if ok && cached.state != Uninitialized {
		snapshot := *cached
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	stored, err := s.repo.GetConfig(ctx, venueId)
	if err != nil {
		return cachedConfig{}, fmt.Errorf("failed to load configuration of venue %d: %w", venueId, err)
	}
	stampVenue(&stored, venueId)
	loaded := cachedConfig{
		state:  Loaded,
		stored: stored,
		config: EffectiveConfig(stored, s.defaults),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.cache[venueId]; ok && existing.state != Uninitialized {
		return *existing, nil
	}
	s.cache[venueId] = &loaded
	log.Debugf("configuration of venue %d loaded", venueId)
	return loaded, nil
}

func (s *ServiceImpl) UpdateConfig(ctx context.Context, updates ConfigPatch) (VenueConfig, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return VenueConfig{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.load(ctx, venueId)
	if err != nil {
		return VenueConfig{}, err
	}
	return s.store(ctx, venueId, current.stored.Overlay(updates))
}

// store validates and persists the venue's new overrides and only then replaces the cached copy.
// Callers hold writeMu.
func (s *ServiceImpl) store(ctx context.Context, venueId int, stored ConfigPatch) (VenueConfig, error) {
	stampVenue(&stored, venueId)
	config := EffectiveConfig(stored, s.defaults)
	if err := Validate(config); err != nil {
		return VenueConfig{}, err
	}

	s.setState(venueId, Modified)
	if err := s.repo.StoreConfig(ctx, venueId, stored); err != nil {
		s.setState(venueId, Loaded)
		return VenueConfig{}, fmt.Errorf("failed to store configuration of venue %d: %w", venueId, err)
	}

	s.mu.Lock()
	s.cache[venueId] = &cachedConfig{state: Loaded, stored: stored, config: config}
	s.mu.Unlock()

	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.VenueConfigUpdated, event_bus.VenueConfigChanged{VenueId: venueId}))
	if err != nil {
		log.Errorf("failed to publish configuration change of venue %d: %v", venueId, err)
	}
	return config, nil
}

func (s *ServiceImpl) setState(venueId int, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[venueId]; ok {
		cached.state = state
	}
}

func (s *ServiceImpl) ExportConfig(ctx context.Context, format Format) ([]byte, error) {
	config, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return Export(config, format)
}

// ImportConfig replaces the venue's overrides with the document. Missing fields fall back to defaults.
func (s *ServiceImpl) ImportConfig(ctx context.Context, data []byte, format Format) (VenueConfig, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return VenueConfig{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	imported, _, err := Import(data, format, s.defaults)
	if err != nil {
		return VenueConfig{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.load(ctx, venueId); err != nil {
		return VenueConfig{}, err
	}
	return s.store(ctx, venueId, imported)
}

func (s *ServiceImpl) ListLocations(ctx context.Context) ([]LocationOption, error) {
	config, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return config.Locations, nil
}

// ListCategories returns the flat editor list: defaults first (VenueId nil), then the venue's own.
func (s *ServiceImpl) ListCategories(ctx context.Context) ([]CategoryOption, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current venue: %w", err)
	}
	categories, err := s.repo.ListCategories(ctx, venueId)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *ServiceImpl) ListPriorities(ctx context.Context) ([]PriorityOption, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current venue: %w", err)
	}
	priorities, err := s.repo.ListPriorities(ctx, venueId)
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	return priorities, nil
}

func (s *ServiceImpl) AddLocation(ctx context.Context, location LocationOption) (LocationOption, error) {
	location.Name = strings.TrimSpace(location.Name)
	if location.Name == "" {
		return LocationOption{}, apperr.Invalid("name", "is required")
	}
	location.Id = optionId(location.Id, location.Name)

	added, err := s.edit(ctx, func(config VenueConfig) (ConfigPatch, error) {
		if containsId(config.Locations, location.Id) {
			return ConfigPatch{}, apperr.Invalid("id", "location %q already exists", location.Id)
		}
		return ConfigPatch{Locations: append(slices.Clone(config.Locations), location)}, nil
	})
	if err != nil {
		return LocationOption{}, err
	}
	return added.Locations[len(added.Locations)-1], nil
}

func (s *ServiceImpl) AddCategory(ctx context.Context, category CategoryOption) (CategoryOption, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return CategoryOption{}, apperr.Invalid("name", "is required")
	}
	category.Id = optionId(category.Id, category.Name)

	added, err := s.edit(ctx, func(config VenueConfig) (ConfigPatch, error) {
		if IsDefaultCategory(category.Id) {
			return ConfigPatch{}, apperr.Invalid("id", "%q is a default category", category.Id)
		}
		if containsId(config.CustomCategories, category.Id) {
			return ConfigPatch{}, apperr.Invalid("id", "category %q already exists", category.Id)
		}
		return ConfigPatch{CustomCategories: append(slices.Clone(config.CustomCategories), category)}, nil
	})
	if err != nil {
		return CategoryOption{}, err
	}
	return added.CustomCategories[len(added.CustomCategories)-1], nil
}

func (s *ServiceImpl) AddPriority(ctx context.Context, priority PriorityOption) (PriorityOption, error) {
	priority.Name = strings.TrimSpace(priority.Name)
	if priority.Name == "" {
		return PriorityOption{}, apperr.Invalid("name", "is required")
	}
	priority.Id = optionId(priority.Id, priority.Name)

	added, err := s.edit(ctx, func(config VenueConfig) (ConfigPatch, error) {
		if IsDefaultPriority(priority.Id) {
			return ConfigPatch{}, apperr.Invalid("id", "%q is a default priority", priority.Id)
		}
		if containsId(config.CustomPriorities, priority.Id) {
			return ConfigPatch{}, apperr.Invalid("id", "priority %q already exists", priority.Id)
		}
		return ConfigPatch{CustomPriorities: append(slices.Clone(config.CustomPriorities), priority)}, nil
	})
	if err != nil {
		return PriorityOption{}, err
	}
	return added.CustomPriorities[len(added.CustomPriorities)-1], nil
}

// ToggleOption flips IsActive of a custom option. Unknown ids are ignored; default options are read-only.
func (s *ServiceImpl) ToggleOption(ctx context.Context, kind Kind, id string) (VenueConfig, error) {
	if isDefaultOption(kind, id) {
		return VenueConfig{}, ErrReadOnlyOption
	}
	return s.edit(ctx, func(config VenueConfig) (ConfigPatch, error) {
		switch kind {
		case KindLocations:
			return ConfigPatch{Locations: ToggleActive(config.Locations, id)}, nil
		case KindCategories:
			return ConfigPatch{CustomCategories: ToggleActive(config.CustomCategories, id)}, nil
		case KindPriorities:
			return ConfigPatch{CustomPriorities: ToggleActive(config.CustomPriorities, id)}, nil
		}
		return ConfigPatch{}, apperr.Invalid("kind", "unknown option list %q", kind)
	})
}

// RemoveOption deletes a custom option. Unlike toggling, removing an unknown id is reported.
func (s *ServiceImpl) RemoveOption(ctx context.Context, kind Kind, id string) (VenueConfig, error) {
	if isDefaultOption(kind, id) {
		return VenueConfig{}, ErrReadOnlyOption
	}
	return s.edit(ctx, func(config VenueConfig) (ConfigPatch, error) {
		var patch ConfigPatch
		var removed bool
		switch kind {
		case KindLocations:
			patch.Locations, removed = Remove(config.Locations, id)
		case KindCategories:
			patch.CustomCategories, removed = Remove(config.CustomCategories, id)
		case KindPriorities:
			patch.CustomPriorities, removed = Remove(config.CustomPriorities, id)
		default:
			return ConfigPatch{}, apperr.Invalid("kind", "unknown option list %q", kind)
		}
		if !removed {
			return ConfigPatch{}, fmt.Errorf("%s %q: %w", kind, id, ErrOptionNotFound)
		}
		return patch, nil
	})
}

// edit applies a change computed from the current configuration. An unchanged result is not persisted.
func (s *ServiceImpl) edit(ctx context.Context, change func(config VenueConfig) (ConfigPatch, error)) (VenueConfig, error) {
	venueId, err := venue.CurrentId(ctx)
	if err != nil {
		return VenueConfig{}, fmt.Errorf("failed to get current venue: %w", err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.load(ctx, venueId)
	if err != nil {
		return VenueConfig{}, err
	}
	updates, err := change(current.config)
	if err != nil {
		return VenueConfig{}, err
	}
	stored := current.stored.Overlay(updates)
	if reflect.DeepEqual(EffectiveConfig(stored, s.defaults), current.config) {
		return current.config, nil
	}
	return s.store(ctx, venueId, stored)
}

func isDefaultOption(kind Kind, id string) bool {
	switch kind {
	case KindCategories:
		return IsDefaultCategory(id)
	case KindPriorities:
		return IsDefaultPriority(id)
	default:
		return false
	}
}

func optionId(id, name string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Slugify(name)
	}
	return id
}

// stampVenue marks every option in the patch as owned by the venue. Lists are copied first since
// they may be shared with the cached configuration.
func stampVenue(patch *ConfigPatch, venueId int) {
	patch.Locations = slices.Clone(patch.Locations)
	patch.CustomCategories = slices.Clone(patch.CustomCategories)
	patch.CustomPriorities = slices.Clone(patch.CustomPriorities)
	for i := range patch.Locations {
		patch.Locations[i].VenueId = venueId
	}
	for i := range patch.CustomCategories {
		patch.CustomCategories[i].VenueId = &venueId
	}
	for i := range patch.CustomPriorities {
		patch.CustomPriorities[i].VenueId = &venueId
	}
}
