package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecal/venuecal/internal/apperr"
	"github.com/venuecal/venuecal/pkg/calendar"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

func TestGenerate_IsDeterministic(t *testing.T) {
	opts := Options{Year: 2024, Month: time.June, Count: 25, Seed: 42, Locations: []string{"hall", "roof"}}

	first, err := Generate(opts)
	require.NoError(t, err)
	second, err := Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	opts.Seed = 43
	other, err := Generate(opts)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestGenerate_DraftsStartInMonth(t *testing.T) {
	drafts, err := Generate(Options{
		Year:       2024,
		Month:      time.February,
		Count:      100,
		Seed:       7,
		Categories: []string{"wedding", "meeting"},
		Priorities: []string{"high"},
	})

	require.NoError(t, err)
	require.Len(t, drafts, 100)
	for _, d := range drafts {
		assert.Equal(t, 2024, d.StartDate.Year())
		assert.Equal(t, time.February, d.StartDate.Month())
		assert.True(t, d.EndDate.After(d.StartDate), d.Title)
		assert.Contains(t, []string{"wedding", "meeting"}, d.Category)
		assert.Equal(t, "high", d.Priority)
		assert.NotEmpty(t, d.Title)
		assert.LessOrEqual(t, len(d.Attendees), 3)
		assert.Nil(t, d.Location)
	}
}

func TestGenerate_PicksLocations(t *testing.T) {
	drafts, err := Generate(Options{Year: 2024, Month: time.June, Count: 10, Seed: 1, Locations: []string{"hall"}})

	require.NoError(t, err)
	for _, d := range drafts {
		assert.Equal(t, calendar.SelectedLocation{LocationId: "hall"}, d.Location)
		assert.Empty(t, d.Category)
	}
}

func TestGenerate_InvalidOptions(t *testing.T) {
	_, err := Generate(Options{Year: 2024, Month: 13, Count: 1})
	assert.True(t, apperr.IsValidation(err))

	_, err = Generate(Options{Year: 2024, Month: time.June, Count: -1})
	assert.True(t, apperr.IsValidation(err))

	drafts, err := Generate(Options{Year: 2024, Month: time.June})
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestOptions_WithVenueOptions(t *testing.T) {
	cfg := venue_config.Defaults()
	cfg.Locations = []venue_config.LocationOption{
		{Id: "hall", Name: "Main Hall", IsActive: true},
		{Id: "roof", Name: "Roof", IsActive: false},
	}

	opts := Options{Year: 2024, Month: time.June, Locations: []string{"stale"}}.WithVenueOptions(cfg)

	assert.Equal(t, []string{"hall"}, opts.Locations)
	assert.Equal(t, []string{"meeting", "personal", "work", "other"}, opts.Categories)
	assert.Equal(t, []string{"high", "medium", "low"}, opts.Priorities)
	assert.Equal(t, time.June, opts.Month)
}
