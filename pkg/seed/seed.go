// Package seed generates sample events for demos and manual testing.
package seed

import (
	"math/rand/v2"
	"time"

	"github.com/venuecal/venuecal/internal/apperr"
	"github.com/venuecal/venuecal/pkg/calendar"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

var titles = []string{
	"Wedding reception",
	"Board meeting",
	"Product launch",
	"Charity gala",
	"Team offsite",
	"Birthday dinner",
	"Wine tasting",
	"Jazz night",
	"Networking breakfast",
	"Photo shoot",
	"Quarterly review",
	"Cooking class",
}

var people = []string{"Ann", "Bob", "Carla", "Dev", "Eve", "Farid", "Greta", "Hugo", "Ines", "Jon"}

type Options struct {
	Year  int
	Month time.Month
	Count int
	Seed  uint64
	// Categories, Priorities and Locations are the ids to pick from. Empty means the
	// venue defaults apply.
	Categories []string
	Priorities []string
	Locations  []string
}

// WithVenueOptions picks from the venue's active categories, priorities and locations.
func (o Options) WithVenueOptions(cfg venue_config.VenueConfig) Options {
	o.Categories, o.Priorities, o.Locations = nil, nil, nil
	for _, c := range venue_config.EffectiveCategories(cfg) {
		o.Categories = append(o.Categories, c.Id)
	}
	for _, p := range venue_config.EffectivePriorities(cfg) {
		o.Priorities = append(o.Priorities, p.Id)
	}
	for _, l := range venue_config.ActiveLocations(cfg) {
		o.Locations = append(o.Locations, l.Id)
	}
	return o
}

// Generate returns opts.Count drafts starting in the given month. The same options always
// produce the same drafts.
func Generate(opts Options) ([]calendar.EventDraft, error) {
	if opts.Count < 0 {
		return nil, apperr.Invalid("count", "must not be negative")
	}
	if opts.Month < time.January || opts.Month > time.December {
		return nil, apperr.Invalid("month", "must be between 1 and 12")
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	daysInMonth := time.Date(opts.Year, opts.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	drafts := make([]calendar.EventDraft, 0, opts.Count)
	for range opts.Count {
		day := 1 + rng.IntN(daysInMonth)
		start := time.Date(opts.Year, opts.Month, day, 8+rng.IntN(13), 30*rng.IntN(2), 0, 0, time.UTC)
		end := start.Add(time.Duration(1+rng.IntN(4)) * time.Hour)
		// every fifth event or so runs over several days
		if rng.IntN(5) == 0 {
			end = end.AddDate(0, 0, 1+rng.IntN(3))
		}

		draft := calendar.EventDraft{
			Title:     titles[rng.IntN(len(titles))],
			StartDate: start,
			EndDate:   end,
			Category:  pick(rng, opts.Categories),
			Priority:  pick(rng, opts.Priorities),
			Attendees: attendees(rng),
		}
		if location := pick(rng, opts.Locations); location != "" {
			draft.Location = calendar.SelectedLocation{LocationId: location}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func pick(rng *rand.Rand, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[rng.IntN(len(ids))]
}

func attendees(rng *rand.Rand) []string {
	perm := rng.Perm(len(people))
	n := rng.IntN(4)
	result := make([]string, 0, n)
	for _, i := range perm[:n] {
		result = append(result, people[i])
	}
	return result
}
