// Command seed writes sample events into a venue's calendar.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/venuecal/venuecal/internal/config"
	"github.com/venuecal/venuecal/internal/database"
	"github.com/venuecal/venuecal/internal/event_bus"
	"github.com/venuecal/venuecal/internal/utils"
	"github.com/venuecal/venuecal/pkg/calendar"
	"github.com/venuecal/venuecal/pkg/seed"
	"github.com/venuecal/venuecal/pkg/venue"
	"github.com/venuecal/venuecal/pkg/venue_config"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	now := time.Now()
	var (
		venueCode  string
		configPath string
		year       int
		month      int
		count      int
		seedValue  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Writes sample events into a venue's calendar",
		Long: `Generates sample events for one month and stores them through the calendar service,
using the venue's active categories, priorities and locations. The same --seed always
produces the same events.`,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				log.Debugf("no .env file loaded: %v", err)
			}
			if level := os.Getenv("LOG_LEVEL"); level != "" {
				if parsed, err := log.ParseLevel(level); err == nil {
					log.SetLevel(parsed)
				}
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, venueCode, seed.Options{
				Year:  year,
				Month: time.Month(month),
				Count: count,
				Seed:  seedValue,
			})
		},
	}

	cmd.Flags().StringVar(&venueCode, "venue", "", "code of the venue to seed")
	cmd.Flags().StringVar(&configPath, "config", "./config/application.yaml", "application config file")
	cmd.Flags().IntVar(&year, "year", now.Year(), "year of the generated events")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month (1-12) of the generated events")
	cmd.Flags().IntVar(&count, "count", 20, "number of events")
	cmd.Flags().Uint64Var(&seedValue, "seed", 1, "random seed")
	_ = cmd.MarkFlagRequired("venue")
	return cmd
}

func run(ctx context.Context, configPath, venueCode string, opts seed.Options) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := venue.NewService(venue.NewRepository(db)).GetVenueByCode(ctx, venueCode)
	if err != nil {
		return fmt.Errorf("failed to get venue %q: %w", venueCode, err)
	}
	ctx = venue.WithVenue(ctx, v)

	bus := event_bus.NewEventBus()
	configService := venue_config.NewService(venue_config.NewRepository(db), bus)
	venueConfig, err := configService.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to get venue configuration: %w", err)
	}

	drafts, err := seed.Generate(opts.WithVenueOptions(venueConfig))
	if err != nil {
		return err
	}
	calendarService := calendar.NewService(calendar.NewRepository(db), configService.GetConfig, bus, utils.SystemClock{})
	events, err := calendarService.AddEvents(ctx, drafts)
	if err != nil {
		return fmt.Errorf("failed to store events: %w", err)
	}
	log.Infof("Seeded %d events into %s for %d-%02d", len(events), v.Code, opts.Year, opts.Month)
	return nil
}
