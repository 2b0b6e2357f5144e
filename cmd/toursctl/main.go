// Command toursctl is the operational companion to the API server: schema
// migration and development-data seeding against the configured database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tours-api/internal/config"
	"tours-api/internal/domain/entities"
	"tours-api/internal/infrastructure/db/postgres"
)

func main() {
	root := &cobra.Command{
		Use:           "toursctl",
		Short:         "Administration tool for the tours API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			db, err := postgres.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "schema up to date")
			return nil
		},
	}
}

// seedTour mirrors the development fixture format: a JSON array of tours
// with optional start dates and a start location.
type seedTour struct {
	Name          string    `json:"name"`
	Duration      int       `json:"duration"`
	MaxGroupSize  int       `json:"maxGroupSize"`
	Difficulty    string    `json:"difficulty"`
	RatingsAvg    float64   `json:"ratingsAverage"`
	Price         float64   `json:"price"`
	PriceDiscount float64   `json:"priceDiscount"`
	Summary       string    `json:"summary"`
	Description   string    `json:"description"`
	ImageCover    string    `json:"imageCover"`
	Images        []string  `json:"images"`
	StartDates    []string  `json:"startDates"`
	StartLocation *seedLoc  `json:"startLocation"`
}

type seedLoc struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
	Address     string    `json:"address"`
	Description string    `json:"description"`
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import development tour fixtures from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			db, err := postgres.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}

			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var fixtures []seedTour
			if err := json.Unmarshal(raw, &fixtures); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			repo := postgres.NewTourRepository(db)
			ctx := context.Background()
			imported := 0
			for _, fixture := range fixtures {
				tour, err := fixtureToTour(fixture)
				if err != nil {
					return fmt.Errorf("tour %q: %w", fixture.Name, err)
				}
				if _, err := repo.Create(ctx, tour); err != nil {
					return fmt.Errorf("tour %q: %w", fixture.Name, err)
				}
				imported++
			}
			fmt.Fprintf(os.Stdout, "imported %d tours\n", imported)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "dev-data/tours.json", "fixture file to import")
	return cmd
}

func fixtureToTour(fixture seedTour) (*entities.ValidatedTour, error) {
	tour := entities.NewTour(
		fixture.Name,
		fixture.Duration,
		fixture.MaxGroupSize,
		entities.Difficulty(fixture.Difficulty),
		fixture.Price,
		fixture.Summary,
		fixture.ImageCover,
	)
	if fixture.RatingsAvg != 0 {
		tour.RatingsAverage = fixture.RatingsAvg
	}
	tour.PriceDiscount = fixture.PriceDiscount
	tour.Description = fixture.Description
	tour.Images = fixture.Images

	for _, raw := range fixture.StartDates {
		date, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			// Fixtures sometimes use a bare date.
			date, err = time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, fmt.Errorf("start date %q: %w", raw, err)
			}
		}
		tour.StartDates = append(tour.StartDates, date)
	}

	if loc := fixture.StartLocation; loc != nil {
		tour.StartLocation = entities.Location{
			Address:     loc.Address,
			Description: loc.Description,
		}
		if len(loc.Coordinates) == 2 {
			tour.StartLocation.Lng = loc.Coordinates[0]
			tour.StartLocation.Lat = loc.Coordinates[1]
		}
	}

	return entities.NewValidatedTour(tour)
}
