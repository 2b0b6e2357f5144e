package services

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/common"
	"tours-api/internal/application/interfaces"
	"tours-api/internal/application/mapper"
	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
)

const (
	statsMinRating = 4.5

	earthRadiusMiles = 3963.2
	earthRadiusKm    = 6378.1
)

type TourService struct {
	tourRepo repositories.TourRepository
	userRepo repositories.UserRepository
}

func NewTourService(tourRepo repositories.TourRepository, userRepo repositories.UserRepository) interfaces.TourService {
	return &TourService{tourRepo: tourRepo, userRepo: userRepo}
}

// resolveGuides loads the referenced users and checks each one actually
// leads tours.
func (s *TourService) resolveGuides(ctx context.Context, ids []uuid.UUID) ([]entities.User, error) {
	guides := make([]entities.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperrors.BadRequest("No guide found with that ID")
		}
		if user.Role != entities.RoleGuide && user.Role != entities.RoleLeadGuide {
			return nil, apperrors.BadRequest("Guides must have the guide or lead-guide role")
		}
		guides = append(guides, *user)
	}
	return guides, nil
}

func (s *TourService) List(ctx context.Context, opts query.Options) ([]common.TourResult, error) {
	tours, err := s.tourRepo.FindAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	results := make([]common.TourResult, 0, len(tours))
	for i := range tours {
		results = append(results, mapper.NewTourResultFromEntity(&tours[i]))
	}
	return results, nil
}

func (s *TourService) Get(ctx context.Context, id uuid.UUID) (*common.TourResult, error) {
	tour, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, apperrors.NotFound("No tour found with that ID")
	}
	result := mapper.NewTourResultFromEntity(tour)
	return &result, nil
}

func (s *TourService) Create(ctx context.Context, cmd *command.CreateTourCommand) (*common.TourResult, error) {
	tour := entities.NewTour(cmd.Name, cmd.Duration, cmd.MaxGroupSize, entities.Difficulty(cmd.Difficulty), cmd.Price, cmd.Summary, cmd.ImageCover)
	tour.PriceDiscount = cmd.PriceDiscount
	tour.Description = cmd.Description
	tour.Images = cmd.Images
	tour.StartDates = cmd.StartDates
	tour.StartLocation = entities.Location{
		Lat:         cmd.StartLocation.Lat,
		Lng:         cmd.StartLocation.Lng,
		Address:     cmd.StartLocation.Address,
		Description: cmd.StartLocation.Description,
	}
	if len(cmd.Guides) > 0 {
		guides, err := s.resolveGuides(ctx, cmd.Guides)
		if err != nil {
			return nil, err
		}
		tour.Guides = guides
	}

	validated, err := entities.NewValidatedTour(tour)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	created, err := s.tourRepo.Create(ctx, validated)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("Duplicate field value: name. Please use a different value")
		}
		return nil, err
	}
	result := mapper.NewTourResultFromEntity(created)
	return &result, nil
}

func (s *TourService) Update(ctx context.Context, id uuid.UUID, cmd *command.UpdateTourCommand) (*common.TourResult, error) {
	tour, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, apperrors.NotFound("No tour found with that ID")
	}

	applyTourUpdate(tour, cmd)
	// nil leaves the guide set alone; an empty list clears it.
	if cmd.Guides != nil {
		guides, err := s.resolveGuides(ctx, cmd.Guides)
		if err != nil {
			return nil, err
		}
		tour.Guides = guides
	}

	// Re-validate so a partial update cannot leave the record in a state a
	// create would have rejected.
	validated, err := entities.NewValidatedTour(tour)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	saved, err := s.tourRepo.Save(ctx, validated)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("Duplicate field value: name. Please use a different value")
		}
		return nil, err
	}
	result := mapper.NewTourResultFromEntity(saved)
	return &result, nil
}

func applyTourUpdate(tour *entities.Tour, cmd *command.UpdateTourCommand) {
	if cmd.Name != nil {
		tour.Name = *cmd.Name
	}
	if cmd.Duration != nil {
		tour.Duration = *cmd.Duration
	}
	if cmd.MaxGroupSize != nil {
		tour.MaxGroupSize = *cmd.MaxGroupSize
	}
	if cmd.Difficulty != nil {
		tour.Difficulty = entities.Difficulty(*cmd.Difficulty)
	}
	if cmd.Price != nil {
		tour.Price = *cmd.Price
	}
	if cmd.PriceDiscount != nil {
		tour.PriceDiscount = *cmd.PriceDiscount
	}
	if cmd.Summary != nil {
		tour.Summary = *cmd.Summary
	}
	if cmd.Description != nil {
		tour.Description = *cmd.Description
	}
	if cmd.ImageCover != nil {
		tour.ImageCover = *cmd.ImageCover
	}
	if cmd.Images != nil {
		tour.Images = cmd.Images
	}
	if cmd.StartDates != nil {
		tour.StartDates = cmd.StartDates
	}
	if cmd.StartLocation != nil {
		tour.StartLocation = entities.Location{
			Lat:         cmd.StartLocation.Lat,
			Lng:         cmd.StartLocation.Lng,
			Address:     cmd.StartLocation.Address,
			Description: cmd.StartLocation.Description,
		}
	}
}

func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tourRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("No tour found with that ID")
		}
		return err
	}
	return nil
}

func (s *TourService) Stats(ctx context.Context) ([]common.TourStatsResult, error) {
	stats, err := s.tourRepo.Stats(ctx, statsMinRating)
	if err != nil {
		return nil, err
	}
	results := make([]common.TourStatsResult, 0, len(stats))
	for _, row := range stats {
		results = append(results, common.TourStatsResult{
			Difficulty: string(row.Difficulty),
			NumTours:   row.NumTours,
			NumRatings: row.NumRatings,
			AvgRating:  row.AvgRating,
			AvgPrice:   row.AvgPrice,
			MinPrice:   row.MinPrice,
			MaxPrice:   row.MaxPrice,
		})
	}
	return results, nil
}

// MonthlyPlan buckets every tour start in the given year by month, busiest
// month first.
func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]common.MonthlyPlanResult, error) {
	starts, err := s.tourRepo.StartsInYear(ctx, year)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int][]string)
	for _, start := range starts {
		month := int(start.StartsAt.Month())
		byMonth[month] = append(byMonth[month], start.TourName)
	}

	plan := make([]common.MonthlyPlanResult, 0, len(byMonth))
	for month, tours := range byMonth {
		plan = append(plan, common.MonthlyPlanResult{
			Month:         month,
			NumTourStarts: len(tours),
			Tours:         tours,
		})
	}
	sort.Slice(plan, func(i, j int) bool {
		if plan[i].NumTourStarts != plan[j].NumTourStarts {
			return plan[i].NumTourStarts > plan[j].NumTourStarts
		}
		return plan[i].Month < plan[j].Month
	})
	if len(plan) > 12 {
		plan = plan[:12]
	}
	return plan, nil
}

// ToursWithin returns the tours whose start location lies inside the circle
// of the given radius around the centre point. Unit is "mi" or "km".
func (s *TourService) ToursWithin(ctx context.Context, distance, lat, lng float64, unit string) ([]common.TourResult, error) {
	var radius float64
	switch unit {
	case "mi":
		radius = earthRadiusMiles
	case "km":
		radius = earthRadiusKm
	default:
		return nil, apperrors.BadRequest("Unit must be either mi or km")
	}
	if distance < 0 {
		return nil, apperrors.BadRequest("Distance must not be negative")
	}

	// Limit 0 disables pagination: the radius predicate must see every
	// tour, never a page of them.
	tours, err := s.tourRepo.FindAll(ctx, query.Options{})
	if err != nil {
		return nil, err
	}

	results := make([]common.TourResult, 0)
	for i := range tours {
		loc := tours[i].StartLocation
		if haversine(lat, lng, loc.Lat, loc.Lng, radius) <= distance {
			results = append(results, mapper.NewTourResultFromEntity(&tours[i]))
		}
	}
	return results, nil
}

// haversine is the great-circle distance between two points on a sphere of
// the given radius.
func haversine(lat1, lng1, lat2, lng2, radius float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * radius * math.Asin(math.Sqrt(a))
}
