// Package repositories declares the persistence contracts the application
// layer depends on. Lookups return (nil, nil) when no record matches; the
// services decide which absences are errors.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*entities.User, error)
	FindAll(ctx context.Context, opts query.Options) ([]entities.User, error)
	Save(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TourStats is one aggregate row grouped by difficulty.
type TourStats struct {
	Difficulty entities.Difficulty
	NumTours   int
	NumRatings int
	AvgRating  float64
	AvgPrice   float64
	MinPrice   float64
	MaxPrice   float64
}

// TourStart is one scheduled departure of a named tour.
type TourStart struct {
	TourName string
	StartsAt time.Time
}

type TourRepository interface {
	Create(ctx context.Context, tour *entities.ValidatedTour) (*entities.Tour, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Tour, error)
	FindAll(ctx context.Context, opts query.Options) ([]entities.Tour, error)
	Save(ctx context.Context, tour *entities.ValidatedTour) (*entities.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, minRating float64) ([]TourStats, error)
	StartsInYear(ctx context.Context, year int) ([]TourStart, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entities.ValidatedReview) (*entities.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Review, error)
	FindAll(ctx context.Context, opts query.Options, tourID *uuid.UUID) ([]entities.Review, error)
	Save(ctx context.Context, review *entities.ValidatedReview) (*entities.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RatingSummary(ctx context.Context, tourID uuid.UUID) (count int, average float64, err error)
}
