// Package common holds the response DTOs shared between services and the
// delivery layer. Credential material never appears here.
package common

import (
	"time"

	"github.com/google/uuid"
)

type UserResult struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Photo string    `json:"photo,omitempty"`
	Role  string    `json:"role"`
}

// AuthResult pairs a freshly issued token with its principal.
type AuthResult struct {
	Token string     `json:"token"`
	User  UserResult `json:"user"`
}

type LocationResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address,omitempty"`
	Description string  `json:"description,omitempty"`
}

type TourResult struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Duration        int            `json:"duration"`
	DurationWeeks   float64        `json:"durationWeeks"`
	MaxGroupSize    int            `json:"maxGroupSize"`
	Difficulty      string         `json:"difficulty"`
	RatingsAverage  float64        `json:"ratingsAverage"`
	RatingsQuantity int            `json:"ratingsQuantity"`
	Price           float64        `json:"price"`
	PriceDiscount   float64        `json:"priceDiscount,omitempty"`
	Summary         string         `json:"summary"`
	Description     string         `json:"description,omitempty"`
	ImageCover      string         `json:"imageCover"`
	Images          []string       `json:"images,omitempty"`
	StartDates      []time.Time    `json:"startDates,omitempty"`
	StartLocation   LocationResult `json:"startLocation"`
	Guides          []UserResult   `json:"guides,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type ReviewResult struct {
	ID        uuid.UUID   `json:"id"`
	Review    string      `json:"review"`
	Rating    float64     `json:"rating"`
	CreatedAt time.Time   `json:"createdAt"`
	TourID    uuid.UUID   `json:"tour"`
	User      *UserResult `json:"user,omitempty"`
}

// TourStatsResult is one aggregate row of GET /tours/tour-stats.
type TourStatsResult struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"numTours"`
	NumRatings int     `json:"numRatings"`
	AvgRating  float64 `json:"avgRating"`
	AvgPrice   float64 `json:"avgPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// MonthlyPlanResult is one month's bucket of GET /tours/monthly-plan/:year.
type MonthlyPlanResult struct {
	Month         int      `json:"month"`
	NumTourStarts int      `json:"numTourStarts"`
	Tours         []string `json:"tours"`
}
