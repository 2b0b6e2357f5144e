package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Location is a point of interest on a tour route.
type Location struct {
	Lat         float64
	Lng         float64
	Address     string
	Description string
}

type Tour struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string
	Duration        int
	MaxGroupSize    int
	Difficulty      Difficulty
	RatingsAverage  float64
	RatingsQuantity int
	Price           float64
	PriceDiscount   float64
	Summary         string
	Description     string
	ImageCover      string
	Images          []string
	StartDates      []time.Time
	StartLocation   Location
	Guides          []User
}

func NewTour(name string, duration, maxGroupSize int, difficulty Difficulty, price float64, summary, imageCover string) *Tour {
	now := time.Now()
	return &Tour{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Name:           name,
		Duration:       duration,
		MaxGroupSize:   maxGroupSize,
		Difficulty:     difficulty,
		RatingsAverage: 4.5,
		Price:          price,
		Summary:        summary,
		ImageCover:     imageCover,
	}
}

func (t *Tour) validate() error {
	if len(t.Name) < 10 || len(t.Name) > 40 {
		return errors.New("a tour name must have between 10 and 40 characters")
	}
	if t.Duration <= 0 {
		return errors.New("a tour must have a duration")
	}
	if t.MaxGroupSize <= 0 {
		return errors.New("a tour must have a group size")
	}
	if !t.Difficulty.Valid() {
		return errors.New("difficulty is either: easy, medium, difficult")
	}
	if t.RatingsAverage != 0 && (t.RatingsAverage < 1 || t.RatingsAverage > 5) {
		return errors.New("rating must be between 1.0 and 5.0")
	}
	if t.Price <= 0 {
		return errors.New("a tour must have a price")
	}
	if t.PriceDiscount >= t.Price && t.PriceDiscount != 0 {
		return fmt.Errorf("discount price (%v) should be below the regular price", t.PriceDiscount)
	}
	if t.Summary == "" {
		return errors.New("a tour must have a summary")
	}
	if t.ImageCover == "" {
		return errors.New("a tour must have a cover image")
	}
	return nil
}

// DurationWeeks derives the duration in weeks; it is computed on read and
// never stored.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// SetRatings records the recomputed review aggregates for this tour.
func (t *Tour) SetRatings(quantity int, average float64) {
	t.RatingsQuantity = quantity
	if quantity == 0 {
		t.RatingsAverage = 4.5
	} else {
		t.RatingsAverage = average
	}
	t.UpdatedAt = time.Now()
}

type ValidatedTour struct {
	*Tour
}

func NewValidatedTour(tour *Tour) (*ValidatedTour, error) {
	if err := tour.validate(); err != nil {
		return nil, err
	}
	return &ValidatedTour{Tour: tour}, nil
}

func (vt *ValidatedTour) GetTour() *Tour {
	return vt.Tour
}
