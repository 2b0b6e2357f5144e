package command

import (
	"time"

	"github.com/google/uuid"
)

type LocationInput struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
}

type CreateTourCommand struct {
	Name          string        `json:"name"`
	Duration      int           `json:"duration"`
	MaxGroupSize  int           `json:"maxGroupSize"`
	Difficulty    string        `json:"difficulty"`
	Price         float64       `json:"price"`
	PriceDiscount float64       `json:"priceDiscount"`
	Summary       string        `json:"summary"`
	Description   string        `json:"description"`
	ImageCover    string        `json:"imageCover"`
	Images        []string      `json:"images"`
	StartDates    []time.Time   `json:"startDates"`
	StartLocation LocationInput `json:"startLocation"`
	Guides        []uuid.UUID   `json:"guides"`
}

// UpdateTourCommand carries only the supplied fields; nil means unchanged.
type UpdateTourCommand struct {
	Name          *string        `json:"name"`
	Duration      *int           `json:"duration"`
	MaxGroupSize  *int           `json:"maxGroupSize"`
	Difficulty    *string        `json:"difficulty"`
	Price         *float64       `json:"price"`
	PriceDiscount *float64       `json:"priceDiscount"`
	Summary       *string        `json:"summary"`
	Description   *string        `json:"description"`
	ImageCover    *string        `json:"imageCover"`
	Images        []string       `json:"images"`
	StartDates    []time.Time    `json:"startDates"`
	StartLocation *LocationInput `json:"startLocation"`
	Guides        []uuid.UUID    `json:"guides"`
}
