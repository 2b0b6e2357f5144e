package command

import "github.com/google/uuid"

// CreateReviewCommand's TourID and UserID are injected from the route and
// the authenticated principal, never from the request body.
type CreateReviewCommand struct {
	Review string    `json:"review"`
	Rating float64   `json:"rating"`
	TourID uuid.UUID `json:"-"`
	UserID uuid.UUID `json:"-"`
}

type UpdateReviewCommand struct {
	Review *string  `json:"review"`
	Rating *float64 `json:"rating"`
}
