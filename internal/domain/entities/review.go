package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review belongs to a tour (parent reference) and carries its author.
type Review struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Review    string
	Rating    float64
	TourID    uuid.UUID
	UserID    uuid.UUID
	User      *User
}

func NewReview(text string, rating float64, tourID, userID uuid.UUID) *Review {
	now := time.Now()
	return &Review{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Review:    text,
		Rating:    rating,
		TourID:    tourID,
		UserID:    userID,
	}
}

func (r *Review) validate() error {
	if r.Review == "" {
		return errors.New("review cannot be empty")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if r.TourID == uuid.Nil {
		return errors.New("review must belong to a tour")
	}
	if r.UserID == uuid.Nil {
		return errors.New("review must have an author")
	}
	return nil
}

type ValidatedReview struct {
	*Review
}

func NewValidatedReview(review *Review) (*ValidatedReview, error) {
	if err := review.validate(); err != nil {
		return nil, err
	}
	return &ValidatedReview{Review: review}, nil
}

func (vr *ValidatedReview) GetReview() *Review {
	return vr.Review
}
