// Package mapper converts domain entities into response DTOs.
package mapper

import (
	"tours-api/internal/application/common"
	"tours-api/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) common.UserResult {
	return common.UserResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
		Role:  string(user.Role),
	}
}

func NewTourResultFromEntity(tour *entities.Tour) common.TourResult {
	guides := make([]common.UserResult, 0, len(tour.Guides))
	for i := range tour.Guides {
		guides = append(guides, NewUserResultFromEntity(&tour.Guides[i]))
	}
	return common.TourResult{
		ID:              tour.ID,
		Name:            tour.Name,
		Duration:        tour.Duration,
		DurationWeeks:   tour.DurationWeeks(),
		MaxGroupSize:    tour.MaxGroupSize,
		Difficulty:      string(tour.Difficulty),
		RatingsAverage:  tour.RatingsAverage,
		RatingsQuantity: tour.RatingsQuantity,
		Price:           tour.Price,
		PriceDiscount:   tour.PriceDiscount,
		Summary:         tour.Summary,
		Description:     tour.Description,
		ImageCover:      tour.ImageCover,
		Images:          tour.Images,
		StartDates:      tour.StartDates,
		StartLocation: common.LocationResult{
			Lat:         tour.StartLocation.Lat,
			Lng:         tour.StartLocation.Lng,
			Address:     tour.StartLocation.Address,
			Description: tour.StartLocation.Description,
		},
		Guides:    guides,
		CreatedAt: tour.CreatedAt,
	}
}

func NewReviewResultFromEntity(review *entities.Review) common.ReviewResult {
	result := common.ReviewResult{
		ID:        review.ID,
		Review:    review.Review,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
		TourID:    review.TourID,
	}
	if review.User != nil {
		user := NewUserResultFromEntity(review.User)
		result.User = &user
	}
	return result
}
