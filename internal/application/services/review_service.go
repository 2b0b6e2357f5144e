package services

import (
	"context"
	"errors"
	"log/slog"

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

// ReviewService orchestrates review writes explicitly: every mutation is
// followed by a recalculation of the parent tour's rating aggregates.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	tourRepo   repositories.TourRepository
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repositories.ReviewRepository, tourRepo repositories.TourRepository, logger *slog.Logger) interfaces.ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, tourRepo: tourRepo, logger: logger}
}

func (s *ReviewService) List(ctx context.Context, opts query.Options, tourID *uuid.UUID) ([]common.ReviewResult, error) {
	reviews, err := s.reviewRepo.FindAll(ctx, opts, tourID)
	if err != nil {
		return nil, err
	}
	results := make([]common.ReviewResult, 0, len(reviews))
	for i := range reviews {
		results = append(results, mapper.NewReviewResultFromEntity(&reviews[i]))
	}
	return results, nil
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*common.ReviewResult, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFound("No review found with that ID")
	}
	result := mapper.NewReviewResultFromEntity(review)
	return &result, nil
}

func (s *ReviewService) Create(ctx context.Context, cmd *command.CreateReviewCommand) (*common.ReviewResult, error) {
	tour, err := s.tourRepo.FindByID(ctx, cmd.TourID)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, apperrors.NotFound("No tour found with that ID")
	}

	review := entities.NewReview(cmd.Review, cmd.Rating, cmd.TourID, cmd.UserID)
	validated, err := entities.NewValidatedReview(review)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	created, err := s.reviewRepo.Create(ctx, validated)
	if err != nil {
		return nil, err
	}

	s.recalcTourRatings(ctx, cmd.TourID)

	result := mapper.NewReviewResultFromEntity(created)
	return &result, nil
}

func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, cmd *command.UpdateReviewCommand) (*common.ReviewResult, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFound("No review found with that ID")
	}

	if cmd.Review != nil {
		review.Review = *cmd.Review
	}
	if cmd.Rating != nil {
		review.Rating = *cmd.Rating
	}

	validated, err := entities.NewValidatedReview(review)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	saved, err := s.reviewRepo.Save(ctx, validated)
	if err != nil {
		return nil, err
	}

	s.recalcTourRatings(ctx, review.TourID)

	result := mapper.NewReviewResultFromEntity(saved)
	return &result, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return apperrors.NotFound("No review found with that ID")
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("No review found with that ID")
		}
		return err
	}

	s.recalcTourRatings(ctx, review.TourID)
	return nil
}

// recalcTourRatings recomputes and stores the tour's ratings quantity and
// average from its current reviews. The review write already succeeded, so a
// failure here is logged rather than surfaced.
func (s *ReviewService) recalcTourRatings(ctx context.Context, tourID uuid.UUID) {
	count, average, err := s.reviewRepo.RatingSummary(ctx, tourID)
	if err != nil {
		s.logger.Warn("failed to summarize tour ratings", "tour", tourID, "error", err)
		return
	}

	tour, err := s.tourRepo.FindByID(ctx, tourID)
	if err != nil || tour == nil {
		s.logger.Warn("failed to load tour for rating update", "tour", tourID, "error", err)
		return
	}

	tour.SetRatings(count, average)
	validated, err := entities.NewValidatedTour(tour)
	if err != nil {
		s.logger.Warn("tour failed validation after rating update", "tour", tourID, "error", err)
		return
	}
	if _, err := s.tourRepo.Save(ctx, validated); err != nil {
		s.logger.Warn("failed to persist tour rating update", "tour", tourID, "error", err)
	}
}
