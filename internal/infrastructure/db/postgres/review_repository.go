package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repositories.ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entities.ValidatedReview) (*entities.Review, error) {
	model := reviewToModel(review.GetReview())
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repositories.ErrDuplicate
		}
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

// FindByID resolves a review with its author populated.
func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).Preload("User").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return reviewToEntity(&model), nil
}

// FindAll lists reviews, optionally scoped to one tour (the nested route).
func (r *ReviewRepository) FindAll(ctx context.Context, opts query.Options, tourID *uuid.UUID) ([]entities.Review, error) {
	// Author preload and tour scoping need the reference columns even
	// under projection.
	if len(opts.Fields) > 0 {
		opts.Fields = append(opts.Fields, "tour_id", "user_id")
	}

	tx := r.db.WithContext(ctx).Model(&ReviewModel{})
	if tourID != nil {
		tx = tx.Where("tour_id = ?", *tourID)
	}

	var models []ReviewModel
	if err := ApplyOptions(tx, opts).Preload("User").Find(&models).Error; err != nil {
		return nil, err
	}

	reviews := make([]entities.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, *reviewToEntity(&models[i]))
	}
	return reviews, nil
}

func (r *ReviewRepository) Save(ctx context.Context, review *entities.ValidatedReview) (*entities.Review, error) {
	model := reviewToModel(review.GetReview())
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&ReviewModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// RatingSummary computes the review count and average rating for a tour.
func (r *ReviewRepository) RatingSummary(ctx context.Context, tourID uuid.UUID) (int, float64, error) {
	var row struct {
		Count   int
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("tour_id = ?", tourID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Average, nil
}

func reviewToModel(rv *entities.Review) ReviewModel {
	return ReviewModel{
		ID:        rv.ID,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
		Review:    rv.Review,
		Rating:    rv.Rating,
		TourID:    rv.TourID,
		UserID:    rv.UserID,
	}
}

func reviewToEntity(m *ReviewModel) *entities.Review {
	review := &entities.Review{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Review:    m.Review,
		Rating:    m.Rating,
		TourID:    m.TourID,
		UserID:    m.UserID,
	}
	if m.User != nil {
		review.User = userToEntity(m.User)
	}
	return review
}
