package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
)

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) repositories.TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Create(ctx context.Context, tour *entities.ValidatedTour) (*entities.Tour, error) {
	model := tourToModel(tour.GetTour())
	if err := r.db.WithContext(ctx).Omit("Guides").Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repositories.ErrDuplicate
		}
		return nil, err
	}
	if err := r.replaceGuides(ctx, &model); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

// replaceGuides syncs the join table to the model's guide set. The guide
// users themselves already exist and are never written here.
func (r *TourRepository) replaceGuides(ctx context.Context, model *TourModel) error {
	assoc := r.db.WithContext(ctx).Model(model).Omit("Guides.*").Association("Guides")
	if len(model.Guides) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&model.Guides)
}

func (r *TourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Tour, error) {
	var model TourModel
	err := r.db.WithContext(ctx).
		Preload("StartDates").
		Preload("Guides").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tourToEntity(&model), nil
}

func (r *TourRepository) FindAll(ctx context.Context, opts query.Options) ([]entities.Tour, error) {
	var models []TourModel
	tx := ApplyOptions(r.db.WithContext(ctx).Model(&TourModel{}), opts)
	// Guides and start dates resolve through the id, which projection
	// always keeps.
	if err := tx.Preload("StartDates").Preload("Guides").Find(&models).Error; err != nil {
		return nil, err
	}

	tours := make([]entities.Tour, 0, len(models))
	for i := range models {
		tours = append(tours, *tourToEntity(&models[i]))
	}
	return tours, nil
}

func (r *TourRepository) Save(ctx context.Context, tour *entities.ValidatedTour) (*entities.Tour, error) {
	model := tourToModel(tour.GetTour())
	// Start dates are replaced wholesale on save.
	if err := r.db.WithContext(ctx).Where("tour_id = ?", model.ID).Delete(&TourStartDateModel{}).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Omit("Guides").Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repositories.ErrDuplicate
		}
		return nil, err
	}
	if err := r.replaceGuides(ctx, &model); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("tour_id = ?", id).Delete(&TourStartDateModel{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&TourModel{ID: id}).Association("Guides").Clear(); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&TourModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Stats aggregates tours with ratings_average >= minRating by difficulty,
// cheapest difficulty first.
func (r *TourRepository) Stats(ctx context.Context, minRating float64) ([]repositories.TourStats, error) {
	var rows []struct {
		Difficulty string
		NumTours   int
		NumRatings int
		AvgRating  float64
		AvgPrice   float64
		MinPrice   float64
		MaxPrice   float64
	}
	err := r.db.WithContext(ctx).
		Model(&TourModel{}).
		Select("difficulty, COUNT(*) AS num_tours, SUM(ratings_quantity) AS num_ratings, AVG(ratings_average) AS avg_rating, AVG(price) AS avg_price, MIN(price) AS min_price, MAX(price) AS max_price").
		Where("ratings_average >= ?", minRating).
		Group("difficulty").
		Order("avg_price ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]repositories.TourStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, repositories.TourStats{
			Difficulty: entities.Difficulty(row.Difficulty),
			NumTours:   row.NumTours,
			NumRatings: row.NumRatings,
			AvgRating:  row.AvgRating,
			AvgPrice:   row.AvgPrice,
			MinPrice:   row.MinPrice,
			MaxPrice:   row.MaxPrice,
		})
	}
	return stats, nil
}

// StartsInYear lists every departure within the calendar year.
func (r *TourRepository) StartsInYear(ctx context.Context, year int) ([]repositories.TourStart, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []struct {
		TourName string
		StartsAt time.Time
	}
	err := r.db.WithContext(ctx).
		Table("tour_start_dates").
		Select("tours.name AS tour_name, tour_start_dates.starts_at").
		Joins("JOIN tours ON tours.id = tour_start_dates.tour_id").
		Where("tour_start_dates.starts_at >= ? AND tour_start_dates.starts_at < ?", from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	starts := make([]repositories.TourStart, 0, len(rows))
	for _, row := range rows {
		starts = append(starts, repositories.TourStart{TourName: row.TourName, StartsAt: row.StartsAt})
	}
	return starts, nil
}

func tourToModel(t *entities.Tour) TourModel {
	images, _ := json.Marshal(t.Images)
	dates := make([]TourStartDateModel, 0, len(t.StartDates))
	for _, d := range t.StartDates {
		dates = append(dates, TourStartDateModel{TourID: t.ID, StartsAt: d})
	}
	guides := make([]UserModel, 0, len(t.Guides))
	for i := range t.Guides {
		guides = append(guides, userToModel(&t.Guides[i]))
	}
	return TourModel{
		ID:              t.ID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		Name:            t.Name,
		Duration:        t.Duration,
		MaxGroupSize:    t.MaxGroupSize,
		Difficulty:      string(t.Difficulty),
		RatingsAverage:  t.RatingsAverage,
		RatingsQuantity: t.RatingsQuantity,
		Price:           t.Price,
		PriceDiscount:   t.PriceDiscount,
		Summary:         t.Summary,
		Description:     t.Description,
		ImageCover:      t.ImageCover,
		Images:          string(images),
		StartLocation: LocationModel{
			Lat:         t.StartLocation.Lat,
			Lng:         t.StartLocation.Lng,
			Address:     t.StartLocation.Address,
			Description: t.StartLocation.Description,
		},
		StartDates: dates,
		Guides:     guides,
	}
}

func tourToEntity(m *TourModel) *entities.Tour {
	var images []string
	if m.Images != "" {
		_ = json.Unmarshal([]byte(m.Images), &images)
	}
	dates := make([]time.Time, 0, len(m.StartDates))
	for _, d := range m.StartDates {
		dates = append(dates, d.StartsAt)
	}
	guides := make([]entities.User, 0, len(m.Guides))
	for i := range m.Guides {
		guides = append(guides, *userToEntity(&m.Guides[i]))
	}
	return &entities.Tour{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Name:            m.Name,
		Duration:        m.Duration,
		MaxGroupSize:    m.MaxGroupSize,
		Difficulty:      entities.Difficulty(m.Difficulty),
		RatingsAverage:  m.RatingsAverage,
		RatingsQuantity: m.RatingsQuantity,
		Price:           m.Price,
		PriceDiscount:   m.PriceDiscount,
		Summary:         m.Summary,
		Description:     m.Description,
		ImageCover:      m.ImageCover,
		Images:          images,
		StartDates:      dates,
		StartLocation: entities.Location{
			Lat:         m.StartLocation.Lat,
			Lng:         m.StartLocation.Lng,
			Address:     m.StartLocation.Address,
			Description: m.StartLocation.Description,
		},
		Guides: guides,
	}
}
