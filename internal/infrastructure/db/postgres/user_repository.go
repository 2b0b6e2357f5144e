package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	model := userToModel(user.GetUser())
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repositories.ErrDuplicate
		}
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

// FindByID resolves an active user; deactivated accounts behave as absent.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByResetTokenHash matches a pending, unexpired reset window.
func (r *UserRepository) FindByResetTokenHash(ctx context.Context, hash string) (*entities.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", hash, time.Now()).
		Where("active = ?", true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userToEntity(&model), nil
}

func (r *UserRepository) FindAll(ctx context.Context, opts query.Options) ([]entities.User, error) {
	var models []UserModel
	tx := r.db.WithContext(ctx).Model(&UserModel{}).Where("active = ?", true)
	if err := ApplyOptions(tx, opts).Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]entities.User, 0, len(models))
	for i := range models {
		users = append(users, *userToEntity(&models[i]))
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	model := userToModel(user.GetUser())
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repositories.ErrDuplicate
		}
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, cond string, arg any) (*entities.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where(cond, arg).Where("active = ?", true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userToEntity(&model), nil
}

func userToModel(u *entities.User) UserModel {
	return UserModel{
		ID:                   u.ID,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
		Name:                 u.Name,
		Email:                u.Email,
		Photo:                u.Photo,
		Role:                 string(u.Role),
		Password:             u.Password,
		PasswordChangedAt:    u.PasswordChangedAt,
		PasswordResetToken:   u.PasswordResetToken,
		PasswordResetExpires: u.PasswordResetExpires,
		Active:               u.Active,
	}
}

func userToEntity(m *UserModel) *entities.User {
	return &entities.User{
		ID:                   m.ID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		Name:                 m.Name,
		Email:                m.Email,
		Photo:                m.Photo,
		Role:                 entities.Role(m.Role),
		Password:             m.Password,
		PasswordChangedAt:    m.PasswordChangedAt,
		PasswordResetToken:   m.PasswordResetToken,
		PasswordResetExpires: m.PasswordResetExpires,
		Active:               m.Active,
	}
}
