package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/common"
	"tours-api/internal/application/interfaces"
	"tours-api/internal/application/mapper"
	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
	"tours-api/internal/infrastructure"
)

const profileCacheTTL = 24 * time.Hour

type UserService struct {
	userRepo repositories.UserRepository
	cache    *infrastructure.RedisService
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, cache *infrastructure.RedisService, logger *slog.Logger) interfaces.UserService {
	return &UserService{userRepo: userRepo, cache: cache, logger: logger}
}

// GetProfile serves the profile from cache when possible, falling back to
// the store and repopulating.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*common.UserResult, error) {
	if cached, err := s.cache.GetProfile(ctx, userID.String()); err == nil && cached != nil {
		result := mapper.NewUserResultFromEntity(cached)
		return &result, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("No user found with that ID")
	}

	if err := s.cache.SetProfile(ctx, user, profileCacheTTL); err != nil {
		s.logger.Warn("failed to cache user profile", "user", userID, "error", err)
	}

	result := mapper.NewUserResultFromEntity(user)
	return &result, nil
}

func (s *UserService) UpdateMe(ctx context.Context, userID uuid.UUID, cmd *command.UpdateMeCommand) (*common.UserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("No user found with that ID")
	}

	user.UpdateProfile(cmd.Name, cmd.Email, cmd.Photo)
	updated, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	result := mapper.NewUserResultFromEntity(updated)
	return &result, nil
}

// DeactivateMe soft-deletes the principal; the account disappears from all
// lookups but the record is kept.
func (s *UserService) DeactivateMe(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("No user found with that ID")
	}

	user.Deactivate()
	if _, err := s.save(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *UserService) List(ctx context.Context, opts query.Options) ([]common.UserResult, error) {
	users, err := s.userRepo.FindAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	results := make([]common.UserResult, 0, len(users))
	for i := range users {
		results = append(results, mapper.NewUserResultFromEntity(&users[i]))
	}
	return results, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*common.UserResult, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("No user found with that ID")
	}
	result := mapper.NewUserResultFromEntity(user)
	return &result, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, cmd *command.UpdateUserCommand) (*common.UserResult, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("No user found with that ID")
	}

	if cmd.Role != nil {
		role, err := entities.ParseRole(*cmd.Role)
		if err != nil {
			return nil, apperrors.BadRequest(err.Error())
		}
		user.Role = role
	}
	name, email, photo := "", "", ""
	if cmd.Name != nil {
		name = *cmd.Name
	}
	if cmd.Email != nil {
		email = *cmd.Email
	}
	if cmd.Photo != nil {
		photo = *cmd.Photo
	}
	user.UpdateProfile(name, email, photo)

	updated, err := s.save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	result := mapper.NewUserResultFromEntity(updated)
	return &result, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("No user found with that ID")
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// save re-runs entity validation before persisting, so updates validate the
// same way creates do.
func (s *UserService) save(ctx context.Context, user *entities.User) (*entities.User, error) {
	validated, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	updated, err := s.userRepo.Save(ctx, validated)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("Duplicate field value: email. Please use a different value")
		}
		return nil, err
	}
	return updated, nil
}

func (s *UserService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.DeleteProfile(ctx, userID.String()); err != nil {
		s.logger.Warn("failed to invalidate cached profile", "user", userID, "error", err)
	}
}
