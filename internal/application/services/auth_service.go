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
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
	"tours-api/internal/infrastructure"
)

type AuthService struct {
	userRepo   repositories.UserRepository
	jwtService *infrastructure.JWTService
	sender     infrastructure.EmailSender
	resetTTL   time.Duration
	logger     *slog.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	sender infrastructure.EmailSender,
	resetTTL time.Duration,
	logger *slog.Logger,
) interfaces.AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sender:     sender,
		resetTTL:   resetTTL,
		logger:     logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, cmd *command.SignupCommand) (*common.AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	role, err := entities.ParseRole(cmd.Role)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	user := entities.NewUser(cmd.Name, cmd.Email, cmd.Password, role)
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	validated, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	created, err := s.userRepo.Create(ctx, validated)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("Duplicate field value: email. Please use a different value")
		}
		return nil, err
	}
	return s.issueToken(created)
}

func (s *AuthService) Login(ctx context.Context, cmd *command.LoginCommand) (*common.AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	user, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	// One generic message for both unknown email and wrong password.
	if user == nil || user.CheckPassword(cmd.Password) != nil {
		return nil, apperrors.Unauthorized("Incorrect email or password")
	}
	return s.issueToken(user)
}

func (s *AuthService) ForgotPassword(ctx context.Context, cmd *command.ForgotPasswordCommand, resetURLBase string) error {
	if err := cmd.Validate(); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	user, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("There is no user with that email address")
	}

	token, err := user.CreatePasswordResetToken(s.resetTTL)
	if err != nil {
		return err
	}
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	resetURL := resetURLBase + "/" + token
	if err := s.sender.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		// Never leave a reset window open without a delivered token.
		s.logger.Error("password reset email failed", "user", user.ID, "error", err)
		user.ClearPasswordResetToken()
		if rollbackErr := s.saveUser(ctx, user); rollbackErr != nil {
			s.logger.Error("reset token rollback failed", "user", user.ID, "error", rollbackErr)
		}
		return apperrors.New(500, "There was an error sending the email. Try again later")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token string, cmd *command.ResetPasswordCommand) (*common.AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	// The repository matches on the stored hash and an open window only.
	user, err := s.userRepo.FindByResetTokenHash(ctx, entities.HashResetToken(token))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.BadRequest("Token is invalid or has expired")
	}

	if err := user.SetPassword(cmd.Password); err != nil {
		return nil, err
	}
	user.ClearPasswordResetToken()
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, cmd *command.UpdatePasswordCommand) (*common.AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Unauthorized("The user belonging to this token does no longer exist")
	}
	if user.CheckPassword(cmd.PasswordCurrent) != nil {
		return nil, apperrors.Unauthorized("Your current password is wrong")
	}
	if user.CheckPassword(cmd.Password) == nil {
		return nil, apperrors.BadRequest("New password must be different from the current one")
	}

	if err := user.SetPassword(cmd.Password); err != nil {
		return nil, err
	}
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtService.Verify(token)
	if err != nil {
		if errors.Is(err, infrastructure.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("Your token has expired. Please log in again")
		}
		return nil, apperrors.Unauthorized("Invalid token. Please log in again")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Unauthorized("The user belonging to this token does no longer exist")
	}
	if user.ChangedPasswordAfter(claims.IssuedAt) {
		return nil, apperrors.Unauthorized("User recently changed password! Please log in again")
	}
	return user, nil
}

func (s *AuthService) issueToken(user *entities.User) (*common.AuthResult, error) {
	token, err := s.jwtService.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &common.AuthResult{
		Token: token,
		User:  mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *AuthService) saveUser(ctx context.Context, user *entities.User) error {
	validated, err := entities.NewValidatedUser(user)
	if err != nil {
		return apperrors.BadRequest(err.Error())
	}
	_, err = s.userRepo.Save(ctx, validated)
	return err
}
