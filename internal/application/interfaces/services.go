// Package interfaces declares the application service contracts the
// delivery layer is wired against.
package interfaces

import (
	"context"

	"github.com/google/uuid"

	"tours-api/internal/application/command"
	"tours-api/internal/application/common"
	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
)

type AuthService interface {
	Signup(ctx context.Context, cmd *command.SignupCommand) (*common.AuthResult, error)
	Login(ctx context.Context, cmd *command.LoginCommand) (*common.AuthResult, error)
	// ForgotPassword begins the reset sub-protocol; resetURLBase is the
	// public prefix the token is appended to in the email.
	ForgotPassword(ctx context.Context, cmd *command.ForgotPasswordCommand, resetURLBase string) error
	ResetPassword(ctx context.Context, token string, cmd *command.ResetPasswordCommand) (*common.AuthResult, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, cmd *command.UpdatePasswordCommand) (*common.AuthResult, error)
	// Authenticate resolves a bearer token to an active, non-stale
	// principal. Used by the protection middleware.
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*common.UserResult, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, cmd *command.UpdateMeCommand) (*common.UserResult, error)
	DeactivateMe(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, opts query.Options) ([]common.UserResult, error)
	Get(ctx context.Context, id uuid.UUID) (*common.UserResult, error)
	Update(ctx context.Context, id uuid.UUID, cmd *command.UpdateUserCommand) (*common.UserResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TourService interface {
	List(ctx context.Context, opts query.Options) ([]common.TourResult, error)
	Get(ctx context.Context, id uuid.UUID) (*common.TourResult, error)
	Create(ctx context.Context, cmd *command.CreateTourCommand) (*common.TourResult, error)
	Update(ctx context.Context, id uuid.UUID, cmd *command.UpdateTourCommand) (*common.TourResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) ([]common.TourStatsResult, error)
	MonthlyPlan(ctx context.Context, year int) ([]common.MonthlyPlanResult, error)
	ToursWithin(ctx context.Context, distance, lat, lng float64, unit string) ([]common.TourResult, error)
}

type ReviewService interface {
	List(ctx context.Context, opts query.Options, tourID *uuid.UUID) ([]common.ReviewResult, error)
	Get(ctx context.Context, id uuid.UUID) (*common.ReviewResult, error)
	Create(ctx context.Context, cmd *command.CreateReviewCommand) (*common.ReviewResult, error)
	Update(ctx context.Context, id uuid.UUID, cmd *command.UpdateReviewCommand) (*common.ReviewResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
