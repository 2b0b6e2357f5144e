package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/interfaces"
	"tours-api/internal/application/query"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
	"tours-api/internal/infrastructure"
	"tours-api/internal/infrastructure/db/postgres"
)

func newUserFixture(t *testing.T) (interfaces.UserService, repositories.UserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	userRepo := postgres.NewUserRepository(db)
	svc := NewUserService(userRepo, infrastructure.NewDisabledRedisService(), testLogger())
	return svc, userRepo
}

func seedUser(t *testing.T, repo repositories.UserRepository, name, email string, role entities.Role) *entities.User {
	t.Helper()
	user := entities.NewUser(name, email, "pass1234", role)
	require.NoError(t, user.HashPassword())
	validated, err := entities.NewValidatedUser(user)
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), validated)
	require.NoError(t, err)
	return created
}

func TestGetProfile(t *testing.T) {
	svc, repo := newUserFixture(t)
	user := seedUser(t, repo, "Jonas", "jonas@example.com", entities.RoleUser)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jonas", profile.Name)
	assert.Equal(t, "jonas@example.com", profile.Email)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.From(err).Status)
}

func TestUpdateMe(t *testing.T) {
	svc, repo := newUserFixture(t)
	user := seedUser(t, repo, "Jonas", "jonas@example.com", entities.RoleUser)
	ctx := context.Background()

	updated, err := svc.UpdateMe(ctx, user.ID, &command.UpdateMeCommand{Name: "Jonas S"})
	require.NoError(t, err)
	assert.Equal(t, "Jonas S", updated.Name)
	assert.Equal(t, "jonas@example.com", updated.Email)
}

func TestUpdateMeRejectsPasswordFields(t *testing.T) {
	svc, repo := newUserFixture(t)
	user := seedUser(t, repo, "Jonas", "jonas@example.com", entities.RoleUser)

	_, err := svc.UpdateMe(context.Background(), user.ID, &command.UpdateMeCommand{
		Name:     "Jonas S",
		Password: "newpass99",
	})
	require.Error(t, err)
	appErr := apperrors.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "updateMyPassword")
}

func TestDeactivateMeHidesUser(t *testing.T) {
	svc, repo := newUserFixture(t)
	user := seedUser(t, repo, "Jonas", "jonas@example.com", entities.RoleUser)
	ctx := context.Background()

	require.NoError(t, svc.DeactivateMe(ctx, user.ID))

	_, err := svc.GetProfile(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.From(err).Status)

	users, err := svc.List(ctx, query.Options{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAdminUserCRUD(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()
	seedUser(t, repo, "Jonas", "jonas@example.com", entities.RoleUser)
	target := seedUser(t, repo, "Maria", "maria@example.com", entities.RoleUser)

	users, err := svc.List(ctx, query.Options{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	role := "guide"
	updated, err := svc.Update(ctx, target.ID, &command.UpdateUserCommand{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "guide", updated.Role)

	require.NoError(t, svc.Delete(ctx, target.ID))
	_, err = svc.Get(ctx, target.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.From(err).Status)

	err = svc.Delete(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.From(err).Status)
}

func TestAdminUpdateRejectsUnknownRole(t *testing.T) {
	svc, repo := newUserFixture(t)
	target := seedUser(t, repo, "Maria", "maria@example.com", entities.RoleUser)

	role := "superadmin"
	_, err := svc.Update(context.Background(), target.ID, &command.UpdateUserCommand{Role: &role})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.From(err).Status)
}
