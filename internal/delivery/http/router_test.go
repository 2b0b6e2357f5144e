package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tours-api/internal/application/services"
	"tours-api/internal/config"
	"tours-api/internal/domain/entities"
	"tours-api/internal/domain/repositories"
	"tours-api/internal/infrastructure"
	"tours-api/internal/infrastructure/db/postgres"
)

type fakeSender struct {
	sent []string
}

func (f *fakeSender) SendPasswordReset(_ context.Context, _, _, resetURL string) error {
	f.sent = append(f.sent, resetURL)
	return nil
}

type fixture struct {
	e        *echo.Echo
	userRepo repositories.UserRepository
	tourRepo repositories.TourRepository
	sender   *fakeSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	cfg := &config.Config{
		Env:           config.EnvDevelopment,
		JWTSecret:     "test-secret",
		JWTExpiresIn:  time.Hour,
		ResetTokenTTL: 10 * time.Minute,
		RateLimit:     1000,
		RateBurst:     1000,
		BodyLimit:     "10K",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := postgres.NewUserRepository(db)
	tourRepo := postgres.NewTourRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	jwtService := infrastructure.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	sender := &fakeSender{}
	cache := infrastructure.NewDisabledRedisService()

	authService := services.NewAuthService(userRepo, jwtService, sender, cfg.ResetTokenTTL, logger)
	userService := services.NewUserService(userRepo, cache, logger)
	tourService := services.NewTourService(tourRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, tourRepo, logger)

	e := NewRouter(cfg, logger, authService, userService, tourService, reviewService)
	return &fixture{e: e, userRepo: userRepo, tourRepo: tourRepo, sender: sender}
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func (f *fixture) signup(t *testing.T, email, role string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":"pass1234","passwordConfirm":"pass1234","role":%q}`, email, role)
	rec := f.do(t, http.MethodPost, "/api/v1/users/signup", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	payload := decode(t, rec)
	data := payload["data"].(map[string]any)
	return data["token"].(string)
}

func (f *fixture) seedTour(t *testing.T, name string, price float64) *entities.Tour {
	t.Helper()
	tour := entities.NewTour(name, 5, 25, entities.DifficultyEasy, price, "A lovely little trip", "cover.jpg")
	validated, err := entities.NewValidatedTour(tour)
	require.NoError(t, err)
	created, err := f.tourRepo.Create(context.Background(), validated)
	require.NoError(t, err)
	return created
}

func TestSignupAndLoginFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/users/signup", "",
		`{"name":"Jonas","email":"jonas@example.com","password":"pass1234","passwordConfirm":"pass1234"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := decode(t, rec)
	assert.Equal(t, "success", payload["status"])
	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "jonas@example.com", user["email"])

	// Token also arrives as an http-only cookie.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	var jwtCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "jwt" {
			jwtCookie = cookie
		}
	}
	require.NotNil(t, jwtCookie)
	assert.True(t, jwtCookie.HttpOnly)
	assert.False(t, jwtCookie.Secure)

	rec = f.do(t, http.MethodPost, "/api/v1/users/login", "",
		`{"email":"jonas@example.com","password":"pass1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailureEnvelope(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "jonas@example.com", "user")

	rec := f.do(t, http.MethodPost, "/api/v1/users/login", "",
		`{"email":"jonas@example.com","password":"wrongpass"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "fail", payload["status"])
	assert.Equal(t, "Incorrect email or password", payload["message"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/users/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "fail", payload["status"])
	assert.Contains(t, payload["message"], "not logged in")

	rec = f.do(t, http.MethodGet, "/api/v1/users/me", "not.a.token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token. Please log in again", decode(t, rec)["message"])
}

func TestProtectAcceptsCookieToken(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "jonas@example.com", "user")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMeAndUpdateMe(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "jonas@example.com", "user")

	rec := f.do(t, http.MethodGet, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "jonas@example.com", data["email"])

	rec = f.do(t, http.MethodPatch, "/api/v1/users/updateMe", token, `{"name":"Jonas S"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Jonas S", data["name"])

	rec = f.do(t, http.MethodPatch, "/api/v1/users/updateMe", token, `{"password":"newpass99"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "updateMyPassword")
}

func TestDeleteMe(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "jonas@example.com", "user")

	rec := f.do(t, http.MethodDelete, "/api/v1/users/deleteMe", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// The deactivated principal's token no longer authenticates.
	rec = f.do(t, http.MethodGet, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleRestriction(t *testing.T) {
	f := newFixture(t)
	userToken := f.signup(t, "user@example.com", "user")
	adminToken := f.signup(t, "admin@example.com", "admin")

	rec := f.do(t, http.MethodGet, "/api/v1/users", userToken, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "fail", payload["status"])
	assert.Equal(t, "You do not have permission to perform this action", payload["message"])

	rec = f.do(t, http.MethodGet, "/api/v1/users", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["results"])
}

func TestTourListEmpty(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tours", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, float64(0), payload["results"])
}

func TestTourNotFoundEnvelope(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tours/"+uuid.NewString(), "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "fail", payload["status"])
	assert.Equal(t, "No tour found with that ID", payload["message"])
}

func TestTourWriteIsRoleGated(t *testing.T) {
	f := newFixture(t)
	userToken := f.signup(t, "user@example.com", "user")
	leadToken := f.signup(t, "lead@example.com", "lead-guide")

	body := `{"name":"The Forest Hiker","duration":5,"maxGroupSize":25,"difficulty":"easy","price":397,"summary":"A lovely little trip","imageCover":"cover.jpg"}`

	rec := f.do(t, http.MethodPost, "/api/v1/tours", "", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/tours", userToken, body)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/tours", leadToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "The Forest Hiker", data["name"])
	assert.NotEmpty(t, data["id"])
}

func TestTourFilterScenario(t *testing.T) {
	f := newFixture(t)
	f.seedTour(t, "The Forest Hiker", 397)
	f.seedTour(t, "The Sea Explorer", 497)
	f.seedTour(t, "The Snow Adventurer", 997)

	rec := f.do(t, http.MethodGet, "/api/v1/tours?price[lte]=500&sort=-price", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	require.Equal(t, float64(2), payload["results"])
	tours := payload["data"].([]any)
	assert.Equal(t, "The Sea Explorer", tours[0].(map[string]any)["name"])
}

func TestTopFiveCheap(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		f.seedTour(t, fmt.Sprintf("The Number %d Tour", i), float64(100+i*50))
	}

	rec := f.do(t, http.MethodGet, "/api/v1/tours/top-5-cheap", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), decode(t, rec)["results"])
}

func TestMonthlyPlanRequiresGuideRole(t *testing.T) {
	f := newFixture(t)
	userToken := f.signup(t, "user@example.com", "user")
	guideToken := f.signup(t, "guide@example.com", "guide")

	rec := f.do(t, http.MethodGet, "/api/v1/tours/monthly-plan/2026", userToken, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/tours/monthly-plan/2026", guideToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestToursWithinRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tours/tours-within/400/center/37.77,-122.42/unit/mi", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["results"])

	rec = f.do(t, http.MethodGet, "/api/v1/tours/tours-within/400/center/37.77,-122.42/unit/parsec", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNestedReviews(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "jonas@example.com", "user")
	tour := f.seedTour(t, "The Forest Hiker", 397)

	base := "/api/v1/tours/" + tour.ID.String() + "/reviews"
	rec := f.do(t, http.MethodPost, base, token, `{"review":"Amazing guides and scenery","rating":5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, tour.ID.String(), data["tour"])

	rec = f.do(t, http.MethodGet, base, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["results"])
}

func TestUnknownRouteEnvelope(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/nothing-here", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "fail", payload["status"])
	assert.NotEmpty(t, payload["message"])
}

func TestForgotAndResetPasswordOverHTTP(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "jonas@example.com", "user")

	rec := f.do(t, http.MethodPost, "/api/v1/users/forgotPassword", "", `{"email":"jonas@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.sender.sent, 1)

	parts := strings.Split(f.sender.sent[0], "/")
	resetToken := parts[len(parts)-1]

	rec = f.do(t, http.MethodPatch, "/api/v1/users/resetPassword/"+resetToken, "",
		`{"password":"newpass99","passwordConfirm":"newpass99"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	rec = f.do(t, http.MethodPost, "/api/v1/users/login", "",
		`{"email":"jonas@example.com","password":"newpass99"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateMyPasswordOverHTTP(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "jonas@example.com", "user")

	rec := f.do(t, http.MethodPatch, "/api/v1/users/updateMyPassword", token,
		`{"passwordCurrent":"wrongpass","password":"newpass99","passwordConfirm":"newpass99"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/v1/users/updateMyPassword", token,
		`{"passwordCurrent":"pass1234","password":"newpass99","passwordConfirm":"newpass99"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}
