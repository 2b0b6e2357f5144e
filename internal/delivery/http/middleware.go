package httpapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/interfaces"
	"tours-api/internal/domain/entities"
)

const principalKey = "principal"

// extractToken looks for the credential in the Authorization header first,
// then in the jwt cookie.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Protect authenticates the request and attaches the principal to the
// context. Subsequent handlers read it back with CurrentUser.
func Protect(authService interfaces.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return apperrors.Unauthorized("You are not logged in! Please log in to get access")
			}
			user, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// RestrictTo authorizes the already-authenticated principal against a role
// allow-list. Must run after Protect.
func RestrictTo(roles ...entities.Role) echo.MiddlewareFunc {
	allowed := make(map[entities.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !allowed[user.Role] {
				return apperrors.Forbidden("You do not have permission to perform this action")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the principal Protect attached, or nil on
// unauthenticated routes.
func CurrentUser(c echo.Context) *entities.User {
	user, _ := c.Get(principalKey).(*entities.User)
	return user
}

// RateLimiter is the per-IP in-memory limiter applied to the whole API.
func RateLimiter(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(requestsPerSecond),
			Burst: burst,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperrors.New(429, "Too many requests from this IP, please try again in an hour!")
		},
	})
}
