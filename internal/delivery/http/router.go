package httpapi

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tours-api/internal/application/interfaces"
	"tours-api/internal/config"
	"tours-api/internal/domain/entities"
	"tours-api/internal/infrastructure/db/postgres"
)

// Router wires the whole HTTP surface. The route table below doubles as the
// authorization matrix: every role restriction lives here, not in handlers.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	authService interfaces.AuthService,
	userService interfaces.UserService,
	tourService interfaces.TourService,
	reviewService interfaces.ReviewService,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewErrorHandler(logger, cfg.IsProduction())

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(RateLimiter(cfg.RateLimit, cfg.RateBurst))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	authHandler := NewAuthHandler(authService, cfg.JWTExpiresIn, cfg.IsProduction())
	userHandler := NewUserHandler(userService)
	tourHandler := NewTourHandler(tourService, postgres.TourQuerySchema)
	reviewHandler := NewReviewHandler(reviewService, postgres.ReviewQuerySchema)

	protect := Protect(authService)
	adminOnly := RestrictTo(entities.RoleAdmin)
	tourWriters := RestrictTo(entities.RoleAdmin, entities.RoleLeadGuide)
	planReaders := RestrictTo(entities.RoleAdmin, entities.RoleLeadGuide, entities.RoleGuide)

	api := e.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/signup", authHandler.Signup)
	users.POST("/login", authHandler.Login)
	users.POST("/forgotPassword", authHandler.ForgotPassword)
	users.PATCH("/resetPassword/:token", authHandler.ResetPassword)

	users.PATCH("/updateMyPassword", authHandler.UpdateMyPassword, protect)
	users.GET("/me", userHandler.Me, protect)
	users.PATCH("/updateMe", userHandler.UpdateMe, protect)
	users.DELETE("/deleteMe", userHandler.DeleteMe, protect)

	users.GET("", GetAll(userService.List, postgres.UserQuerySchema), protect, adminOnly)
	users.GET("/:id", GetOne(userService.Get), protect, adminOnly)
	users.PATCH("/:id", UpdateOne(userService.Update), protect, adminOnly)
	users.DELETE("/:id", DeleteOne(userService.Delete), protect, adminOnly)

	tours := api.Group("/tours")
	tours.GET("", GetAll(tourService.List, postgres.TourQuerySchema))
	tours.GET("/top-5-cheap", tourHandler.TopFiveCheap)
	tours.GET("/tour-stats", tourHandler.Stats)
	tours.GET("/monthly-plan/:year", tourHandler.MonthlyPlan, protect, planReaders)
	tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", tourHandler.ToursWithin)
	tours.GET("/:id", GetOne(tourService.Get))
	tours.POST("", tourHandler.Create, protect, tourWriters)
	tours.PATCH("/:id", UpdateOne(tourService.Update), protect, tourWriters)
	tours.DELETE("/:id", DeleteOne(tourService.Delete), protect, tourWriters)

	reviews := api.Group("/reviews")
	reviews.GET("", reviewHandler.List, protect)
	reviews.GET("/:id", GetOne(reviewService.Get), protect)
	reviews.PATCH("/:id", UpdateOne(reviewService.Update), protect, RestrictTo(entities.RoleUser, entities.RoleAdmin))
	reviews.DELETE("/:id", DeleteOne(reviewService.Delete), protect, RestrictTo(entities.RoleUser, entities.RoleAdmin))

	tourReviews := api.Group("/tours/:tourId/reviews")
	tourReviews.GET("", reviewHandler.List)
	tourReviews.POST("", reviewHandler.Create, protect, RestrictTo(entities.RoleUser))

	return e
}
