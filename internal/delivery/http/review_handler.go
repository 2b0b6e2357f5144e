package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/interfaces"
	"tours-api/internal/application/query"
)

type ReviewHandler struct {
	reviewService interfaces.ReviewService
	allowed       query.Allowed
}

func NewReviewHandler(reviewService interfaces.ReviewService, allowed query.Allowed) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, allowed: allowed}
}

// List serves both /reviews and the nested /tours/:tourId/reviews; on the
// nested route results are scoped to the tour.
func (h *ReviewHandler) List(c echo.Context) error {
	var tourID *uuid.UUID
	if raw := c.Param("tourId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.BadRequest("Invalid ID")
		}
		tourID = &id
	}

	opts := query.ParseOptions(c.QueryParams(), h.allowed)
	reviews, err := h.reviewService.List(c.Request().Context(), opts, tourID)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(reviews), reviews)
}

// Create injects the tour from the path and the author from the principal;
// neither is accepted from the body.
func (h *ReviewHandler) Create(c echo.Context) error {
	cmd := new(command.CreateReviewCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}

	tourID, err := uuid.Parse(c.Param("tourId"))
	if err != nil {
		return apperrors.BadRequest("Invalid ID")
	}
	cmd.TourID = tourID
	cmd.UserID = CurrentUser(c).ID

	review, err := h.reviewService.Create(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, review)
}
