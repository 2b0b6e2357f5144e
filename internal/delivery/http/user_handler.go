package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/interfaces"
)

type UserHandler struct {
	userService interfaces.UserService
}

func NewUserHandler(userService interfaces.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c echo.Context) error {
	profile, err := h.userService.GetProfile(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, profile)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	cmd := new(command.UpdateMeCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}
	profile, err := h.userService.UpdateMe(c.Request().Context(), CurrentUser(c).ID, cmd)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, profile)
}

func (h *UserHandler) DeleteMe(c echo.Context) error {
	if err := h.userService.DeactivateMe(c.Request().Context(), CurrentUser(c).ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
