package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/interfaces"
)

type AuthHandler struct {
	authService interfaces.AuthService
	tokenTTL    time.Duration
	secure      bool
}

func NewAuthHandler(authService interfaces.AuthService, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, secure: secureCookies}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	cmd := new(command.SignupCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}
	auth, err := h.authService.Signup(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respondAuth(c, http.StatusCreated, auth, h.tokenTTL, h.secure)
}

func (h *AuthHandler) Login(c echo.Context) error {
	cmd := new(command.LoginCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}
	auth, err := h.authService.Login(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respondAuth(c, http.StatusOK, auth, h.tokenTTL, h.secure)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	cmd := new(command.ForgotPasswordCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}

	// The reset link points back at this API's redemption endpoint.
	resetURLBase := fmt.Sprintf("%s://%s/api/v1/users/resetPassword", c.Scheme(), c.Request().Host)
	if err := h.authService.ForgotPassword(c.Request().Context(), cmd, resetURLBase); err != nil {
		return err
	}
	return respondData(c, http.StatusOK, map[string]string{"message": "Token sent to email!"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	cmd := new(command.ResetPasswordCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}
	auth, err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), cmd)
	if err != nil {
		return err
	}
	return respondAuth(c, http.StatusOK, auth, h.tokenTTL, h.secure)
}

func (h *AuthHandler) UpdateMyPassword(c echo.Context) error {
	cmd := new(command.UpdatePasswordCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}
	auth, err := h.authService.UpdatePassword(c.Request().Context(), CurrentUser(c).ID, cmd)
	if err != nil {
		return err
	}
	return respondAuth(c, http.StatusOK, auth, h.tokenTTL, h.secure)
}
