// Package httpapi is the HTTP delivery layer: routing, middleware and the
// response envelope. Handlers translate requests into service calls and
// signal failures as typed errors; they never write error responses
// themselves.
package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tours-api/internal/application/common"
)

const authCookieName = "jwt"

type dataEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type listEnvelope struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Data    any    `json:"data"`
}

func respondData(c echo.Context, code int, data any) error {
	return c.JSON(code, dataEnvelope{Status: "success", Data: data})
}

// respondList adds the result count alongside the collection payload.
func respondList(c echo.Context, code int, results int, data any) error {
	return c.JSON(code, listEnvelope{Status: "success", Results: results, Data: data})
}

// respondAuth sends a freshly issued token both in the body and as an
// http-only cookie whose lifetime matches the token's.
func respondAuth(c echo.Context, code int, auth *common.AuthResult, ttl time.Duration, secure bool) error {
	c.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    auth.Token,
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		Path:     "/",
	})
	return c.JSON(code, dataEnvelope{Status: "success", Data: auth})
}
