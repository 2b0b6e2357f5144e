package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tours-api/internal/apperrors"
)

type failureEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewErrorHandler builds the single normalizer every handler error flows
// through. Operational errors surface their own message; anything
// unclassified is masked in production and detailed in development.
func NewErrorHandler(logger *slog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Something went very wrong"
		statusWord := "error"
		var cause error

		switch {
		case apperrors.From(err) != nil:
			appErr := apperrors.From(err)
			status = appErr.Status
			message = appErr.Message
			statusWord = appErr.StatusText()
			cause = appErr.Err
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = http.StatusNotFound
			message = "Resource not found"
			statusWord = "fail"
		default:
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				// Framework-level failures: unknown route, oversized
				// body, malformed JSON.
				status = httpErr.Code
				if msg, ok := httpErr.Message.(string); ok {
					message = msg
				}
				if status < 500 {
					statusWord = "fail"
				}
				cause = httpErr.Internal
			} else {
				cause = err
			}
		}

		if status >= 500 {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err,
			)
		}

		envelope := failureEnvelope{Status: statusWord, Message: message}
		if !production && cause != nil {
			envelope.Error = cause.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, envelope)
	}
}
