package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/query"
)

// Generic handler factories for the operations every collection shares.
// Each takes the service function directly, so one implementation covers
// tours, users and reviews.

func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("Invalid ID")
	}
	return id, nil
}

// GetAll parses the request's query specification against the collection's
// allow-list and returns the page with its result count.
func GetAll[T any](list func(context.Context, query.Options) ([]T, error), allowed query.Allowed) echo.HandlerFunc {
	return func(c echo.Context) error {
		opts := query.ParseOptions(c.QueryParams(), allowed)
		items, err := list(c.Request().Context(), opts)
		if err != nil {
			return err
		}
		return respondList(c, http.StatusOK, len(items), items)
	}
}

func GetOne[T any](get func(context.Context, uuid.UUID) (*T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		item, err := get(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return respondData(c, http.StatusOK, item)
	}
}

// UpdateOne binds the partial-update DTO and returns the updated record.
func UpdateOne[C, T any](update func(context.Context, uuid.UUID, *C) (*T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		cmd := new(C)
		if err := c.Bind(cmd); err != nil {
			return apperrors.BadRequest("Invalid input data")
		}
		item, err := update(c.Request().Context(), id, cmd)
		if err != nil {
			return err
		}
		return respondData(c, http.StatusOK, item)
	}
}

func DeleteOne(remove func(context.Context, uuid.UUID) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := remove(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
