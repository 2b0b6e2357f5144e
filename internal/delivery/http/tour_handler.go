package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"tours-api/internal/apperrors"
	"tours-api/internal/application/command"
	"tours-api/internal/application/interfaces"
	"tours-api/internal/application/query"
)

type TourHandler struct {
	tourService interfaces.TourService
	allowed     query.Allowed
}

func NewTourHandler(tourService interfaces.TourService, allowed query.Allowed) *TourHandler {
	return &TourHandler{tourService: tourService, allowed: allowed}
}

func (h *TourHandler) Create(c echo.Context) error {
	cmd := new(command.CreateTourCommand)
	if err := c.Bind(cmd); err != nil {
		return apperrors.BadRequest("Invalid input data")
	}
	tour, err := h.tourService.Create(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, tour)
}

// TopFiveCheap prefixes the request with the preset alias parameters, then
// lists as usual.
func (h *TourHandler) TopFiveCheap(c echo.Context) error {
	preset := url.Values{
		"limit":  {"5"},
		"sort":   {"-ratingsAverage,price"},
		"fields": {"name,price,ratingsAverage,summary,difficulty"},
	}
	opts := query.ParseOptions(preset, h.allowed)
	tours, err := h.tourService.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(tours), tours)
}

func (h *TourHandler) Stats(c echo.Context) error {
	stats, err := h.tourService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, stats)
}

func (h *TourHandler) MonthlyPlan(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return apperrors.BadRequest("Invalid year")
	}
	plan, err := h.tourService.MonthlyPlan(c.Request().Context(), year)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(plan), plan)
}

// ToursWithin handles /tours-within/:distance/center/:latlng/unit/:unit
// where latlng is "lat,lng".
func (h *TourHandler) ToursWithin(c echo.Context) error {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		return apperrors.BadRequest("Invalid distance")
	}

	parts := strings.Split(c.Param("latlng"), ",")
	if len(parts) != 2 {
		return apperrors.BadRequest("Please provide latitude and longitude in the format lat,lng")
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lngErr != nil {
		return apperrors.BadRequest("Please provide latitude and longitude in the format lat,lng")
	}

	tours, err := h.tourService.ToursWithin(c.Request().Context(), distance, lat, lng, c.Param("unit"))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(tours), tours)
}
