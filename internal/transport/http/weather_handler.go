package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/util"
	"github.com/nspraveen/tripnest/internal/weather"
)

type WeatherHandler struct {
	service *weather.Service
}

func RegisterWeather(e *echo.Echo, service *weather.Service) {
	h := &WeatherHandler{service: service}

	g := e.Group("/api/v1/weather")
	g.GET("", h.lookup)
	g.GET("/recent", h.recent)
}

func (h *WeatherHandler) lookup(c echo.Context) error {
	report, err := h.service.Lookup(c.Request().Context(), c.QueryParam("city"))
	if err != nil {
		if errors.Is(err, weather.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		if errors.Is(err, weather.ErrNotConfigured) {
			return c.JSON(http.StatusServiceUnavailable, util.Error(err.Error()))
		}
		return writeClientError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("report", report))
}

func (h *WeatherHandler) recent(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("recent", h.service.Recent()))
}
