package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/itinerary"
	"github.com/nspraveen/tripnest/internal/util"
)

type ItineraryHandler struct {
	planner *itinerary.Planner
}

func RegisterItinerary(e *echo.Echo, planner *itinerary.Planner) {
	h := &ItineraryHandler{planner: planner}

	g := e.Group("/api/v1/itinerary")
	g.GET("", h.get)
	g.POST("/entries", h.addEntry)
	g.DELETE("/entries/:index", h.removeEntry)
	g.POST("/entries/:index/toggle", h.toggleEntry)
	g.POST("/generate", h.generate)
	g.GET("/export", h.export)
}

func (h *ItineraryHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Envelope{
		"details": h.planner.Details(),
		"days":    h.planner.GroupByDate(),
	})
}

func (h *ItineraryHandler) addEntry(c echo.Context) error {
	var req struct {
		Date        string `json:"date" validate:"required"`
		Description string `json:"description" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("date and description are required"))
	}

	if err := h.planner.AddManual(req.Date, req.Description); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return h.persistAndRespond(c, http.StatusCreated)
}

func (h *ItineraryHandler) removeEntry(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("index must be a number"))
	}
	if err := h.planner.Remove(index); err != nil {
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	}
	return h.persistAndRespond(c, http.StatusOK)
}

func (h *ItineraryHandler) toggleEntry(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("index must be a number"))
	}
	if err := h.planner.ToggleComplete(index); err != nil {
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	}
	return h.persistAndRespond(c, http.StatusOK)
}

func (h *ItineraryHandler) generate(c echo.Context) error {
	var req struct {
		Destination string `json:"destination" validate:"required"`
		Days        int    `json:"days"`
		Budget      int    `json:"budget"`
		Travelers   int    `json:"travelers"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("destination is required"))
	}
	if req.Days == 0 {
		req.Days = 1
	}

	err := h.planner.Generate(c.Request().Context(), req.Destination, req.Days, req.Budget, req.Travelers)
	if err != nil {
		if errors.Is(err, itinerary.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return writeClientError(c, err)
	}
	return h.persistAndRespond(c, http.StatusOK)
}

func (h *ItineraryHandler) export(c echo.Context) error {
	filename, content := h.planner.ExportText()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(content))
}

func (h *ItineraryHandler) persistAndRespond(c echo.Context, status int) error {
	if err := h.planner.Persist(); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save itinerary"))
	}
	return c.JSON(status, util.Envelope{
		"details": h.planner.Details(),
		"days":    h.planner.GroupByDate(),
	})
}
