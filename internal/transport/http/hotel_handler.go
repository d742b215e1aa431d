package http

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/booking"
	"github.com/nspraveen/tripnest/internal/collection"
	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/util"
)

type HotelsAPI interface {
	List(ctx context.Context) ([]domain.Hotel, error)
}

type HotelHandler struct {
	hotels     HotelsAPI
	calculator *booking.Calculator

	mu         sync.Mutex
	cache      []domain.Hotel
	generation uint64
}

func RegisterHotels(e *echo.Echo, hotels HotelsAPI, calculator *booking.Calculator) *HotelHandler {
	h := &HotelHandler{hotels: hotels, calculator: calculator}

	g := e.Group("/api/v1/hotels")
	g.GET("", h.list)
	g.POST("/:id/quote", h.quote)
	return h
}

func (h *HotelHandler) list(c echo.Context) error {
	all, stale, err := h.refresh(c.Request().Context())
	if err != nil {
		return writeClientError(c, err)
	}

	criteria := collection.Criteria{
		Query:         c.QueryParam("q"),
		AvailableOnly: c.QueryParam("available_only") == "true",
		Sort:          collection.ParseSortKey(c.QueryParam("sort")),
	}
	hotels := collection.Derive(all, criteria, collection.HotelFields())

	return c.JSON(http.StatusOK, util.Envelope{
		"hotels": hotels,
		"stale":  stale,
	})
}

func (h *HotelHandler) quote(c echo.Context) error {
	var req struct {
		CheckIn  string `json:"check_in" validate:"required"`
		CheckOut string `json:"check_out" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("check_in and check_out are required"))
	}

	hotel, ok := h.find(c.Request().Context(), c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error("unknown hotel"))
	}

	quote, err := h.calculator.Quote(hotel, req.CheckIn, req.CheckOut)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Data("quote", quote))
}

// refresh fetches the catalog, falling back to the last good copy when
// the collaborator is down. A fetch overtaken by a newer one discards
// its result.
func (h *HotelHandler) refresh(ctx context.Context) (hotels []domain.Hotel, stale bool, err error) {
	h.mu.Lock()
	h.generation++
	gen := h.generation
	cached := append([]domain.Hotel(nil), h.cache...)
	h.mu.Unlock()

	fetched, err := h.hotels.List(ctx)
	if err != nil {
		if len(cached) > 0 {
			return cached, true, nil
		}
		return nil, false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen == h.generation {
		h.cache = fetched
	}
	return append([]domain.Hotel(nil), fetched...), false, nil
}

func (h *HotelHandler) find(ctx context.Context, id string) (domain.Hotel, bool) {
	h.mu.Lock()
	cached := append([]domain.Hotel(nil), h.cache...)
	h.mu.Unlock()

	if len(cached) == 0 {
		refreshed, _, err := h.refresh(ctx)
		if err != nil {
			return domain.Hotel{}, false
		}
		cached = refreshed
	}
	for _, hotel := range cached {
		if hotel.ID == id {
			return hotel, true
		}
	}
	return domain.Hotel{}, false
}
