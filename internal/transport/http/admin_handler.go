package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/client"
	"github.com/nspraveen/tripnest/internal/media"
	"github.com/nspraveen/tripnest/internal/moderation"
	"github.com/nspraveen/tripnest/internal/session"
	"github.com/nspraveen/tripnest/internal/util"
)

type HotelsAdminAPI interface {
	Add(ctx context.Context, in client.AddHotelInput) error
}

type AdminHandler struct {
	queue    *moderation.Queue
	hotels   HotelsAdminAPI
	preparer *media.Preparer
}

func RegisterAdmin(e *echo.Echo, sessions *session.Manager, queue *moderation.Queue, hotels HotelsAdminAPI, preparer *media.Preparer) {
	h := &AdminHandler{queue: queue, hotels: hotels, preparer: preparer}

	g := e.Group("/api/v1/admin", RequireSession(sessions), RequireAdmin(sessions))
	g.GET("/blogs/pending", h.pending)
	g.POST("/blogs/:id/approve", h.approve)
	g.POST("/blogs/:id/reject", h.reject)
	g.POST("/hotels", h.addHotel)
	g.GET("/stats", h.stats)
}

func (h *AdminHandler) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("pending_blogs", h.queue.Count()))
}

func (h *AdminHandler) pending(c echo.Context) error {
	if err := h.queue.Load(c.Request().Context()); err != nil {
		return writeClientError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"pending": h.queue.Pending(),
		"count":   h.queue.Count(),
	})
}

func (h *AdminHandler) approve(c echo.Context) error {
	return h.transition(c, h.queue.Approve)
}

func (h *AdminHandler) reject(c echo.Context) error {
	return h.transition(c, h.queue.Reject)
}

func (h *AdminHandler) transition(c echo.Context, apply func(context.Context, string) error) error {
	if err := apply(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, moderation.ErrNotPending) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return writeClientError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"pending": h.queue.Pending(),
		"count":   h.queue.Count(),
	})
}

// addHotel accepts the admin create form as multipart data, downscales
// the photo and forwards the whole thing to the hotels collaborator.
func (h *AdminHandler) addHotel(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, util.Error("name and location are required"))
	}

	price, err := strconv.ParseFloat(c.FormValue("price_per_night"), 64)
	if err != nil || price <= 0 {
		return c.JSON(http.StatusBadRequest, util.Error("price_per_night must be a positive number"))
	}
	rating, err := strconv.ParseFloat(c.FormValue("rating"), 64)
	if err != nil || rating < 0 || rating > 5 {
		return c.JSON(http.StatusBadRequest, util.Error("rating must be between 0 and 5"))
	}
	available := c.FormValue("available") != "false"

	var amenities []string
	for _, amenity := range strings.Split(c.FormValue("amenities"), ",") {
		if trimmed := strings.TrimSpace(amenity); trimmed != "" {
			amenities = append(amenities, trimmed)
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("a hotel image is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read image"))
	}
	defer file.Close()

	prepared, err := h.preparer.Prepare(media.Upload{
		Reader:      file,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	err = h.hotels.Add(c.Request().Context(), client.AddHotelInput{
		Name:          name,
		Location:      location,
		PricePerNight: price,
		Rating:        rating,
		Amenities:     amenities,
		Available:     available,
		ImageName:     fileHeader.Filename,
		Image:         prepared.Bytes,
	})
	if err != nil {
		return writeClientError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Message("hotel added"))
}
