package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/blogfeed"
	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/util"
)

type BlogHandler struct {
	feed *blogfeed.Feed
}

func RegisterBlogs(e *echo.Echo, feed *blogfeed.Feed) {
	h := &BlogHandler{feed: feed}

	g := e.Group("/api/v1/blogs")
	g.GET("", h.list)
	g.POST("/refresh", h.refresh)
	g.POST("/submit", h.submit)
	g.GET("/drafts", h.drafts)
	g.POST("/drafts", h.saveDraft)
	g.DELETE("/drafts/:index", h.discardDraft)
	g.GET("/saved", h.saved)
	g.POST("/saved/:id/toggle", h.toggleSaved)
}

type blogView struct {
	domain.Blog
	ReadMinutes int  `json:"read_minutes"`
	Saved       bool `json:"saved"`
}

func (h *BlogHandler) list(c echo.Context) error {
	blogs := h.feed.Search(c.QueryParam("q"))
	return c.JSON(http.StatusOK, util.Data("blogs", h.views(blogs)))
}

// refresh pulls the published list from the collaborator; the seeded
// list keeps serving if the pull fails.
func (h *BlogHandler) refresh(c echo.Context) error {
	if err := h.feed.Refresh(c.Request().Context()); err != nil {
		return writeClientError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("blogs", h.views(h.feed.Items())))
}

func (h *BlogHandler) submit(c echo.Context) error {
	var req struct {
		PenName string `json:"pen_name" validate:"required"`
		Title   string `json:"title" validate:"required"`
		Body    string `json:"body" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("pen name, title and body are required"))
	}

	if err := h.feed.Submit(c.Request().Context(), req.PenName, req.Title, req.Body); err != nil {
		if errors.Is(err, blogfeed.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return writeClientError(c, err)
	}
	return c.JSON(http.StatusAccepted, util.Message("submitted for moderation"))
}

func (h *BlogHandler) drafts(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("drafts", h.feed.Drafts()))
}

func (h *BlogHandler) saveDraft(c echo.Context) error {
	var req struct {
		PenName string `json:"pen_name"`
		Title   string `json:"title"`
		Body    string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.feed.SaveDraft(req.PenName, req.Title, req.Body); err != nil {
		if errors.Is(err, blogfeed.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save draft"))
	}
	return c.JSON(http.StatusCreated, util.Data("drafts", h.feed.Drafts()))
}

func (h *BlogHandler) discardDraft(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("index must be a number"))
	}
	if err := h.feed.DiscardDraft(index); err != nil {
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Data("drafts", h.feed.Drafts()))
}

func (h *BlogHandler) saved(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("saved_ids", h.feed.SavedIDs()))
}

func (h *BlogHandler) toggleSaved(c echo.Context) error {
	saved, err := h.feed.ToggleSaved(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update saved list"))
	}
	return c.JSON(http.StatusOK, util.Data("saved", saved))
}

func (h *BlogHandler) views(blogs []domain.Blog) []blogView {
	savedIDs := make(map[string]bool)
	for _, id := range h.feed.SavedIDs() {
		savedIDs[id] = true
	}

	views := make([]blogView, 0, len(blogs))
	for _, blog := range blogs {
		views = append(views, blogView{
			Blog:        blog,
			ReadMinutes: blogfeed.ReadMinutes(blog.Body),
			Saved:       savedIDs[blog.ID],
		})
	}
	return views
}
