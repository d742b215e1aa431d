package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/client"
	"github.com/nspraveen/tripnest/internal/util"
)

// writeClientError maps collaborator failures onto HTTP statuses. An
// unreachable collaborator is a 502, not a 500; this process is fine.
func writeClientError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, client.ErrNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, client.ErrRejected):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
	case errors.Is(err, client.ErrNetwork):
		return c.JSON(http.StatusBadGateway, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}
