package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/session"
	"github.com/nspraveen/tripnest/internal/util"
)

type AuthHandler struct {
	sessions *session.Manager
}

func RegisterAuth(e *echo.Echo, sessions *session.Manager) {
	h := &AuthHandler{sessions: sessions}

	g := e.Group("/api/v1/auth")
	g.POST("/login", h.login)
	g.POST("/register", h.register)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("email and password are required"))
	}

	principal, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return writeClientError(c, err)
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"principal": principal,
		"is_admin":  h.sessions.IsAdmin(),
	})
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Name          string `json:"name" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		Password      string `json:"password" validate:"required"`
		ContactNumber string `json:"contact_number"`
		Address       string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("name, email and password are required"))
	}

	err := h.sessions.Register(c.Request().Context(), session.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		if errors.Is(err, session.ErrValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return writeClientError(c, err)
	}

	return c.JSON(http.StatusCreated, util.Message("registration successful"))
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.sessions.Logout(); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to clear session"))
	}
	return c.JSON(http.StatusOK, util.Message("signed out"))
}

func (h *AuthHandler) me(c echo.Context) error {
	principal := h.sessions.Current()
	if principal == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("sign in required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"principal": principal,
		"is_admin":  h.sessions.IsAdmin(),
	})
}
