package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nspraveen/tripnest/internal/booking"
	"github.com/nspraveen/tripnest/internal/session"
	"github.com/nspraveen/tripnest/internal/util"
)

type PaymentHandler struct {
	calculator *booking.Calculator
	catalog    *HotelHandler
}

func RegisterPayments(e *echo.Echo, sessions *session.Manager, calculator *booking.Calculator, catalog *HotelHandler) {
	h := &PaymentHandler{calculator: calculator, catalog: catalog}

	g := e.Group("/api/v1/bookings", RequireSession(sessions))
	g.POST("", h.confirm)
}

func (h *PaymentHandler) confirm(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("sign in required"))
	}

	var req struct {
		HotelID  string `json:"hotel_id" validate:"required"`
		CheckIn  string `json:"check_in" validate:"required"`
		CheckOut string `json:"check_out" validate:"required"`
		Method   string `json:"method" validate:"required"`

		CardName   string `json:"card_name"`
		CardNumber string `json:"card_number"`
		Expiry     string `json:"expiry"`
		CVV        string `json:"cvv"`
		UPIID      string `json:"upi_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("hotel, stay dates and payment method are required"))
	}

	hotel, ok := h.catalog.find(c.Request().Context(), req.HotelID)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error("unknown hotel"))
	}

	quote, err := h.calculator.Quote(hotel, req.CheckIn, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	receipt, err := h.calculator.Confirm(c.Request().Context(), principal, quote, req.Method, booking.Instrument{
		CardName:   req.CardName,
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
		UPIID:      req.UPIID,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, booking.ErrNotBookable):
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		case errors.Is(err, booking.ErrPayment):
			return c.JSON(http.StatusPaymentRequired, util.Error(err.Error()))
		default:
			return writeClientError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, util.Data("receipt", receipt))
}
