// Package booking derives stay quotes and forwards confirmed bookings to
// the payments collaborator. One pricing policy applies app-wide: a
// percentage tax on the room subtotal.
package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nspraveen/tripnest/internal/client"
	"github.com/nspraveen/tripnest/internal/domain"
)

var (
	ErrValidation  = errors.New("booking validation failed")
	ErrNotBookable = errors.New("stay has no nights to book")
	ErrPayment     = errors.New("payment failed")
)

const (
	MethodCreditCard = "Credit Card"
	MethodGooglePay  = "Google Pay"
	MethodPhonePe    = "PhonePe"
)

const dateLayout = "2006-01-02"

var cvvPattern = regexp.MustCompile(`^\d{3}$`)

type PaymentsAPI interface {
	Process(ctx context.Context, req client.PaymentRequest) error
}

type Calculator struct {
	payments PaymentsAPI
	taxRate  float64
	now      func() time.Time
	newID    func() string
}

func NewCalculator(payments PaymentsAPI, taxRate float64) *Calculator {
	return &Calculator{
		payments: payments,
		taxRate:  taxRate,
		now:      time.Now,
		newID:    newTransactionID,
	}
}

func newTransactionID() string {
	return "TRX-" + strings.ToUpper(uuid.NewString()[:8])
}

// Quote computes the advisory price breakdown for a stay. A check-out on
// or before the check-in yields zero nights and a quote that cannot be
// booked.
func (c *Calculator) Quote(hotel domain.Hotel, checkIn, checkOut string) (domain.Quote, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: check-in must be %s", ErrValidation, dateLayout)
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: check-out must be %s", ErrValidation, dateLayout)
	}

	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		nights = 0
	}

	subtotal := hotel.PricePerNight * float64(nights)
	tax := subtotal * c.taxRate
	return domain.Quote{
		Hotel:    hotel,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   nights,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}, nil
}

// Instrument carries whichever payment details the chosen method needs.
type Instrument struct {
	CardName   string
	CardNumber string
	Expiry     string
	CVV        string
	UPIID      string
}

// Confirm validates the instrument, forwards the booking to the payments
// collaborator and returns a receipt. A failure changes nothing and the
// caller may retry.
func (c *Calculator) Confirm(ctx context.Context, principal domain.Principal, quote domain.Quote, method string, instrument Instrument) (*domain.BookingReceipt, error) {
	if !quote.Bookable() {
		return nil, ErrNotBookable
	}
	if err := validateInstrument(method, instrument); err != nil {
		return nil, err
	}

	err := c.payments.Process(ctx, client.PaymentRequest{
		UserEmail: principal.Email,
		HotelName: quote.Hotel.Name,
		CheckIn:   quote.CheckIn,
		CheckOut:  quote.CheckOut,
		Amount:    quote.Total,
		Method:    method,
	})
	if err != nil {
		if errors.Is(err, client.ErrNetwork) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPayment, err)
	}

	return &domain.BookingReceipt{
		TransactionID: c.newID(),
		HotelName:     quote.Hotel.Name,
		CheckIn:       quote.CheckIn,
		CheckOut:      quote.CheckOut,
		Amount:        quote.Total,
		Method:        method,
		ProcessedAt:   c.now(),
	}, nil
}

func validateInstrument(method string, in Instrument) error {
	switch method {
	case MethodCreditCard:
		digits := strings.ReplaceAll(in.CardNumber, " ", "")
		if strings.TrimSpace(in.CardName) == "" {
			return fmt.Errorf("%w: name on card is required", ErrValidation)
		}
		if len(digits) != 16 || !allDigits(digits) {
			return fmt.Errorf("%w: card number must be 16 digits", ErrValidation)
		}
		if strings.TrimSpace(in.Expiry) == "" {
			return fmt.Errorf("%w: expiry is required", ErrValidation)
		}
		if !cvvPattern.MatchString(in.CVV) {
			return fmt.Errorf("%w: CVV must be 3 digits", ErrValidation)
		}
	case MethodGooglePay, MethodPhonePe:
		if strings.TrimSpace(in.UPIID) == "" || !strings.Contains(in.UPIID, "@") {
			return fmt.Errorf("%w: a valid UPI id is required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
