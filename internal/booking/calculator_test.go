package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nspraveen/tripnest/internal/client"
	"github.com/nspraveen/tripnest/internal/domain"
)

type fakePayments struct {
	calls []client.PaymentRequest
	err   error
}

func (f *fakePayments) Process(_ context.Context, req client.PaymentRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

func testHotel() domain.Hotel {
	return domain.Hotel{ID: "1", Name: "Paris Grand", PricePerNight: 100}
}

func TestQuote_ThreeNightStay(t *testing.T) {
	calc := NewCalculator(&fakePayments{}, 0.15)

	quote, err := calc.Quote(testHotel(), "2026-09-01", "2026-09-04")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	if quote.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", quote.Nights)
	}
	if quote.Subtotal != 300 {
		t.Fatalf("expected subtotal 300, got %v", quote.Subtotal)
	}
	if quote.Tax != 45 {
		t.Fatalf("expected tax 45, got %v", quote.Tax)
	}
	if quote.Total != 345 {
		t.Fatalf("expected total 345, got %v", quote.Total)
	}
	if !quote.Bookable() {
		t.Fatalf("expected a bookable quote")
	}
}

func TestQuote_CheckOutBeforeCheckIn(t *testing.T) {
	calc := NewCalculator(&fakePayments{}, 0.15)

	quote, err := calc.Quote(testHotel(), "2026-09-04", "2026-09-01")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if quote.Nights != 0 {
		t.Fatalf("expected 0 nights, got %d", quote.Nights)
	}
	if quote.Total != 0 {
		t.Fatalf("expected total 0, got %v", quote.Total)
	}
	if quote.Bookable() {
		t.Fatalf("zero-night quote must not be bookable")
	}
}

func TestQuote_RejectsMalformedDates(t *testing.T) {
	calc := NewCalculator(&fakePayments{}, 0.15)

	if _, err := calc.Quote(testHotel(), "01/09/2026", "2026-09-04"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestConfirm_ForwardsBookingAndIssuesReceipt(t *testing.T) {
	payments := &fakePayments{}
	calc := NewCalculator(payments, 0.15)

	quote, err := calc.Quote(testHotel(), "2026-09-01", "2026-09-04")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	principal := domain.Principal{Email: "guest@example.com", Role: domain.RoleUser}
	receipt, err := calc.Confirm(context.Background(), principal, quote, MethodCreditCard, Instrument{
		CardName:   "A Guest",
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "09/28",
		CVV:        "123",
	})
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	if len(payments.calls) != 1 {
		t.Fatalf("expected one payment call, got %d", len(payments.calls))
	}
	call := payments.calls[0]
	if call.UserEmail != "guest@example.com" || call.HotelName != "Paris Grand" {
		t.Fatalf("unexpected payment request: %+v", call)
	}
	if call.Amount != 345 {
		t.Fatalf("expected charged amount 345, got %v", call.Amount)
	}

	if receipt.TransactionID == "" || receipt.Amount != 345 || receipt.Method != MethodCreditCard {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestConfirm_RefusesUnbookableQuote(t *testing.T) {
	payments := &fakePayments{}
	calc := NewCalculator(payments, 0.15)

	quote, err := calc.Quote(testHotel(), "2026-09-04", "2026-09-04")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	_, err = calc.Confirm(context.Background(), domain.Principal{Email: "a@b.c"}, quote, MethodCreditCard, Instrument{})
	if !errors.Is(err, ErrNotBookable) {
		t.Fatalf("expected ErrNotBookable, got %v", err)
	}
	if len(payments.calls) != 0 {
		t.Fatalf("payment must not be attempted for an unbookable quote")
	}
}

func TestConfirm_InstrumentValidation(t *testing.T) {
	calc := NewCalculator(&fakePayments{}, 0.15)
	quote, _ := calc.Quote(testHotel(), "2026-09-01", "2026-09-02")
	principal := domain.Principal{Email: "a@b.c"}

	cases := []struct {
		name       string
		method     string
		instrument Instrument
	}{
		{"short card number", MethodCreditCard, Instrument{CardName: "A", CardNumber: "1234", Expiry: "09/28", CVV: "123"}},
		{"missing cvv", MethodCreditCard, Instrument{CardName: "A", CardNumber: "4111111111111111", Expiry: "09/28"}},
		{"upi without at-sign", MethodGooglePay, Instrument{UPIID: "nodomain"}},
		{"unknown method", "Barter", Instrument{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Confirm(context.Background(), principal, quote, tc.method, tc.instrument)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestConfirm_PaymentRefusalWrapsErrPayment(t *testing.T) {
	payments := &fakePayments{err: fmt.Errorf("%w: card declined", client.ErrRejected)}
	calc := NewCalculator(payments, 0.15)
	quote, _ := calc.Quote(testHotel(), "2026-09-01", "2026-09-02")

	_, err := calc.Confirm(context.Background(), domain.Principal{Email: "a@b.c"}, quote, MethodPhonePe, Instrument{UPIID: "guest@upi"})
	if !errors.Is(err, ErrPayment) {
		t.Fatalf("expected ErrPayment, got %v", err)
	}
}

func TestConfirm_NetworkFailurePassesThrough(t *testing.T) {
	payments := &fakePayments{err: fmt.Errorf("%w: connection refused", client.ErrNetwork)}
	calc := NewCalculator(payments, 0.15)
	quote, _ := calc.Quote(testHotel(), "2026-09-01", "2026-09-02")

	_, err := calc.Confirm(context.Background(), domain.Principal{Email: "a@b.c"}, quote, MethodPhonePe, Instrument{UPIID: "guest@upi"})
	if !errors.Is(err, client.ErrNetwork) {
		t.Fatalf("expected ErrNetwork passthrough, got %v", err)
	}
	if errors.Is(err, ErrPayment) {
		t.Fatalf("network failure must not read as a payment refusal")
	}
}
