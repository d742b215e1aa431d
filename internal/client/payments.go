package client

import "context"

type Payments struct {
	rest
}

func NewPayments(baseURL string, doer HTTPDoer) *Payments {
	return &Payments{rest: newREST(baseURL, doer)}
}

type PaymentRequest struct {
	UserEmail string  `json:"userEmail"`
	HotelName string  `json:"hotelName"`
	CheckIn   string  `json:"checkIn"`
	CheckOut  string  `json:"checkOut"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"paymentMethod"`
}

func (p *Payments) Process(ctx context.Context, req PaymentRequest) error {
	return p.postJSON(ctx, "/api/payments/process", req, nil)
}
