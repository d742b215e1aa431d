package domain

import "time"

// Quote is the advisory price breakdown for a hotel stay. It is
// display-only until confirmed through the payments collaborator and is
// never persisted.
type Quote struct {
	Hotel    Hotel   `json:"hotel"`
	CheckIn  string  `json:"check_in"`
	CheckOut string  `json:"check_out"`
	Nights   int     `json:"nights"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Bookable reports whether the stay can be booked at all. A non-positive
// date span disables booking rather than producing a zero-priced order.
func (q Quote) Bookable() bool {
	return q.Nights > 0
}

type BookingReceipt struct {
	TransactionID string    `json:"transaction_id"`
	HotelName     string    `json:"hotel_name"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	ProcessedAt   time.Time `json:"processed_at"`
}
