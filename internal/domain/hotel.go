package domain

type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	Amenities     []string `json:"amenities,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Available     bool     `json:"available"`
}
