package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/nspraveen/tripnest/internal/domain"
)

type Hotels struct {
	rest
}

func NewHotels(baseURL string, doer HTTPDoer) *Hotels {
	return &Hotels{rest: newREST(baseURL, doer)}
}

// hotelDTO matches the hotels service wire shape, where amenities travel
// as one comma-separated string.
type hotelDTO struct {
	ID            json.Number `json:"hotelId"`
	Name          string      `json:"hotelName"`
	Location      string      `json:"location"`
	PricePerNight float64     `json:"pricePerNight"`
	Rating        float64     `json:"rating"`
	Amenities     string      `json:"amenities"`
	ImageURL      string      `json:"imageUrl"`
	Available     bool        `json:"available"`
}

func (h *Hotels) List(ctx context.Context) ([]domain.Hotel, error) {
	var dtos []hotelDTO
	if err := h.getJSON(ctx, "/api/hotels/all", &dtos); err != nil {
		return nil, err
	}

	hotels := make([]domain.Hotel, 0, len(dtos))
	for i, dto := range dtos {
		id := dto.ID.String()
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		hotels = append(hotels, domain.Hotel{
			ID:            id,
			Name:          dto.Name,
			Location:      dto.Location,
			PricePerNight: dto.PricePerNight,
			Rating:        dto.Rating,
			Amenities:     splitAmenities(dto.Amenities),
			ImageURL:      dto.ImageURL,
			Available:     dto.Available,
		})
	}
	return hotels, nil
}

type AddHotelInput struct {
	Name          string
	Location      string
	PricePerNight float64
	Rating        float64
	Amenities     []string
	Available     bool
	ImageName     string
	Image         []byte
}

// Add posts the admin create-flow as multipart form data, image included.
func (h *Hotels) Add(ctx context.Context, in AddHotelInput) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          in.Name,
		"location":      in.Location,
		"pricePerNight": strconv.FormatFloat(in.PricePerNight, 'f', -1, 64),
		"rating":        strconv.FormatFloat(in.Rating, 'f', -1, 64),
		"amenities":     strings.Join(in.Amenities, ","),
		"available":     strconv.FormatBool(in.Available),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
	}

	part, err := w.CreateFormFile("image", in.ImageName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if _, err := part.Write(in.Image); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/api/hotels/add", &buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.send(req, nil)
}

func splitAmenities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
