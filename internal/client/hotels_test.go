package client

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"
)

func TestHotelsList_MapsWireShape(t *testing.T) {
	body := `[
		{"hotelId":7,"hotelName":"Paris Grand","location":"Paris","pricePerNight":220,"rating":4.5,"amenities":"wifi, pool ,spa","imageUrl":"/img/7.jpg","available":true},
		{"hotelName":"No ID Inn","location":"Nowhere","pricePerNight":80,"rating":3.0,"amenities":"","available":false}
	]`
	doer := &fakeHTTPClient{fn: func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/hotels/all" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, body), nil
	}}
	hotels := NewHotels("http://hotels.local", doer)

	got, err := hotels.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(got))
	}

	first := got[0]
	if first.ID != "7" || first.Name != "Paris Grand" {
		t.Fatalf("unexpected first hotel: %+v", first)
	}
	if len(first.Amenities) != 3 || first.Amenities[1] != "pool" {
		t.Fatalf("amenities not split and trimmed: %v", first.Amenities)
	}

	second := got[1]
	if second.ID != "2" {
		t.Fatalf("positional id fallback not applied: %+v", second)
	}
	if second.Amenities != nil {
		t.Fatalf("empty amenity string should map to nil, got %v", second.Amenities)
	}
}

func TestHotelsList_ServerErrorIsNetwork(t *testing.T) {
	doer := &fakeHTTPClient{fn: func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
	}}
	hotels := NewHotels("http://hotels.local", doer)

	_, err := hotels.List(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestHotelsAdd_PostsMultipartForm(t *testing.T) {
	doer := &fakeHTTPClient{fn: func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/hotels/add" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Fatalf("expected multipart request, got %q (%v)", mediaType, err)
		}

		reader := multipart.NewReader(req.Body, params["boundary"])
		fields := map[string]string{}
		var imageName string
		var imageBytes []byte
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("read part: %v", err)
			}
			data, _ := io.ReadAll(part)
			if part.FileName() != "" {
				imageName = part.FileName()
				imageBytes = data
			} else {
				fields[part.FormName()] = string(data)
			}
		}

		if fields["name"] != "Harbour View" || fields["pricePerNight"] != "150" {
			t.Fatalf("unexpected fields: %v", fields)
		}
		if fields["amenities"] != "wifi,pool" {
			t.Fatalf("amenities not joined: %q", fields["amenities"])
		}
		if imageName != "hotel.jpg" || len(imageBytes) == 0 {
			t.Fatalf("image part missing: %q (%d bytes)", imageName, len(imageBytes))
		}
		return jsonResponse(http.StatusCreated, `{"message":"created"}`), nil
	}}
	hotels := NewHotels("http://hotels.local", doer)

	err := hotels.Add(context.Background(), AddHotelInput{
		Name:          "Harbour View",
		Location:      "Sydney",
		PricePerNight: 150,
		Rating:        4.1,
		Amenities:     []string{"wifi", "pool"},
		Available:     true,
		ImageName:     "hotel.jpg",
		Image:         []byte("jpegdata"),
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
}
