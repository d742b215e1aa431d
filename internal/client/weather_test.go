package client

import (
	"context"
	"math"
	"net/http"
	"testing"
)

func TestWeatherCurrent_MapsWireShape(t *testing.T) {
	body := `{
		"name":"Lisbon","dt":1756380000,
		"sys":{"country":"PT","sunrise":1756356000,"sunset":1756404000},
		"main":{"temp":24.5,"feels_like":25.1,"humidity":60,"pressure":1015},
		"wind":{"speed":5},
		"weather":[{"main":"Clear","description":"clear sky"}]
	}`
	doer := &fakeHTTPClient{fn: func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/weather" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, body), nil
	}}
	weather := NewWeather("http://weather.local", "key123", doer)

	got, err := weather.Current(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if got.City != "Lisbon" || got.Country != "PT" || got.Condition != "Clear" {
		t.Fatalf("unexpected conditions: %+v", got)
	}
	if math.Abs(got.WindKPH-18) > 1e-9 {
		t.Fatalf("wind speed not converted to km/h: %v", got.WindKPH)
	}
}

func TestWeatherForecast_MiddayDigest(t *testing.T) {
	body := `{"list":[
		{"dt_txt":"2026-08-28 09:00:00","main":{"temp_min":14,"temp_max":20},"weather":[{"main":"Clouds","description":"scattered"}]},
		{"dt_txt":"2026-08-28 12:00:00","main":{"temp_min":15,"temp_max":24},"weather":[{"main":"Clear","description":"clear sky"}]},
		{"dt_txt":"2026-08-29 12:00:00","main":{"temp_min":16,"temp_max":26},"weather":[{"main":"Rain","description":"light rain"}]},
		{"dt_txt":"2026-08-29 15:00:00","main":{"temp_min":17,"temp_max":27},"weather":[]}
	]}`
	doer := &fakeHTTPClient{fn: func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("q") != "Lisbon" || q.Get("units") != "metric" || q.Get("appid") != "key123" {
			t.Fatalf("unexpected query: %v", q)
		}
		return jsonResponse(http.StatusOK, body), nil
	}}
	weather := NewWeather("http://weather.local", "key123", doer)

	days, err := weather.Forecast(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("Forecast returned error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected one midday sample per day, got %d", len(days))
	}
	if days[0].Date != "2026-08-28" || days[0].Condition != "Clear" {
		t.Fatalf("unexpected first day: %+v", days[0])
	}
	if days[1].MaxC != 26 {
		t.Fatalf("unexpected second day: %+v", days[1])
	}
}
