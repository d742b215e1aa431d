package domain

import "time"

type CurrentWeather struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	TempC       float64   `json:"temp_c"`
	FeelsLikeC  float64   `json:"feels_like_c"`
	Humidity    int       `json:"humidity"`
	WindKPH     float64   `json:"wind_kph"`
	PressureHPA int       `json:"pressure_hpa"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	ObservedAt  time.Time `json:"observed_at"`
}

type ForecastDay struct {
	Date        string  `json:"date"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	MinC        float64 `json:"min_c"`
	MaxC        float64 `json:"max_c"`
}

type WeatherReport struct {
	Current  CurrentWeather `json:"current"`
	Forecast []ForecastDay  `json:"forecast"`
}
