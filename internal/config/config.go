package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                   string
	APIBaseURL             string
	WeatherAPIURL          string
	WeatherAPIKey          string
	ItineraryAPIURL        string
	DataDir                string
	AllowOrigins           []string
	LogRelayTCPAddr        string
	TaxRate                float64
	HotelImageMaxDimension int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	taxRate := 0.15
	if v, err := strconv.ParseFloat(getenv("TAX_RATE", "0.15"), 64); err == nil && v >= 0 {
		taxRate = v
	}

	maxDim := 1600
	if v, err := strconv.Atoi(getenv("HOTEL_IMAGE_MAX_DIMENSION", "1600")); err == nil && v > 0 {
		maxDim = v
	}

	return Config{
		Port:                   getenv("PORT", "8085"),
		APIBaseURL:             getenv("API_BASE_URL", "http://localhost:8080"),
		WeatherAPIURL:          getenv("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherAPIKey:          getenv("WEATHER_API_KEY", ""),
		ItineraryAPIURL:        getenv("ITINERARY_API_URL", ""),
		DataDir:                getenv("DATA_DIR", "./data"),
		AllowOrigins:           splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogRelayTCPAddr:        getenv("LOG_RELAY_TCP_ADDR", ""),
		TaxRate:                taxRate,
		HotelImageMaxDimension: maxDim,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
