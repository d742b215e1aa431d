package config

import "testing"

func TestLoad_MissingWeatherKeyIsNotFatal(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "")

	cfg := Load()
	if cfg.WeatherAPIKey != "" {
		t.Fatalf("expected empty weather key, got %q", cfg.WeatherAPIKey)
	}
	if cfg.Port == "" || cfg.DataDir == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "TAX_RATE", "HOTEL_IMAGE_MAX_DIMENSION", "ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8085" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.TaxRate != 0.15 {
		t.Fatalf("unexpected default tax rate %v", cfg.TaxRate)
	}
	if cfg.HotelImageMaxDimension != 1600 {
		t.Fatalf("unexpected default image cap %d", cfg.HotelImageMaxDimension)
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
		t.Fatalf("unexpected default origins %v", cfg.AllowOrigins)
	}
}
