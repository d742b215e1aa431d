package main

import (
	"io"
	"log"

	"github.com/nspraveen/tripnest/internal/blogfeed"
	"github.com/nspraveen/tripnest/internal/booking"
	"github.com/nspraveen/tripnest/internal/client"
	"github.com/nspraveen/tripnest/internal/config"
	"github.com/nspraveen/tripnest/internal/itinerary"
	"github.com/nspraveen/tripnest/internal/logging"
	"github.com/nspraveen/tripnest/internal/media"
	"github.com/nspraveen/tripnest/internal/moderation"
	"github.com/nspraveen/tripnest/internal/session"
	"github.com/nspraveen/tripnest/internal/store"
	transport "github.com/nspraveen/tripnest/internal/transport/http"
	"github.com/nspraveen/tripnest/internal/weather"
)

func main() {
	cfg := config.Load()

	if cfg.LogRelayTCPAddr != "" {
		relay, err := logging.NewRelayWriter(cfg.LogRelayTCPAddr)
		if err != nil {
			log.Fatalf("log relay: %v", err)
		}
		defer relay.Close()
		log.SetOutput(io.MultiWriter(log.Writer(), relay))
	}

	profile, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open profile store: %v", err)
	}

	auth := client.NewAuth(cfg.APIBaseURL, nil)
	hotels := client.NewHotels(cfg.APIBaseURL, nil)
	blogs := client.NewBlogs(cfg.APIBaseURL, nil)
	payments := client.NewPayments(cfg.APIBaseURL, nil)

	var forecast weather.WeatherAPI
	if cfg.WeatherAPIKey != "" {
		forecast = client.NewWeather(cfg.WeatherAPIURL, cfg.WeatherAPIKey, nil)
	} else {
		log.Printf("Warning: WEATHER_API_KEY not set, weather lookups disabled")
	}

	sessions := session.NewManager(profile, auth)
	sessions.Restore()

	var generator itinerary.GeneratorAPI
	if cfg.ItineraryAPIURL != "" {
		generator = client.NewPlanner(cfg.ItineraryAPIURL, nil)
	}
	planner := itinerary.New(profile, generator)
	planner.Restore()

	feed := blogfeed.New(blogs, profile)
	queue := moderation.NewQueue(blogs)
	calculator := booking.NewCalculator(payments, cfg.TaxRate)
	forecasts := weather.NewService(forecast, profile)
	forecasts.LoadRecent()
	preparer := media.NewPreparer(cfg.HotelImageMaxDimension)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, sessions)
	catalog := transport.RegisterHotels(e, hotels, calculator)
	transport.RegisterPayments(e, sessions, calculator, catalog)
	transport.RegisterItinerary(e, planner)
	transport.RegisterBlogs(e, feed)
	transport.RegisterAdmin(e, sessions, queue, hotels, preparer)
	transport.RegisterWeather(e, forecasts)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
