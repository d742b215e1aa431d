// Package weather combines the current conditions and the 5-day digest
// into one report and remembers the last few successful searches.
package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/store"
)

var (
	ErrValidation = errors.New("weather validation failed")

	// ErrNotConfigured means no forecast provider was wired in, usually
	// because the API credential is absent from the environment.
	ErrNotConfigured = errors.New("weather lookups are not configured")
)

const maxRecent = 5

type WeatherAPI interface {
	Current(ctx context.Context, city string) (*domain.CurrentWeather, error)
	Forecast(ctx context.Context, city string) ([]domain.ForecastDay, error)
}

type Storage interface {
	Get(key string, out any) error
	Put(key string, value any) error
}

type Service struct {
	api   WeatherAPI
	store Storage

	mu     sync.Mutex
	recent []string
}

func NewService(api WeatherAPI, storage Storage) *Service {
	return &Service{api: api, store: storage}
}

// LoadRecent restores the recent-search list; an absent or corrupt
// record simply leaves it empty.
func (s *Service) LoadRecent() {
	var recent []string
	if err := s.store.Get(store.KeyRecentWeather, &recent); err != nil {
		return
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = recent
}

// Lookup fetches both halves of the report. Only a fully successful
// lookup is recorded as a recent search.
func (s *Service) Lookup(ctx context.Context, city string) (*domain.WeatherReport, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrValidation)
	}
	if s.api == nil {
		return nil, ErrNotConfigured
	}

	current, err := s.api.Current(ctx, city)
	if err != nil {
		return nil, err
	}
	forecast, err := s.api.Forecast(ctx, city)
	if err != nil {
		return nil, err
	}

	// Record under the name the provider resolved, not the raw query.
	name := current.City
	if name == "" {
		name = city
	}
	s.record(name)

	return &domain.WeatherReport{Current: *current, Forecast: forecast}, nil
}

func (s *Service) record(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, maxRecent)
	kept = append(kept, city)
	for _, existing := range s.recent {
		if strings.EqualFold(existing, city) {
			continue
		}
		kept = append(kept, existing)
		if len(kept) == maxRecent {
			break
		}
	}
	s.recent = kept

	// Persistence is best effort; a failed write only costs history.
	_ = s.store.Put(store.KeyRecentWeather, s.recent)
}

func (s *Service) Recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recent...)
}
