package client

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/nspraveen/tripnest/internal/domain"
)

// Weather talks to the third-party forecast API. The credential comes
// from config and rides along as a query parameter.
type Weather struct {
	rest
	apiKey string
}

func NewWeather(baseURL, apiKey string, doer HTTPDoer) *Weather {
	return &Weather{rest: newREST(baseURL, doer), apiKey: apiKey}
}

type currentDTO struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (w *Weather) Current(ctx context.Context, city string) (*domain.CurrentWeather, error) {
	var dto currentDTO
	if err := w.getJSON(ctx, w.query("/weather", city), &dto); err != nil {
		return nil, err
	}

	current := &domain.CurrentWeather{
		City:        dto.Name,
		Country:     dto.Sys.Country,
		TempC:       dto.Main.Temp,
		FeelsLikeC:  dto.Main.FeelsLike,
		Humidity:    dto.Main.Humidity,
		PressureHPA: dto.Main.Pressure,
		WindKPH:     dto.Wind.Speed * 3.6,
		Sunrise:     time.Unix(dto.Sys.Sunrise, 0),
		Sunset:      time.Unix(dto.Sys.Sunset, 0),
		ObservedAt:  time.Unix(dto.Dt, 0),
	}
	if len(dto.Weather) > 0 {
		current.Condition = dto.Weather[0].Main
		current.Description = dto.Weather[0].Description
	}
	return current, nil
}

type forecastDTO struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns the 5-day digest: one midday sample per day.
func (w *Weather) Forecast(ctx context.Context, city string) ([]domain.ForecastDay, error) {
	var dto forecastDTO
	if err := w.getJSON(ctx, w.query("/forecast", city), &dto); err != nil {
		return nil, err
	}

	days := make([]domain.ForecastDay, 0, 5)
	for _, item := range dto.List {
		if !strings.Contains(item.DtTxt, "12:00:00") {
			continue
		}
		day := domain.ForecastDay{
			MinC: item.Main.TempMin,
			MaxC: item.Main.TempMax,
		}
		if len(item.DtTxt) >= 10 {
			day.Date = item.DtTxt[:10]
		}
		if len(item.Weather) > 0 {
			day.Condition = item.Weather[0].Main
			day.Description = item.Weather[0].Description
		}
		days = append(days, day)
		if len(days) == 5 {
			break
		}
	}
	return days, nil
}

func (w *Weather) query(path, city string) string {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	params.Set("appid", w.apiKey)
	return path + "?" + params.Encode()
}
