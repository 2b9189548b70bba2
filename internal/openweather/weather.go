package openweather

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/skycast/internal/models"
)

type weatherItem struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []weatherItem `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

type ForecastResponse struct {
	Cnt  int `json:"cnt"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []weatherItem `json:"weather"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// FetchCurrent returns the current conditions at coords.
func (c *Client) FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.CurrentWeather, error) {
	var data CurrentResponse
	if err := c.get(ctx, "weather", c.baseURL, "/weather", coordParams(coords), &data); err != nil {
		return nil, fmt.Errorf("fetch current weather: %w", err)
	}
	return parseCurrent(data), nil
}

// FetchForecast returns the 3-hour interval forecast for the next five days.
func (c *Client) FetchForecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error) {
	var data ForecastResponse
	if err := c.get(ctx, "forecast", c.baseURL, "/forecast", coordParams(coords), &data); err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	return parseForecast(data), nil
}

func primaryCondition(items []weatherItem) models.Condition {
	if len(items) == 0 {
		return models.Condition{}
	}
	w := items[0]
	return models.Condition{ID: w.ID, Main: w.Main, Description: w.Description, Icon: w.Icon}
}

func parseCurrent(data CurrentResponse) *models.CurrentWeather {
	return &models.CurrentWeather{
		Name:           data.Name,
		Coords:         models.Coordinates{Lat: data.Coord.Lat, Lon: data.Coord.Lon},
		Temp:           data.Main.Temp,
		FeelsLike:      data.Main.FeelsLike,
		Humidity:       data.Main.Humidity,
		Pressure:       data.Main.Pressure,
		WindSpeed:      data.Wind.Speed,
		Visibility:     data.Visibility,
		Condition:      primaryCondition(data.Weather),
		ObservedAt:     time.Unix(data.Dt, 0).UTC(),
		TimezoneOffset: data.Timezone,
	}
}

func parseForecast(data ForecastResponse) *models.Forecast {
	fc := &models.Forecast{
		City:           data.City.Name,
		TimezoneOffset: data.City.Timezone,
		Entries:        make([]models.ForecastEntry, 0, len(data.List)),
	}
	for _, item := range data.List {
		fc.Entries = append(fc.Entries, models.ForecastEntry{
			Time:      time.Unix(item.Dt, 0).UTC(),
			Temp:      item.Main.Temp,
			Condition: primaryCondition(item.Weather),
		})
	}
	return fc
}
