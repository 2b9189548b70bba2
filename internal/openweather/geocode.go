package openweather

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lox/skycast/internal/models"
)

type geocodeResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

// ResolveCity returns the coordinates of the best-ranked match for name.
// The name is passed through untouched; the provider decides what matches.
func (c *Client) ResolveCity(ctx context.Context, name string) (models.Coordinates, error) {
	params := url.Values{
		"q":     {name},
		"limit": {"1"},
	}

	var results []geocodeResult
	if err := c.get(ctx, "geocode", c.geoURL, "/direct", params, &results); err != nil {
		return models.Coordinates{}, fmt.Errorf("resolve city %q: %w", name, err)
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("resolve city %q: %w", name, ErrCityNotFound)
	}

	best := results[0]
	c.log.Debug().
		Str("query", name).
		Str("match", best.Name).
		Str("country", best.Country).
		Msg("city resolved")
	return models.Coordinates{Lat: best.Lat, Lon: best.Lon}, nil
}
