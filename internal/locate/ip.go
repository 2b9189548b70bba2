package locate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lox/skycast/internal/httputil"
	"github.com/lox/skycast/internal/models"
)

const DefaultIPAPIURL = "http://ip-api.com/json/?fields=status,message,city,lat,lon"

// IPSource approximates the host's position from its public IP address. It
// stands in for the browser capability when running in a terminal.
type IPSource struct {
	url    string
	client *http.Client
}

func NewIPSource(apiURL string) *IPSource {
	if apiURL == "" {
		apiURL = DefaultIPAPIURL
	}
	return &IPSource{url: apiURL, client: httputil.NewClient()}
}

func (s *IPSource) Resolve(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("%w: ip lookup status %d", ErrUnavailable, resp.StatusCode)
	}

	var data struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		City    string  `json:"city"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	if data.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("%w: %s", ErrNotSupported, data.Message)
	}
	return models.Coordinates{Lat: data.Lat, Lon: data.Lon}, nil
}
