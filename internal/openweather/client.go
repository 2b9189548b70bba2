// Package openweather talks to the OpenWeatherMap current weather, 5 day
// forecast and direct geocoding endpoints.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/skycast/internal/httputil"
	"github.com/lox/skycast/internal/metrics"
	"github.com/lox/skycast/internal/models"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultGeoURL  = "https://api.openweathermap.org/geo/1.0"

	// Units are fixed for the lifetime of the process.
	Units = "metric"

	maxErrorBody = 256
)

var (
	// ErrRequestFailed covers transport failures and non-2xx responses alike.
	ErrRequestFailed = errors.New("request failed")
	ErrCityNotFound  = errors.New("city not found")
)

// RequestError describes a failed call to one endpoint.
type RequestError struct {
	Endpoint string
	Status   int // zero when the request never got a response
	Body     string
	Err      error
}

func (e *RequestError) Error() string {
	if e.Status == 0 || e.Body == "" {
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

type Client struct {
	apiKey  string
	baseURL string
	geoURL  string
	client  *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

func WithGeoURL(u string) Option { return func(c *Client) { c.geoURL = u } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.client = hc } }

func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		geoURL:  DefaultGeoURL,
		client:  httputil.NewClient(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "openweather").Logger()
	return c
}

func coordParams(coords models.Coordinates) url.Values {
	return url.Values{
		"lat":   {strconv.FormatFloat(coords.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(coords.Lon, 'f', -1, 64)},
		"units": {Units},
	}
}

// get performs a single GET against base+path and decodes the JSON body into
// out. There is no retry; the HTTP client's own timeout is the only bound.
func (c *Client) get(ctx context.Context, endpoint, base, path string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	u := base + path + "?" + params.Encode()

	start := time.Now()
	status := "error"
	defer func() {
		metrics.OWMAPICallsTotal.WithLabelValues(endpoint, status).Inc()
		metrics.OWMAPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Err: fmt.Errorf("create request: %w", stripURL(err))}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		err = stripURL(err)
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("request failed")
		return &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("unexpected status")
		return &RequestError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     string(body),
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Endpoint: endpoint, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Dur("duration", time.Since(start)).
		Msg("request complete")
	return nil
}

// stripURL drops the request URL from transport errors. It carries the
// API key.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
