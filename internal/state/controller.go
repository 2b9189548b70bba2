// Package state owns the per-session view state and drives the location,
// geocoding and weather clients in response to user actions.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/skycast/internal/locate"
	"github.com/lox/skycast/internal/metrics"
	"github.com/lox/skycast/internal/models"
	"github.com/lox/skycast/internal/openweather"
)

// User-facing messages. These are the only error text the page ever shows.
const (
	MsgLocationUnavailable = "Unable to retrieve your location. Please search for a city manually."
	MsgCityNotFound        = "City not found"
	MsgRequestFailed       = "An error occurred"
)

type WeatherFetcher interface {
	FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.CurrentWeather, error)
	FetchForecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error)
}

type Geocoder interface {
	ResolveCity(ctx context.Context, name string) (models.Coordinates, error)
}

// State is a snapshot of everything the page renders from.
type State struct {
	SearchText string                        `json:"search_text"`
	DarkMode   bool                          `json:"dark_mode"`
	Attempted  bool                          `json:"attempted"`
	Coords     *models.Coordinates           `json:"coords,omitempty"`
	Current    Stream[models.CurrentWeather] `json:"current"`
	Forecast   Stream[models.Forecast]       `json:"forecast"`
	UpdatedAt  time.Time                     `json:"updated_at"`
}

// Loading reports whether an action is still in flight.
func (s State) Loading() bool {
	return s.Current.IsLoading() || s.Forecast.IsLoading()
}

// Error returns the message of the most recent failed action, or "".
// Forecast failures are deliberately not surfaced.
func (s State) Error() string {
	if s.Current.Status == Errored {
		return s.Current.Err
	}
	return ""
}

// NeedsLocation is true until the first startup or search has been attempted.
func (s State) NeedsLocation() bool {
	return !s.Attempted
}

func (s State) Prefs() models.SessionPrefs {
	return models.SessionPrefs{DarkMode: s.DarkMode, SearchText: s.SearchText}
}

func (s State) clone() State {
	if s.Coords != nil {
		c := *s.Coords
		s.Coords = &c
	}
	return s
}

// Controller is the state container for one browser session. State is only
// mutated under mu; network calls run unlocked, so overlapping actions are
// not serialised and the last completion wins.
type Controller struct {
	mu       sync.Mutex
	state    State
	weather  WeatherFetcher
	geocoder Geocoder
	log      zerolog.Logger
	onChange func(State)
	now      func() time.Time
}

func NewController(weather WeatherFetcher, geocoder Geocoder, log zerolog.Logger) *Controller {
	return &Controller{
		weather:  weather,
		geocoder: geocoder,
		log:      log.With().Str("component", "state").Logger(),
		now:      time.Now,
	}
}

// OnChange registers fn to be called with a snapshot after every mutation.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	c.state.UpdatedAt = c.now()
	snap := c.state.clone()
	hook := c.onChange
	c.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Restore applies saved preferences without notifying OnChange.
func (c *Controller) Restore(p models.SessionPrefs) {
	c.mu.Lock()
	c.state.DarkMode = p.DarkMode
	c.state.SearchText = p.SearchText
	c.mu.Unlock()
}

// Startup resolves the user's position and loads weather for it. When the
// position is unavailable no weather request is made.
func (c *Controller) Startup(ctx context.Context, src locate.Source) {
	c.update(func(s *State) { s.Attempted = true })

	coords, err := src.Resolve(ctx)
	if err != nil {
		metrics.LocateOutcomes.WithLabelValues(locate.Name(src), "unavailable").Inc()
		c.log.Info().Err(err).Str("source", locate.Name(src)).Msg("location unavailable")
		c.update(func(s *State) {
			s.Coords = nil
			s.Current.Fail(MsgLocationUnavailable)
			s.Forecast.Reset()
		})
		return
	}

	metrics.LocateOutcomes.WithLabelValues(locate.Name(src), "ok").Inc()
	c.load(ctx, coords)
}

// Search resolves city and loads weather for the first match.
func (c *Controller) Search(ctx context.Context, city string) {
	c.update(func(s *State) {
		s.Attempted = true
		s.SearchText = city
		s.Current.Begin()
		s.Forecast.Begin()
	})
	defer c.update(func(s *State) {
		s.Current.Settle()
		s.Forecast.Settle()
	})

	coords, err := c.geocoder.ResolveCity(ctx, city)
	if err != nil {
		msg := MsgRequestFailed
		if errors.Is(err, openweather.ErrCityNotFound) {
			msg = MsgCityNotFound
		}
		c.log.Info().Err(err).Str("city", city).Msg("search failed")
		c.update(func(s *State) {
			s.Coords = nil
			s.Current.Fail(msg)
			s.Forecast.Reset()
		})
		return
	}

	c.load(ctx, coords)
}

// load fetches current weather, then the forecast, for coords. A forecast
// failure is logged and otherwise ignored.
func (c *Controller) load(ctx context.Context, coords models.Coordinates) {
	c.update(func(s *State) {
		s.Coords = &coords
		s.Current.Begin()
		s.Forecast.Begin()
	})

	current, err := c.weather.FetchCurrent(ctx, coords)
	if err != nil {
		c.log.Error().Err(err).Stringer("coords", coords).Msg("fetch current weather")
		c.update(func(s *State) {
			s.Current.Fail(MsgRequestFailed)
			s.Forecast.Reset()
		})
		return
	}
	c.update(func(s *State) { s.Current.Succeed(current) })

	forecast, err := c.weather.FetchForecast(ctx, coords)
	if err != nil {
		c.log.Warn().Err(err).Stringer("coords", coords).Msg("fetch forecast")
		c.update(func(s *State) { s.Forecast.Fail(MsgRequestFailed) })
		return
	}
	c.update(func(s *State) { s.Forecast.Succeed(forecast) })
}

// ToggleDarkMode flips the theme flag and returns the new value.
func (c *Controller) ToggleDarkMode() bool {
	var dark bool
	c.update(func(s *State) {
		s.DarkMode = !s.DarkMode
		dark = s.DarkMode
	})
	return dark
}
