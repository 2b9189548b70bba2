package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/skycast/internal/models"
	"github.com/lox/skycast/internal/state"
	"github.com/lox/skycast/internal/theme"
)

func TestDailySample(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	entries := make([]models.ForecastEntry, 40)
	for i := range entries {
		entries[i] = models.ForecastEntry{Time: start.Add(time.Duration(i) * 3 * time.Hour), Temp: float64(i)}
	}

	got := DailySample(entries)
	require.Len(t, got, 5)
	for i, want := range []float64{0, 8, 16, 24, 32} {
		assert.Equal(t, want, got[i].Temp)
	}

	assert.Len(t, DailySample(entries[:9]), 2)
	assert.Len(t, DailySample(entries[:1]), 1)
	assert.Empty(t, DailySample(nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, 13, RoundTemp(12.5))
	assert.Equal(t, 12, RoundTemp(12.49))
	assert.Equal(t, -3, RoundTemp(-2.6))
	assert.Equal(t, 0, RoundTemp(-0.4))

	assert.Equal(t, "10.0", VisibilityKM(10000))
	assert.Equal(t, "2.5", VisibilityKM(2500))
	assert.Equal(t, "0.0", VisibilityKM(0))

	loc := time.FixedZone("", 2*3600)
	ts := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Monday", Weekday(ts, loc))
	assert.Equal(t, "Mon 19 Oct, 01:30", DayTime(ts, loc))
	assert.Equal(t, "Sunday", Weekday(ts, time.UTC))
}

func TestTileXY(t *testing.T) {
	x, y, fx, fy := TileXY(models.Coordinates{}, 0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.InDelta(t, 0.5, fx, 1e-9)
	assert.InDelta(t, 0.5, fy, 1e-9)

	x, y, fx, fy = TileXY(models.Coordinates{}, 1)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
	assert.InDelta(t, 0, fx, 1e-9)
	assert.InDelta(t, 0, fy, 1e-9)

	x, y, _, _ = TileXY(models.Coordinates{Lat: 52.5, Lon: 13.4}, 10)
	assert.Equal(t, 550, x)
	assert.Equal(t, 335, y)

	x, y, _, _ = TileXY(models.Coordinates{Lat: -90, Lon: 180}, 2)
	assert.Equal(t, 3, x)
	assert.Equal(t, 3, y)
}

func TestNewMapView(t *testing.T) {
	v := NewMapView(models.Coordinates{Lat: 52.5, Lon: 13.4}, 10, "Berlin")
	require.Len(t, v.Tiles, 9)
	assert.Equal(t, "https://tile.openstreetmap.org/10/549/334.png", v.Tiles[0].URL)
	assert.Equal(t, "https://tile.openstreetmap.org/10/550/335.png", v.Tiles[4].URL)
	assert.Equal(t, TileSize, v.Tiles[4].Left)
	assert.Equal(t, 3*TileSize, v.Width)
	assert.GreaterOrEqual(t, v.MarkerX, TileSize)
	assert.Less(t, v.MarkerX, 2*TileSize)
	assert.Contains(t, v.Link, "mlat=52.50000")

	// Columns wrap at the antimeridian.
	v = NewMapView(models.Coordinates{Lat: 0, Lon: -179.9}, 2, "")
	assert.Equal(t, "https://tile.openstreetmap.org/2/3/1.png", v.Tiles[0].URL)

	// Rows past the pole are dropped.
	v = NewMapView(models.Coordinates{Lat: 85, Lon: 0}, 3, "")
	assert.Len(t, v.Tiles, 6)
}

func loadedState() state.State {
	coords := models.Coordinates{Lat: 52.5, Lon: 13.4}
	s := state.State{SearchText: "Berlin", Attempted: true, Coords: &coords}
	s.Current.Succeed(&models.CurrentWeather{
		Name:       "Berlin",
		Coords:     coords,
		Temp:       17.6,
		FeelsLike:  16.2,
		Humidity:   60,
		Pressure:   1013,
		WindSpeed:  4.12,
		Visibility: 10000,
		Condition:  models.Condition{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"},
		ObservedAt: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	})
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	entries := make([]models.ForecastEntry, 40)
	for i := range entries {
		entries[i] = models.ForecastEntry{
			Time:      start.Add(time.Duration(i) * 3 * time.Hour),
			Temp:      10.4 + float64(i/8),
			Condition: models.Condition{ID: 801, Description: "few clouds", Icon: "02d"},
		}
	}
	s.Forecast.Succeed(&models.Forecast{City: "Berlin", Entries: entries})
	return s
}

func TestBuildPage_Loaded(t *testing.T) {
	p := BuildPage(loadedState(), Options{MapZoom: 10, Banners: true})

	require.NotNil(t, p.Current)
	assert.Equal(t, "Berlin", p.Current.City)
	assert.Equal(t, 18, p.Current.Temp)
	assert.Equal(t, 16, p.Current.FeelsLike)
	assert.Equal(t, "10.0", p.Current.Visibility)
	assert.Equal(t, "4.1", p.Current.WindSpeed)
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", p.Current.IconURL)
	assert.Equal(t, "Sun 18 Oct, 10:00", p.Current.ObservedAt)

	require.Len(t, p.Forecast, 5)
	assert.Equal(t, "Monday", p.Forecast[0].Weekday)
	assert.Equal(t, 10, p.Forecast[0].Temp)
	assert.Equal(t, 14, p.Forecast[4].Temp)
	assert.Equal(t, "https://openweathermap.org/img/wn/02d.png", p.Forecast[0].IconURL)
	assert.Equal(t, theme.ConditionPartlyCloudy, p.Forecast[0].Condition)
	assert.Equal(t, theme.TimeDay, p.Forecast[0].TimeOfDay)

	require.NotNil(t, p.Map)
	assert.Equal(t, 10, p.Map.Zoom)
	assert.Equal(t, "Berlin", p.Map.Label)

	assert.Equal(t, theme.ConditionLightRain, p.Condition)
	assert.Equal(t, theme.TimeDay, p.TimeOfDay)
	assert.Equal(t, theme.GetPalette(theme.ConditionLightRain, false), p.Palette)
	assert.Equal(t, "/banner/light_rain_day.png", p.BannerURL)
	assert.False(t, p.Loading)
	assert.Empty(t, p.Error)
	assert.False(t, p.NeedsLocation)
}

func TestBuildPage_Empty(t *testing.T) {
	p := BuildPage(state.State{DarkMode: true}, Options{Banners: true})
	assert.Nil(t, p.Current)
	assert.Nil(t, p.Map)
	assert.Empty(t, p.Forecast)
	assert.Empty(t, p.BannerURL)
	assert.True(t, p.NeedsLocation)
	assert.Equal(t, theme.DefaultDarkPalette, p.Palette)
}

func TestBuildPage_NoMapWithoutWeather(t *testing.T) {
	coords := models.Coordinates{Lat: 48.85, Lon: 2.35}
	s := state.State{Attempted: true, Coords: &coords}
	s.Current.Fail(state.MsgRequestFailed)

	p := BuildPage(s, Options{})
	assert.Nil(t, p.Map)
	assert.Equal(t, state.MsgRequestFailed, p.Error)
}

func TestBuildPage_ErrorAndLoading(t *testing.T) {
	s := state.State{Attempted: true}
	s.Current.Fail(state.MsgCityNotFound)
	p := BuildPage(s, Options{})
	assert.Equal(t, "City not found", p.Error)
	assert.Nil(t, p.Current)

	s = state.State{Attempted: true}
	s.Current.Begin()
	s.Forecast.Begin()
	p = BuildPage(s, Options{})
	assert.True(t, p.Loading)
	assert.Empty(t, p.Error)
}

func TestRenderer_Page(t *testing.T) {
	r := NewRenderer()
	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, BuildPage(loadedState(), Options{})))

	html := buf.String()
	assert.Contains(t, html, "<title>Skycast · Berlin</title>")
	assert.Contains(t, html, "18°C")
	assert.Contains(t, html, "Humidity: 60%")
	assert.Contains(t, html, "Visibility: 10.0 km")
	assert.Contains(t, html, "https://tile.openstreetmap.org/12/")
	assert.Equal(t, 5, strings.Count(html, "few clouds</span>"))
	assert.Contains(t, html, `value="Berlin"`)
	assert.NotContains(t, html, "navigator.geolocation")
	assert.NotContains(t, html, `id="error"`)
}

func TestRenderer_PageNeedsLocation(t *testing.T) {
	r := NewRenderer()
	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, BuildPage(state.State{}, Options{})))

	html := buf.String()
	assert.Contains(t, html, "navigator.geolocation.getCurrentPosition")
	assert.Contains(t, html, `action="/locate"`)
	assert.NotContains(t, html, `id="loading"`)
}

func TestRenderer_PageError(t *testing.T) {
	s := state.State{Attempted: true}
	s.Current.Fail(state.MsgLocationUnavailable)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Page(&buf, BuildPage(s, Options{})))
	assert.Contains(t, buf.String(), "Unable to retrieve your location. Please search for a city manually.")
}

func TestRenderer_Partial(t *testing.T) {
	r := NewRenderer()
	p := BuildPage(loadedState(), Options{})

	var buf bytes.Buffer
	require.NoError(t, r.Partial(&buf, "forecast", p))
	assert.Contains(t, buf.String(), "Monday")
	assert.NotContains(t, buf.String(), "<html")

	buf.Reset()
	require.NoError(t, r.Partial(&buf, "current", p))
	assert.Contains(t, buf.String(), "light rain")

	err := r.Partial(&buf, "radar", p)
	assert.True(t, errors.Is(err, ErrUnknownPartial))
}

func TestRenderer_Text(t *testing.T) {
	text, err := NewRenderer().Text(BuildPage(loadedState(), Options{}))
	require.NoError(t, err)

	assert.Contains(t, text, "BERLIN")
	assert.Contains(t, text, "18°C, light rain")
	assert.Contains(t, text, "Humidity: 60%")
	assert.Contains(t, text, "Monday: 10°C, few clouds")
	assert.Contains(t, text, "Location: 52.5000,13.4000")
	assert.NotContains(t, text, "<p>")
}
