package render

import (
	"fmt"

	"github.com/lox/skycast/internal/models"
	"github.com/lox/skycast/internal/openweather"
	"github.com/lox/skycast/internal/state"
	"github.com/lox/skycast/internal/theme"
)

// Options carries page settings that do not come from session state.
type Options struct {
	MapZoom int
	// Banners enables the AI banner image above the current panel.
	Banners bool
}

// CurrentView is the current conditions panel.
type CurrentView struct {
	City        string
	Temp        int
	FeelsLike   int
	Description string
	IconURL     string
	Humidity    int
	Pressure    int
	WindSpeed   string
	Visibility  string
	ObservedAt  string
}

// Page is everything the templates render from.
type Page struct {
	Palette       theme.Palette
	Condition     theme.WeatherCondition
	TimeOfDay     theme.TimeOfDay
	DarkMode      bool
	SearchText    string
	Loading       bool
	Error         string
	NeedsLocation bool
	Current       *CurrentView
	Map           *MapView
	Forecast      []ForecastDay
	BannerURL     string
}

// BuildPage derives the view model for s.
func BuildPage(s state.State, opts Options) Page {
	p := Page{
		DarkMode:      s.DarkMode,
		SearchText:    s.SearchText,
		Loading:       s.Loading(),
		Error:         s.Error(),
		NeedsLocation: s.NeedsLocation(),
		Forecast:      forecastDays(s.Forecast.Data),
	}

	zoom := opts.MapZoom
	if zoom <= 0 {
		zoom = DefaultMapZoom
	}

	if cur := s.Current.Data; cur != nil {
		p.Current = currentView(cur)
		p.Condition = theme.ExtractCondition(cur.Condition, cur.Temp)
		p.TimeOfDay = theme.IconTimeOfDay(cur.Condition.Icon)
		if opts.Banners {
			p.BannerURL = fmt.Sprintf("/banner/%s.png", theme.ConditionWithTime(p.Condition, p.TimeOfDay))
		}
	}
	// The map only accompanies weather fetched for the same coordinates.
	if s.Coords != nil && p.Current != nil {
		m := NewMapView(*s.Coords, zoom, p.Current.City)
		p.Map = &m
	}

	p.Palette = theme.GetPalette(p.Condition, s.DarkMode)
	return p
}

func currentView(w *models.CurrentWeather) *CurrentView {
	return &CurrentView{
		City:        w.Name,
		Temp:        RoundTemp(w.Temp),
		FeelsLike:   RoundTemp(w.FeelsLike),
		Description: w.Condition.Description,
		IconURL:     openweather.IconURL(w.Condition.Icon, openweather.IconLarge),
		Humidity:    w.Humidity,
		Pressure:    int(w.Pressure),
		WindSpeed:   fmt.Sprintf("%.1f", w.WindSpeed),
		Visibility:  VisibilityKM(w.Visibility),
		ObservedAt:  DayTime(w.ObservedAt, w.Location()),
	}
}
