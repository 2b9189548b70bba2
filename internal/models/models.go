package models

import (
	"fmt"
	"time"
)

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// Valid reports whether the pair lies within WGS84 bounds.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Condition is the provider's primary weather condition.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentWeather struct {
	Name           string      `json:"name"`
	Coords         Coordinates `json:"coords"`
	Temp           float64     `json:"temp"`
	FeelsLike      float64     `json:"feels_like"`
	Humidity       int         `json:"humidity"`
	Pressure       float64     `json:"pressure"`
	WindSpeed      float64     `json:"wind_speed"`
	Visibility     int         `json:"visibility"`
	Condition      Condition   `json:"condition"`
	ObservedAt     time.Time   `json:"observed_at"`
	TimezoneOffset int         `json:"timezone_offset"`
}

// Location returns the fixed zone for the observation's UTC offset.
func (w CurrentWeather) Location() *time.Location {
	return time.FixedZone("", w.TimezoneOffset)
}

type ForecastEntry struct {
	Time      time.Time `json:"time"`
	Temp      float64   `json:"temp"`
	Condition Condition `json:"condition"`
}

// Forecast is an ordered series of 3-hour entries covering up to five days.
type Forecast struct {
	City           string          `json:"city"`
	TimezoneOffset int             `json:"timezone_offset"`
	Entries        []ForecastEntry `json:"entries"`
}

func (f Forecast) Location() *time.Location {
	return time.FixedZone("", f.TimezoneOffset)
}

// SessionPrefs are the user choices that survive a server restart.
type SessionPrefs struct {
	DarkMode   bool
	SearchText string
}
