package render

import (
	"github.com/lox/skycast/internal/models"
	"github.com/lox/skycast/internal/openweather"
	"github.com/lox/skycast/internal/theme"
)

// entriesPerDay is the number of 3-hour forecast entries in a day.
const entriesPerDay = 8

// DailySample keeps one entry per day from 3-hour data: indices 0, 8, 16, …
func DailySample(entries []models.ForecastEntry) []models.ForecastEntry {
	out := make([]models.ForecastEntry, 0, (len(entries)+entriesPerDay-1)/entriesPerDay)
	for i := 0; i < len(entries); i += entriesPerDay {
		out = append(out, entries[i])
	}
	return out
}

// ForecastDay is one cell of the forecast strip.
type ForecastDay struct {
	Weekday     string
	Temp        int
	Description string
	IconURL     string
	Condition   theme.WeatherCondition
	TimeOfDay   theme.TimeOfDay
}

func forecastDays(f *models.Forecast) []ForecastDay {
	if f == nil {
		return nil
	}
	loc := f.Location()
	var days []ForecastDay
	for _, e := range DailySample(f.Entries) {
		cond, tod := theme.ConditionFromIcon(e.Condition.Icon)
		days = append(days, ForecastDay{
			Weekday:     Weekday(e.Time, loc),
			Temp:        RoundTemp(e.Temp),
			Description: e.Condition.Description,
			IconURL:     openweather.IconURL(e.Condition.Icon, openweather.IconSmall),
			Condition:   cond,
			TimeOfDay:   tod,
		})
	}
	return days
}
