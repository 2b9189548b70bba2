// Package theme maps provider conditions to the categories used for page
// palettes and banner artwork.
package theme

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/skycast/internal/models"
)

// WeatherCondition represents a categorized weather state.
type WeatherCondition string

const (
	ConditionClearWarm    WeatherCondition = "clear_warm"
	ConditionClearCool    WeatherCondition = "clear_cool"
	ConditionPartlyCloudy WeatherCondition = "partly_cloudy"
	ConditionMostlyCloudy WeatherCondition = "mostly_cloudy"
	ConditionLightRain    WeatherCondition = "light_rain"
	ConditionHeavyRain    WeatherCondition = "heavy_rain"
	ConditionStorm        WeatherCondition = "storm"
	ConditionSnow         WeatherCondition = "snow"
	ConditionFog          WeatherCondition = "fog"
	ConditionHot          WeatherCondition = "hot"
	ConditionFrost        WeatherCondition = "frost"
)

// AllConditions lists every category, in palette order.
var AllConditions = []WeatherCondition{
	ConditionClearWarm, ConditionClearCool, ConditionPartlyCloudy, ConditionMostlyCloudy,
	ConditionLightRain, ConditionHeavyRain, ConditionStorm, ConditionSnow, ConditionFog,
	ConditionHot, ConditionFrost,
}

// TimeOfDay represents the lighting period.
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "day"
	TimeDusk  TimeOfDay = "dusk"
	TimeNight TimeOfDay = "night"
	TimeDawn  TimeOfDay = "dawn"
)

// GetTimeOfDay returns the lighting period for a local time.
func GetTimeOfDay(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 7:
		return TimeDawn
	case hour >= 7 && hour < 17:
		return TimeDay
	case hour >= 17 && hour < 20:
		return TimeDusk
	default:
		return TimeNight
	}
}

// IconTimeOfDay reads day/night from the provider icon suffix ("10d", "10n").
func IconTimeOfDay(icon string) TimeOfDay {
	if strings.HasSuffix(icon, "n") {
		return TimeNight
	}
	return TimeDay
}

// ConditionFromIcon categorizes a bare icon code ("01d" … "50n") when no
// condition id or temperature is at hand. Unknown codes yield "".
func ConditionFromIcon(icon string) (WeatherCondition, TimeOfDay) {
	tod := IconTimeOfDay(icon)
	if len(icon) < 2 {
		return "", tod
	}
	switch icon[:2] {
	case "01":
		return ConditionClearCool, tod
	case "02":
		return ConditionPartlyCloudy, tod
	case "03", "04":
		return ConditionMostlyCloudy, tod
	case "09":
		return ConditionHeavyRain, tod
	case "10":
		return ConditionLightRain, tod
	case "11":
		return ConditionStorm, tod
	case "13":
		return ConditionSnow, tod
	case "50":
		return ConditionFog, tod
	}
	return "", tod
}

// ExtractCondition categorizes a provider condition. Temperature extremes
// win over clear or cloudy skies but not over precipitation.
func ExtractCondition(c models.Condition, temp float64) WeatherCondition {
	switch {
	case c.ID >= 200 && c.ID < 300:
		return ConditionStorm
	case c.ID >= 300 && c.ID < 400:
		return ConditionLightRain
	case c.ID == 502, c.ID == 503, c.ID == 504, c.ID == 522, c.ID == 531:
		return ConditionHeavyRain
	case c.ID >= 500 && c.ID < 600:
		return ConditionLightRain
	case c.ID >= 600 && c.ID < 700:
		return ConditionSnow
	case c.ID >= 700 && c.ID < 800:
		return ConditionFog
	}

	if temp >= 35 {
		return ConditionHot
	}
	if temp <= 0 {
		return ConditionFrost
	}

	switch c.ID {
	case 801, 802:
		return ConditionPartlyCloudy
	case 803, 804:
		return ConditionMostlyCloudy
	}
	if temp >= 25 {
		return ConditionClearWarm
	}
	return ConditionClearCool
}

// ConditionWithTime combines a condition with time of day for cache keys.
func ConditionWithTime(condition WeatherCondition, tod TimeOfDay) string {
	return fmt.Sprintf("%s_%s", condition, tod)
}

// ParseConditionWithTime splits a key produced by ConditionWithTime.
func ParseConditionWithTime(key string) (WeatherCondition, TimeOfDay, bool) {
	i := strings.LastIndex(key, "_")
	if i <= 0 {
		return "", "", false
	}
	cond, tod := WeatherCondition(key[:i]), TimeOfDay(key[i+1:])
	switch tod {
	case TimeDay, TimeDusk, TimeNight, TimeDawn:
	default:
		return "", "", false
	}
	for _, c := range AllConditions {
		if c == cond {
			return cond, tod, true
		}
	}
	return "", "", false
}
