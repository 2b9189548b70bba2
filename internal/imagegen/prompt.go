package imagegen

import (
	"fmt"
	"time"

	"github.com/lox/skycast/internal/theme"
)

// MoonPhase represents the current lunar phase.
type MoonPhase string

const (
	MoonNew            MoonPhase = "new"
	MoonWaxingCrescent MoonPhase = "waxing_crescent"
	MoonFirstQuarter   MoonPhase = "first_quarter"
	MoonWaxingGibbous  MoonPhase = "waxing_gibbous"
	MoonFull           MoonPhase = "full"
	MoonWaningGibbous  MoonPhase = "waning_gibbous"
	MoonLastQuarter    MoonPhase = "last_quarter"
	MoonWaningCrescent MoonPhase = "waning_crescent"
)

// LunarCycle is approximately 29.53 days.
const LunarCycle = 29.53

var moonPhases = []MoonPhase{
	MoonNew, MoonWaxingCrescent, MoonFirstQuarter, MoonWaxingGibbous,
	MoonFull, MoonWaningGibbous, MoonLastQuarter, MoonWaningCrescent,
}

// GetMoonPhase calculates the moon phase for a given date, relative to the
// new moon of January 6, 2000 18:14 UTC.
func GetMoonPhase(t time.Time) MoonPhase {
	ref := time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)
	days := t.Sub(ref).Hours() / 24

	pos := days - float64(int(days/LunarCycle))*LunarCycle
	if pos < 0 {
		pos += LunarCycle
	}
	i := int((pos / LunarCycle) * 8)
	if i > 7 {
		i = 7
	}
	return moonPhases[i]
}

var moonPrompts = map[MoonPhase]string{
	MoonNew:            "No visible moon, very dark sky, stars prominent",
	MoonWaxingCrescent: "Thin crescent moon visible",
	MoonFirstQuarter:   "Half moon visible",
	MoonWaxingGibbous:  "Nearly full moon, bright moonlight",
	MoonFull:           "Bright full moon illuminating the landscape",
	MoonWaningGibbous:  "Nearly full moon, bright moonlight",
	MoonLastQuarter:    "Half moon visible",
	MoonWaningCrescent: "Thin crescent moon visible",
}

const baseStylePrompt = `Serene watercolor landscape painting of an open countryside.
Rolling hills with scattered trees, distant mountains in soft haze.
Style: impressionistic watercolor, soft gradients, muted earth tones, peaceful and minimal.
Wide panoramic composition suitable for a website header banner.
No text, no people, no buildings, no animals.`

var conditionPrompts = map[theme.WeatherCondition]string{
	theme.ConditionClearWarm:    "Warm temperature, clear sky, no clouds, vibrant green grass and trees.",
	theme.ConditionClearCool:    "Cool temperature, clear sky, no clouds, crisp air feeling.",
	theme.ConditionPartlyCloudy: "Scattered clouds drifting across sky, patches of clear sky visible.",
	theme.ConditionMostlyCloudy: "Overcast, heavy cloud cover, soft diffused light, muted colors.",
	theme.ConditionLightRain:    "Light rain falling, wet glistening foliage, grey sky, fresh feeling.",
	theme.ConditionHeavyRain:    "Heavy rain, dark grey clouds, dramatic atmosphere, wet surfaces.",
	theme.ConditionStorm:        "Dramatic stormy sky, dark threatening clouds, wind in trees.",
	theme.ConditionSnow:         "Falling snow, hills blanketed in white, soft muffled light.",
	theme.ConditionFog:          "Mist floating through the hills, ethereal atmosphere, soft edges.",
	theme.ConditionHot:          "Very hot, dry golden grass, heat shimmer effect.",
	theme.ConditionFrost:        "Cold, frost on grass, cold blue tones, bare trees, crisp air.",
}

var timePrompts = map[theme.TimeOfDay]string{
	theme.TimeDawn: "Early dawn, soft pink and orange glow on horizon, cool blue shadows, quiet stillness before sunrise.",
	theme.TimeDay:  "Midday, bright daylight, full sun high in sky, clear visibility, warm natural lighting.",
	theme.TimeDusk: "Sunset, golden hour, warm orange and pink sky, long shadows, peaceful evening.",
}

// BuildPrompt creates the image prompt for a condition and time of day.
// Night scenes describe the moon phase at t.
func BuildPrompt(condition theme.WeatherCondition, tod theme.TimeOfDay, t time.Time) string {
	conditionDesc, ok := conditionPrompts[condition]
	if !ok {
		conditionDesc = conditionPrompts[theme.ConditionClearCool]
	}

	timeDesc, ok := timePrompts[tod]
	if !ok {
		timeDesc = fmt.Sprintf("NIGHTTIME SCENE. %s. Dark night sky, no sunlight. Stars scattered across deep blue-black sky. Landscape lit by moonlight. Dark silhouettes of trees and hills.", moonPrompts[GetMoonPhase(t)])
	}

	// Time of day first; the model weighs it more heavily there.
	return fmt.Sprintf("%s\n\n%s\n\nWeather conditions: %s", timeDesc, baseStylePrompt, conditionDesc)
}
