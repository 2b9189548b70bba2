// Package render turns a session state snapshot into the page the browser
// sees and the plain-text summary the terminal command prints.
package render

import (
	"fmt"
	"math"
	"time"
)

// RoundTemp rounds a temperature to the nearest whole degree.
func RoundTemp(c float64) int {
	return int(math.Round(c))
}

// VisibilityKM converts meters to kilometers with one decimal.
func VisibilityKM(meters int) string {
	return fmt.Sprintf("%.1f", float64(meters)/1000)
}

// Weekday returns the full weekday name of t in loc.
func Weekday(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Monday")
}

// DayTime formats t in loc as "Mon 2 Jan, 15:04".
func DayTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon 2 Jan, 15:04")
}
