package openweather

import "fmt"

type IconSize int

const (
	IconSmall IconSize = iota // forecast strip
	IconLarge                 // current conditions panel
)

const iconBaseURL = "https://openweathermap.org/img/wn/"

// IconURL returns the asset URL for a provider icon code such as "10d".
func IconURL(code string, size IconSize) string {
	if code == "" {
		return ""
	}
	if size == IconLarge {
		return fmt.Sprintf("%s%s@2x.png", iconBaseURL, code)
	}
	return fmt.Sprintf("%s%s.png", iconBaseURL, code)
}
