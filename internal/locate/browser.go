package locate

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lox/skycast/internal/models"
)

// Error codes posted by the page script. The numeric ones are the
// GeolocationPositionError codes.
const (
	CodePermissionDenied    = "1"
	CodePositionUnavailable = "2"
	CodeTimeout             = "3"
	CodeUnsupported         = "unsupported"
)

// BrowserReport is the outcome of one getCurrentPosition call, relayed by
// the page as form values.
type BrowserReport struct {
	Coords models.Coordinates
	OK     bool
	Code   string
	Detail string
}

// ParseBrowserReport reads lat/lon or error from a submitted form.
func ParseBrowserReport(form url.Values) BrowserReport {
	if code := strings.TrimSpace(form.Get("error")); code != "" {
		return BrowserReport{Code: code, Detail: form.Get("message")}
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(form.Get("lat")), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(form.Get("lon")), 64)
	if latErr != nil || lonErr != nil {
		return BrowserReport{Code: CodePositionUnavailable, Detail: "malformed coordinates"}
	}

	c := models.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return BrowserReport{Code: CodePositionUnavailable, Detail: "coordinates out of range"}
	}
	return BrowserReport{Coords: c, OK: true}
}

func (b BrowserReport) Resolve(ctx context.Context) (models.Coordinates, error) {
	if b.OK {
		return b.Coords, nil
	}
	switch b.Code {
	case CodePermissionDenied:
		return models.Coordinates{}, ErrPermissionDenied
	case CodeUnsupported:
		return models.Coordinates{}, ErrNotSupported
	default:
		if b.Detail != "" {
			return models.Coordinates{}, fmt.Errorf("%w: code %s: %s", ErrUnavailable, b.Code, b.Detail)
		}
		return models.Coordinates{}, fmt.Errorf("%w: code %s", ErrUnavailable, b.Code)
	}
}
