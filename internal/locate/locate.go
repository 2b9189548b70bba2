// Package locate resolves the user's own position.
package locate

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/skycast/internal/models"
)

var (
	// ErrUnavailable is returned whenever a position could not be produced.
	ErrUnavailable      = errors.New("location unavailable")
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrUnavailable)
	ErrNotSupported     = fmt.Errorf("%w: not supported", ErrUnavailable)
)

// Source is a single-shot position request.
type Source interface {
	Resolve(ctx context.Context) (models.Coordinates, error)
}

// Fixed always resolves to the same coordinates.
type Fixed models.Coordinates

func (f Fixed) Resolve(ctx context.Context) (models.Coordinates, error) {
	c := models.Coordinates(f)
	if !c.Valid() {
		return models.Coordinates{}, fmt.Errorf("%w: coordinates out of range: %s", ErrUnavailable, c)
	}
	return c, nil
}

// Name identifies a source in logs and metrics.
func Name(src Source) string {
	switch src.(type) {
	case BrowserReport, *BrowserReport:
		return "browser"
	case *IPSource:
		return "ip"
	case Fixed:
		return "fixed"
	default:
		return "other"
	}
}
