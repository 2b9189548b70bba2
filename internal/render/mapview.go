package render

import (
	"fmt"
	"math"

	"github.com/lox/skycast/internal/models"
)

const (
	TileSize       = 256
	DefaultMapZoom = 12
	// TileURLTemplate is the OpenStreetMap standard layer.
	TileURLTemplate = "https://tile.openstreetmap.org/%d/%d/%d.png"
	// gridRadius tiles either side of the centre tile.
	gridRadius = 1
)

// TileXY returns the slippy-map tile containing coords at zoom, and the
// position inside that tile as fractions of a tile (0 ≤ fx, fy < 1).
func TileXY(c models.Coordinates, zoom int) (x, y int, fx, fy float64) {
	n := math.Exp2(float64(zoom))
	lat := math.Max(math.Min(c.Lat, 85.0511), -85.0511) * math.Pi / 180

	tx := (c.Lon + 180) / 360 * n
	ty := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * n

	x, y = int(math.Floor(tx)), int(math.Floor(ty))
	fx, fy = tx-float64(x), ty-float64(y)

	if x < 0 {
		x, fx = 0, 0
	}
	if y < 0 {
		y, fy = 0, 0
	}
	last := int(n) - 1
	if x > last {
		x, fx = last, 0.999
	}
	if y > last {
		y, fy = last, 0.999
	}
	return x, y, fx, fy
}

type Tile struct {
	URL  string
	Left int
	Top  int
}

// MapView is a fixed grid of tiles centred on a point with a marker.
type MapView struct {
	Zoom    int
	Width   int
	Height  int
	Tiles   []Tile
	MarkerX int
	MarkerY int
	Label   string
	Coords  models.Coordinates
	// Link opens the point on openstreetmap.org.
	Link string
}

// NewMapView lays out a 3×3 tile grid around c. Columns wrap around the
// antimeridian; rows beyond the poles are skipped.
func NewMapView(c models.Coordinates, zoom int, label string) MapView {
	cx, cy, fx, fy := TileXY(c, zoom)
	n := 1 << zoom
	side := (2*gridRadius + 1) * TileSize

	v := MapView{
		Zoom:    zoom,
		Width:   side,
		Height:  side,
		MarkerX: gridRadius*TileSize + int(fx*TileSize),
		MarkerY: gridRadius*TileSize + int(fy*TileSize),
		Label:   label,
		Coords:  c,
		Link:    fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.5f&mlon=%.5f#map=%d/%.5f/%.5f", c.Lat, c.Lon, zoom, c.Lat, c.Lon),
	}
	for dy := -gridRadius; dy <= gridRadius; dy++ {
		ty := cy + dy
		if ty < 0 || ty >= n {
			continue
		}
		for dx := -gridRadius; dx <= gridRadius; dx++ {
			tx := ((cx+dx)%n + n) % n
			v.Tiles = append(v.Tiles, Tile{
				URL:  fmt.Sprintf(TileURLTemplate, zoom, tx, ty),
				Left: (dx + gridRadius) * TileSize,
				Top:  (dy + gridRadius) * TileSize,
			})
		}
	}
	return v
}
