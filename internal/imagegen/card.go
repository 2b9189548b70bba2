package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lox/skycast/internal/metrics"
	"github.com/lox/skycast/internal/theme"
)

// CardWidth and CardHeight are the standard Open Graph image dimensions.
const (
	CardWidth  = 1200
	CardHeight = 630
)

// Text is drawn with a 7x13 bitmap face on small canvases and scaled up.
const (
	bodyScale     = 5
	headlineScale = 10
	maxLineChars  = 32
)

// CardData is the content of a share card.
type CardData struct {
	City        string
	Temp        int
	Description string
	Palette     theme.Palette
	// Background is an optional PNG drawn behind the text.
	Background []byte
}

// Key identifies the rendered card for caching.
func (d CardData) Key() string {
	return fmt.Sprintf("%s|%d|%s|%s|%d", d.City, d.Temp, d.Description, d.Palette.Background, len(d.Background))
}

// RenderCard draws a 1200x630 PNG share card.
func RenderCard(d CardData) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))

	if len(d.Background) > 0 {
		src, _, err := image.Decode(bytes.NewReader(d.Background))
		if err != nil {
			metrics.ImagesGenerated.WithLabelValues("card", "error").Inc()
			return nil, fmt.Errorf("decode background: %w", err)
		}
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, coverRect(src.Bounds(), CardWidth, CardHeight), draw.Src, nil)
		drawGradientOverlay(dst)
	} else {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(parseHex(d.Palette.Background)), image.Point{}, draw.Src)
	}

	if d.City != "" {
		headline := image.NewRGBA(image.Rect(0, 0, CardWidth/headlineScale, CardHeight/headlineScale))
		drawText(headline, fmt.Sprintf("%d°C", d.Temp), 4, 40, parseHex(d.Palette.AccentAlt))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), headline, headline.Bounds(), draw.Over, nil)
	}

	body := image.NewRGBA(image.Rect(0, 0, CardWidth/bodyScale, CardHeight/bodyScale))
	title := d.City
	if title == "" {
		title = "Weather"
	}
	drawText(body, truncate(title), 8, 16, parseHex(d.Palette.Text))
	drawText(body, truncate(d.Description), 8, 100, parseHex(d.Palette.TextMuted))
	drawText(body, "skycast", 8, 118, parseHex(d.Palette.Accent))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), body, body.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		metrics.ImagesGenerated.WithLabelValues("card", "error").Inc()
		return nil, fmt.Errorf("encode card: %w", err)
	}
	metrics.ImagesGenerated.WithLabelValues("card", "ok").Inc()
	return buf.Bytes(), nil
}

// coverRect returns the centred region of src with the aspect ratio of w:h.
func coverRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw*h > sh*w {
		cw := sh * w / h
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * h / w
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}

// drawGradientOverlay darkens the bottom of the image for text readability.
func drawGradientOverlay(img *image.RGBA) {
	bounds := img.Bounds()
	gradientHeight := 300

	for y := bounds.Max.Y - gradientHeight; y < bounds.Max.Y; y++ {
		progress := float64(y-(bounds.Max.Y-gradientHeight)) / float64(gradientHeight)
		alpha := progress * progress * 0.85

		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			c.R = uint8(float64(c.R) * (1 - alpha))
			c.G = uint8(float64(c.G) * (1 - alpha))
			c.B = uint8(float64(c.B) * (1 - alpha))
			img.SetRGBA(x, y, c)
		}
	}
}

func drawText(img *image.RGBA, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLineChars {
		return s
	}
	return strings.TrimSpace(string(r[:maxLineChars-3])) + "..."
}

// parseHex parses "#rrggbb", returning opaque black when malformed.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// CardCache keeps rendered cards for a short period.
type CardCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cardEntry
	now     func() time.Time
}

type cardEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewCardCache(ttl time.Duration) *CardCache {
	return &CardCache{
		ttl:     ttl,
		entries: make(map[string]cardEntry),
		now:     time.Now,
	}
}

func (c *CardCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.data, true
}

// Set stores data under key and drops expired entries.
func (c *CardCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cardEntry{data: data, expiresAt: now.Add(c.ttl)}
}
