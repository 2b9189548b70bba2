package imagegen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/skycast/internal/theme"
)

// ErrUnavailable means no banner is cached and generation is disabled.
var ErrUnavailable = errors.New("banner unavailable")

type BannerGenerator interface {
	Generate(ctx context.Context, condition theme.WeatherCondition, tod theme.TimeOfDay, t time.Time) ([]byte, error)
}

// Banners serves banner images from the cache, generating missing ones
// one at a time.
type Banners struct {
	cache *Cache
	gen   BannerGenerator
	mu    sync.Mutex
	log   zerolog.Logger
	now   func() time.Time
}

// NewBanners returns a banner service. gen may be nil, in which case only
// cached images are served.
func NewBanners(cache *Cache, gen BannerGenerator, log zerolog.Logger) *Banners {
	return &Banners{
		cache: cache,
		gen:   gen,
		log:   log.With().Str("component", "banners").Logger(),
		now:   time.Now,
	}
}

func (b *Banners) Enabled() bool {
	return b.gen != nil
}

// Get returns the banner for condition and tod.
func (b *Banners) Get(ctx context.Context, condition theme.WeatherCondition, tod theme.TimeOfDay) ([]byte, error) {
	key := theme.ConditionWithTime(condition, tod)
	if data, ok := b.cache.Get(key); ok {
		return data, nil
	}
	if b.gen == nil {
		return nil, ErrUnavailable
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Another request may have generated it while we waited.
	if data, ok := b.cache.Get(key); ok {
		return data, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	data, err := b.gen.Generate(ctx, condition, tod, b.now())
	if err != nil {
		return nil, err
	}
	if err := b.cache.Set(key, data); err != nil {
		b.log.Error().Err(err).Str("condition", key).Msg("cache banner")
	}
	return data, nil
}

// Background returns the cached banner for key, falling back to any cached
// banner regardless of age. It never generates.
func (b *Banners) Background(key string) ([]byte, bool) {
	if data, ok := b.cache.Get(key); ok {
		return data, true
	}
	return b.cache.GetAny()
}
