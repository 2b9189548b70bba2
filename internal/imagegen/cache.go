package imagegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache provides file-based caching for generated banner images.
type Cache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// NewCache creates dir if needed. Images older than a week are treated as
// missing so each condition is regenerated now and then.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image cache dir: %w", err)
	}
	return &Cache{
		dir:    dir,
		maxAge: 7 * 24 * time.Hour,
		now:    time.Now,
	}, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("weather_%s.png", key))
}

// Get retrieves a cached image if it exists and is not stale.
func (c *Cache) Get(key string) ([]byte, bool) {
	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(info.ModTime()) > c.maxAge {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes through a temp file so readers never see a partial image.
func (c *Cache) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, "banner-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// GetAny returns any cached image regardless of age.
func (c *Cache) GetAny() ([]byte, bool) {
	for _, key := range c.List() {
		if data, err := os.ReadFile(c.path(key)); err == nil {
			return data, true
		}
	}
	return nil, false
}

// List returns the keys of all cached images.
func (c *Cache) List() []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "weather_") || filepath.Ext(name) != ".png" {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(name, "weather_"), ".png"))
	}
	return keys
}
