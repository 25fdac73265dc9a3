package assets

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the capacity used when NewCache receives a size < 1.
const DefaultCacheSize = 32

type cacheEntry struct {
	modTime time.Time
	size    int64
	tmpl    *Template
}

// Cache is a bounded LRU of extracted templates keyed by absolute path.
// An entry whose file changed on disk (mtime or size) is re-extracted on the
// next Load. Concurrent loads of one path share a single extraction.
type Cache struct {
	capacity int
	logger   *slog.Logger
	extract  func(string) (*Template, error)

	entries *lru.Cache[string, *cacheEntry]
	group   singleflight.Group
}

// NewCache creates a Cache holding up to capacity templates.
func NewCache(capacity int, logger *slog.Logger) *Cache {
	if capacity < 1 {
		capacity = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	// Error ignored: lru.New only fails for a non-positive size.
	entries, _ := lru.New[string, *cacheEntry](capacity)
	return &Cache{
		capacity: capacity,
		logger:   logger,
		extract:  Extract,
		entries:  entries,
	}
}

// Load returns the template extracted from path. It never fails: unreadable
// or unparsable files yield the Default template and a warning. Fallbacks
// are not cached.
func (c *Cache) Load(path string) *Template {
	tmpl, err := c.Get(path)
	if err != nil {
		c.logger.Warn("template: extraction failed, using default",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return Default()
	}
	return tmpl
}

// Get returns the template extracted from path, or the extraction error.
func (c *Cache) Get(path string) (*Template, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		c.Invalidate(abs)
		return c.extract(abs)
	}

	if tmpl, ok := c.lookup(abs, info); ok {
		return tmpl, nil
	}

	v, err, _ := c.group.Do(abs, func() (any, error) {
		tmpl, err := c.extract(abs)
		if err != nil {
			return nil, err
		}
		c.store(abs, info, tmpl)
		c.logger.Debug("template: extracted", slog.String("path", abs))
		return tmpl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Template), nil
}

func (c *Cache) lookup(abs string, info os.FileInfo) (*Template, bool) {
	entry, ok := c.entries.Get(abs)
	if !ok {
		return nil, false
	}
	if !entry.modTime.Equal(info.ModTime()) || entry.size != info.Size() {
		c.entries.Remove(abs)
		return nil, false
	}
	return entry.tmpl, true
}

func (c *Cache) store(abs string, info os.FileInfo, tmpl *Template) {
	c.entries.Add(abs, &cacheEntry{modTime: info.ModTime(), size: info.Size(), tmpl: tmpl})
}

// Invalidate drops the cached template for path, if any.
func (c *Cache) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		c.entries.Remove(abs)
	}
}

// Purge drops every cached template.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	return c.entries.Len()
}
