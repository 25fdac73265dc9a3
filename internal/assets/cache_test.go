package assets

// Notes:
// - Concurrent extraction de-duplication is checked by counting calls to a
//   substituted extract function; the exact interleaving is not asserted.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingCache wraps Extract and counts calls.
func countingCache(capacity int) (*Cache, *atomic.Int32) {
	var calls atomic.Int32
	c := NewCache(capacity, quietLogger())
	c.extract = func(path string) (*Template, error) {
		calls.Add(1)
		return Extract(path)
	}
	return c, &calls
}

// ---------------------------------------------------------------------------
// TestCache - Memoization, refresh and eviction
// ---------------------------------------------------------------------------

func TestCache_Memoizes(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "t.html", sampleTemplate)
	c, calls := countingCache(4)

	first := c.Load(path)
	second := c.Load(path)

	if first != second {
		t.Error("second Load should return the cached template")
	}
	if calls.Load() != 1 {
		t.Errorf("extract called %d times, want 1", calls.Load())
	}
}

func TestCache_RefreshesOnModTimeChange(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "t.html", "<title>One</title>")
	c, calls := countingCache(4)

	if got := c.Load(path).Title; got != "One" {
		t.Fatalf("Title = %q, want One", got)
	}

	if err := os.WriteFile(path, []byte("<title>Two</title>"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	if got := c.Load(path).Title; got != "Two" {
		t.Errorf("Title after change = %q, want Two", got)
	}
	if calls.Load() != 2 {
		t.Errorf("extract called %d times, want 2", calls.Load())
	}
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", "<title>A</title>")
	b := writeFile(t, dir, "b.html", "<title>B</title>")
	c, calls := countingCache(4)

	c.Load(a)
	c.Load(b)
	c.Invalidate(a)
	if c.Len() != 1 {
		t.Errorf("Len() after Invalidate = %d, want 1", c.Len())
	}
	c.Load(a)
	if calls.Load() != 3 {
		t.Errorf("extract called %d times, want 3", calls.Load())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", "<title>A</title>")
	b := writeFile(t, dir, "b.html", "<title>B</title>")
	d := writeFile(t, dir, "d.html", "<title>D</title>")
	c, calls := countingCache(2)

	c.Load(a)
	c.Load(b)
	c.Load(a) // a is now most recent
	c.Load(d) // evicts b

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	before := calls.Load()
	c.Load(a)
	if calls.Load() != before {
		t.Error("a should still be cached")
	}
	c.Load(b)
	if calls.Load() != before+1 {
		t.Error("b should have been evicted")
	}
}

func TestCache_FallbackNotCached(t *testing.T) {
	t.Parallel()

	c, calls := countingCache(4)
	missing := filepath.Join(t.TempDir(), "missing.html")

	tmpl := c.Load(missing)
	if !tmpl.IsDefault() {
		t.Error("Load of missing file should return Default template")
	}
	c.Load(missing)
	if calls.Load() != 2 {
		t.Errorf("extract called %d times, want 2 (fallback not cached)", calls.Load())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCache_GetReportsError(t *testing.T) {
	t.Parallel()

	c := NewCache(0, quietLogger())
	_, err := c.Get(filepath.Join(t.TempDir(), "missing.html"))
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Get() error = %v, want ErrTemplateNotFound", err)
	}
	if c.capacity != DefaultCacheSize {
		t.Errorf("capacity = %d, want default %d", c.capacity, DefaultCacheSize)
	}
}

func TestCache_ConcurrentLoads(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "t.html", sampleTemplate)
	c, calls := countingCache(4)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tmpl := c.Load(path); tmpl.Title != "Lesson Template" {
				t.Errorf("Title = %q", tmpl.Title)
			}
		}()
	}
	wg.Wait()

	// Loads racing before the first store may each extract once; after
	// settling the entry is cached.
	settled := calls.Load()
	c.Load(path)
	if calls.Load() != settled {
		t.Error("template should be cached after concurrent loads")
	}
}
