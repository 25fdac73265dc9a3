// Package watch re-runs conversions when Markdown files change on disk.
//
// A Watcher owns any number of registrations (single Markdown files or
// directory trees). All registrations of one Watcher share a single in-flight
// guard: while a conversion runs, further settled events are dropped, never
// queued.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// DefaultDelay is the quiet period after the last event on a path before
// the event is handled.
const DefaultDelay = 300 * time.Millisecond

// ErrNotDirectory is returned by WatchDirectory for a path that is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Converter is the conversion surface the watcher drives.
type Converter interface {
	ToHTML(ctx context.Context, mdPath, templatePath, outputPath string) (string, error)
	Sync(ctx context.Context, source, target, templatePath string) error
}

// MarkdownOptions configures WatchMarkdown.
type MarkdownOptions struct {
	TemplatePath string // explicit template path or name; empty = automatic
	OutputPath   string // empty = next to the Markdown file
}

// DirectoryOptions configures WatchDirectory.
type DirectoryOptions struct {
	// ConvertExisting converts stale pairs found at startup and files
	// created while watching. Without it only changes to files that
	// already existed are handled.
	ConvertExisting bool

	// Force converts even when the counterpart is newer.
	Force bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDelay sets the per-path quiet period. Negative values are ignored.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// Watcher keeps registrations keyed by absolute path.
type Watcher struct {
	conv   Converter
	logger *slog.Logger
	delay  time.Duration

	busy atomic.Bool

	mu      sync.Mutex
	entries map[string]*entry
	written map[string]time.Time // outputs this watcher wrote, by mtime
}

// New creates a Watcher driving conv.
func New(conv Converter, opts ...Option) *Watcher {
	w := &Watcher{
		conv:    conv,
		logger:  slog.Default(),
		delay:   DefaultDelay,
		entries: make(map[string]*entry),
		written: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// eventKind is what happened to a path during one quiet period.
type eventKind int

const (
	kindCreated eventKind = iota + 1
	kindChanged
)

// entry is one registration and its event loop.
type entry struct {
	path   string
	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}

	// handle is called once per settled path.
	handle func(ctx context.Context, path string, kind eventKind)
	// accept filters raw events and reports their kind; ok=false drops them.
	accept func(ev fsnotify.Event) (kind eventKind, ok bool)
	// onDir is called for directories created while watching (dir mode only).
	onDir func(ctx context.Context, dir string)

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]eventKind
}

// WatchMarkdown converts mdPath once, synchronously, and then again after
// every settled change. The initial conversion error is returned and
// nothing is registered. Registering a path twice is a no-op.
func (w *Watcher) WatchMarkdown(ctx context.Context, mdPath string, opts MarkdownOptions) error {
	abs, err := filepath.Abs(mdPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", mdPath, err)
	}
	if w.registered(abs) {
		return nil
	}

	out, err := w.conv.ToHTML(ctx, abs, opts.TemplatePath, opts.OutputPath)
	if err != nil {
		return err
	}
	w.markWritten(out)

	e := &entry{
		path: abs,
		accept: func(ev fsnotify.Event) (eventKind, bool) {
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				return 0, false
			}
			return kindChanged, true
		},
		handle: func(ctx context.Context, path string, _ eventKind) {
			w.convertMarkdown(ctx, path, opts)
		},
	}

	// Watch the parent so editors that save by rename keep being seen.
	if err := w.start(ctx, e, []string{filepath.Dir(abs)}); err != nil {
		return err
	}
	w.logger.Info("watcher: watching file", slog.String("path", abs))
	return nil
}

// WatchDirectory keeps the .md/.html pairs under dir in sync. A change to
// either file of a pair regenerates its counterpart when the counterpart is
// missing or strictly older, or always with Force. Subdirectories created
// later are watched too. Registering a path twice is a no-op.
func (w *Watcher) WatchDirectory(ctx context.Context, dir string, opts DirectoryOptions) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if !fileutil.DirExists(abs) {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	if w.registered(abs) {
		return nil
	}

	known := newPathSet()
	dirs, files, err := scanTree(abs)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	for _, f := range files {
		known.add(f)
	}

	e := &entry{path: abs}
	e.accept = func(ev fsnotify.Event) (eventKind, bool) {
		name := filepath.Clean(ev.Name)
		if !isSyncable(name) || !ev.Has(fsnotify.Write|fsnotify.Create) {
			return 0, false
		}
		// A known path showing up again is an editor's atomic save.
		if known.add(name) {
			return kindChanged, true
		}
		if ev.Has(fsnotify.Create) {
			return kindCreated, true
		}
		return kindChanged, true
	}
	e.handle = func(ctx context.Context, path string, kind eventKind) {
		if kind == kindCreated && !opts.ConvertExisting {
			w.logger.Debug("watcher: ignoring new file", slog.String("path", path))
			return
		}
		w.syncPair(ctx, path, opts.Force)
	}
	e.onDir = func(ctx context.Context, newDir string) {
		_, newFiles, err := scanTree(newDir)
		if err != nil {
			w.logger.Warn("watcher: scan new dir failed", slog.String("path", newDir), slog.String("error", err.Error()))
			return
		}
		for _, f := range newFiles {
			if !known.add(f) && opts.ConvertExisting {
				w.syncPair(ctx, f, opts.Force)
			}
		}
	}

	if opts.ConvertExisting {
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			w.syncPair(ctx, f, opts.Force)
		}
	}

	if err := w.start(ctx, e, dirs); err != nil {
		return err
	}
	w.logger.Info("watcher: watching directory",
		slog.String("path", abs),
		slog.Int("files", len(files)),
		slog.Bool("convert_existing", opts.ConvertExisting),
		slog.Bool("force", opts.Force))
	return nil
}

// Stop closes the registration for path. Unknown paths are ignored.
func (w *Watcher) Stop(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	e, ok := w.entries[abs]
	delete(w.entries, abs)
	w.mu.Unlock()

	if ok {
		e.cancel()
		<-e.done
	}
}

// StopAll closes every registration and resets the in-flight guard.
// Conversions already running are not awaited.
func (w *Watcher) StopAll() {
	w.mu.Lock()
	entries := make([]*entry, 0, len(w.entries))
	for _, e := range w.entries {
		entries = append(entries, e)
	}
	clear(w.entries)
	w.mu.Unlock()

	for _, e := range entries {
		e.cancel()
		<-e.done
	}
	w.busy.Store(false)
}

// Watching returns the registered paths in sorted order.
func (w *Watcher) Watching() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.entries))
	for p := range w.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (w *Watcher) registered(abs string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.entries[abs]
	return ok
}

// start creates the fsnotify watcher for dirs, registers e and runs its loop.
func (w *Watcher) start(ctx context.Context, e *entry, dirs []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	e.fsw = fsw
	e.cancel = cancel
	e.done = make(chan struct{})
	e.timers = make(map[string]*time.Timer)
	e.pending = make(map[string]eventKind)

	w.mu.Lock()
	if _, dup := w.entries[e.path]; dup {
		w.mu.Unlock()
		cancel()
		_ = fsw.Close()
		return nil
	}
	w.entries[e.path] = e
	w.mu.Unlock()

	go w.loop(loopCtx, e)
	return nil
}

// loop processes fsnotify events for e until its context is cancelled.
func (w *Watcher) loop(ctx context.Context, e *entry) {
	defer close(e.done)
	defer func() {
		_ = e.fsw.Close()
		e.stopTimers()
		// Drop the registration when the parent context ended it.
		w.mu.Lock()
		if w.entries[e.path] == e {
			delete(w.entries, e.path)
		}
		w.mu.Unlock()
		w.logger.Info("watcher: stopped", slog.String("path", e.path))
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-e.fsw.Events:
			if !ok {
				return
			}

			if e.onDir != nil && ev.Has(fsnotify.Create) && fileutil.DirExists(ev.Name) {
				if err := addDirsRecursive(e.fsw, ev.Name); err != nil {
					w.logger.Warn("watcher: add new dir failed",
						slog.String("path", ev.Name),
						slog.String("error", err.Error()))
					continue
				}
				w.logger.Debug("watcher: watching new dir", slog.String("path", ev.Name))
				e.onDir(ctx, ev.Name)
				continue
			}

			kind, ok := e.accept(ev)
			if !ok {
				continue
			}
			w.logger.Debug("watcher: event",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()))
			e.schedule(ctx, filepath.Clean(ev.Name), kind, w.delay)

		case err, ok := <-e.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher: error", slog.String("error", err.Error()))
		}
	}
}

// schedule (re)starts the quiet-period timer for path. The first event of
// the period decides its kind, so the writes that follow a creation do not
// turn it into a change.
func (e *entry) schedule(ctx context.Context, path string, kind eventKind, delay time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.pending[path]; !ok {
		e.pending[path] = kind
	}
	if t, ok := e.timers[path]; ok {
		t.Reset(delay)
		return
	}
	e.timers[path] = time.AfterFunc(delay, func() {
		e.mu.Lock()
		settled := e.pending[path]
		delete(e.pending, path)
		delete(e.timers, path)
		e.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		e.handle(ctx, path, settled)
	})
}

func (e *entry) stopTimers() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for p, t := range e.timers {
		t.Stop()
		delete(e.timers, p)
	}
	clear(e.pending)
}

// convertMarkdown runs one guarded single-file conversion.
func (w *Watcher) convertMarkdown(ctx context.Context, path string, opts MarkdownOptions) {
	if !w.acquire(path) {
		return
	}
	defer w.release()

	out, err := w.conv.ToHTML(ctx, path, opts.TemplatePath, opts.OutputPath)
	if err != nil {
		w.logger.Error("watcher: conversion failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	w.markWritten(out)
	w.logger.Info("watcher: converted", slog.String("path", path), slog.String("output", out))
}

// syncPair regenerates the counterpart of path when it is missing or
// strictly older, or unconditionally with force.
func (w *Watcher) syncPair(ctx context.Context, path string, force bool) {
	if w.isOwnOutput(path) {
		w.logger.Debug("watcher: ignoring own output", slog.String("path", path))
		return
	}

	target := fileutil.Counterpart(path)
	if !force && !fileutil.IsStale(path, target) {
		w.logger.Debug("watcher: up to date", slog.String("path", path), slog.String("target", target))
		return
	}

	if !w.acquire(path) {
		return
	}
	defer w.release()

	if err := w.conv.Sync(ctx, path, target, ""); err != nil {
		w.logger.Warn("watcher: sync failed",
			slog.String("path", path),
			slog.String("target", target),
			slog.String("error", err.Error()))
		return
	}
	w.markWritten(target)
	w.logger.Info("watcher: synced", slog.String("path", path), slog.String("target", target))
}

// acquire takes the in-flight guard or drops the event.
func (w *Watcher) acquire(path string) bool {
	if w.busy.CompareAndSwap(false, true) {
		return true
	}
	w.logger.Debug("watcher: busy, dropping event", slog.String("path", path))
	return false
}

func (w *Watcher) release() {
	w.busy.Store(false)
}

// markWritten records the current mtime of an output this watcher wrote.
func (w *Watcher) markWritten(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	mtime, ok := fileutil.ModTime(abs)
	if !ok {
		return
	}
	w.mu.Lock()
	w.written[abs] = mtime
	w.mu.Unlock()
}

// isOwnOutput reports whether path still carries the mtime recorded when
// this watcher wrote it.
func (w *Watcher) isOwnOutput(path string) bool {
	mtime, ok := fileutil.ModTime(path)
	if !ok {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	recorded, ok := w.written[path]
	return ok && recorded.Equal(mtime)
}

// isSyncable reports whether path is a .md or .html file that is not hidden.
// Hidden files include the temporary documents printed to PDF.
func isSyncable(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return fileutil.HasExt(path, fileutil.ExtMarkdown) || fileutil.HasExt(path, fileutil.ExtHTML)
}

// scanTree lists root and its subdirectories, and the syncable files below
// them, skipping hidden directories.
func scanTree(root string) (dirs, files []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		}
		if isSyncable(path) {
			files = append(files, path)
		}
		return nil
	})
	return dirs, files, err
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	dirs, _, err := scanTree(root)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// pathSet is a concurrency-safe set of paths.
type pathSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{paths: make(map[string]struct{})}
}

// add inserts path and reports whether it was already present.
func (s *pathSet) add(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.paths[path]; ok {
		return true
	}
	s.paths[path] = struct{}{}
	return false
}
