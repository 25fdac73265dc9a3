package assets

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Step identifies which resolution rule picked a template.
type Step int

const (
	StepBuiltin       Step = iota // embedded Default template
	StepExplicitPath              // explicit path exists on disk
	StepNamedSibling              // <name>.html next to the Markdown file
	StepCanonical                 // default template next to the application
	StepDirectoryScan             // *.html found in the Markdown directory
)

// String returns a short label for the step.
func (s Step) String() string {
	switch s {
	case StepExplicitPath:
		return "explicit path"
	case StepNamedSibling:
		return "named template"
	case StepCanonical:
		return "application default"
	case StepDirectoryScan:
		return "directory scan"
	default:
		return "built-in default"
	}
}

// Decision records which template file the resolver picked and why.
type Decision struct {
	Step Step
	Path string // empty for StepBuiltin

	// Missing is set when an explicit template was requested but could not
	// be found; resolution then used the built-in default.
	Missing bool
}

// Resolver picks the template for a Markdown file.
type Resolver struct {
	cache         *Cache
	canonicalPath string
	logger        *slog.Logger
}

// NewResolver creates a Resolver. An empty canonicalPath uses
// CanonicalTemplatePath.
func NewResolver(cache *Cache, canonicalPath string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewCache(DefaultCacheSize, logger)
	}
	if canonicalPath == "" {
		canonicalPath = CanonicalTemplatePath()
	}
	return &Resolver{cache: cache, canonicalPath: canonicalPath, logger: logger}
}

// CanonicalTemplatePath returns templates/default.html next to the running
// executable, or "" when the executable path is unknown.
func CanonicalTemplatePath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "templates", "default.html")
}

// Resolve returns the template to render mdPath with. It never fails.
func (r *Resolver) Resolve(mdPath, explicit string) *Template {
	d := r.Explain(mdPath, explicit)
	r.logger.Debug("template: resolved",
		slog.String("markdown", mdPath),
		slog.String("step", d.Step.String()),
		slog.String("path", d.Path))
	if d.Step == StepBuiltin {
		return Default()
	}
	return r.cache.Load(d.Path)
}

// Explain returns the resolution decision for mdPath without extracting.
func (r *Resolver) Explain(mdPath, explicit string) Decision {
	mdDir := filepath.Dir(mdPath)

	if explicit != "" {
		if fileutil.FileExists(explicit) {
			return Decision{Step: StepExplicitPath, Path: explicit}
		}
		if path, ok := r.namedSibling(mdDir, explicit); ok {
			return Decision{Step: StepNamedSibling, Path: path}
		}
		r.logger.Warn("template: not found, using default",
			slog.String("template", explicit),
			slog.String("dir", mdDir))
		return Decision{Step: StepBuiltin, Missing: true}
	}

	if r.canonicalPath != "" && fileutil.FileExists(r.canonicalPath) {
		return Decision{Step: StepCanonical, Path: r.canonicalPath}
	}

	if path, ok := scanDirectory(mdDir, fileutil.Counterpart(mdPath)); ok {
		return Decision{Step: StepDirectoryScan, Path: path}
	}

	return Decision{Step: StepBuiltin}
}

// Invalidate drops a cached template.
func (r *Resolver) Invalidate(path string) {
	r.cache.Invalidate(path)
}

func (r *Resolver) namedSibling(dir, name string) (string, bool) {
	name = strings.TrimSuffix(name, fileutil.ExtHTML)
	if err := ValidateTemplateName(name); err != nil {
		r.logger.Warn("template: rejected name", slog.String("template", name), slog.String("error", err.Error()))
		return "", false
	}
	path := filepath.Join(dir, name+fileutil.ExtHTML)
	if err := verifyContainment(dir, path); err != nil {
		r.logger.Warn("template: rejected path", slog.String("path", path), slog.String("error", err.Error()))
		return "", false
	}
	return path, fileutil.FileExists(path)
}

// scanDirectory lists *.html files in dir in filename order, skipping
// exclude (the Markdown file's own output). A name containing "template"
// wins; otherwise the first file is used.
func scanDirectory(dir, exclude string) (string, bool) {
	entries, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		return "", false
	}

	excludeName := filepath.Base(exclude)
	first := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !fileutil.HasExt(name, fileutil.ExtHTML) || name == excludeName {
			continue
		}
		if strings.Contains(strings.ToLower(name), "template") {
			return filepath.Join(dir, name), true
		}
		if first == "" {
			first = name
		}
	}
	if first == "" {
		return "", false
	}
	return filepath.Join(dir, first), true
}
