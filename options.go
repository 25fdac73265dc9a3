package md2html

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	defaultTemplatePath string
	cacheSize           int
	lang                string
	pdfTimeout          time.Duration // 0 = no timeout
}

// WithLogger sets the logger used for warnings and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultTemplatePath sets the application default template used when
// no explicit template is given. Defaults to templates/default.html next to
// the executable.
func WithDefaultTemplatePath(path string) Option {
	return func(c *Converter) {
		c.cfg.defaultTemplatePath = path
	}
}

// WithTemplateCacheSize sets how many extracted templates are kept.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithTemplateCacheSize(n int) Option {
	if n < 1 {
		panic("md2html: WithTemplateCacheSize size must be positive")
	}
	return func(c *Converter) {
		c.cfg.cacheSize = n
	}
}

// WithDefaultLang sets the <html lang> used when front matter has none.
func WithDefaultLang(lang string) Option {
	return func(c *Converter) {
		if lang != "" {
			c.cfg.lang = lang
		}
	}
}

// WithPDFTimeout bounds PDF page loading. Zero means no timeout.
// Panics if d < 0.
func WithPDFTimeout(d time.Duration) Option {
	if d < 0 {
		panic("md2html: WithPDFTimeout duration cannot be negative")
	}
	return func(c *Converter) {
		c.cfg.pdfTimeout = d
	}
}
