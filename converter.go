package md2html

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// outputPerm is the permission used for written HTML and PDF files.
const outputPerm = 0o644

// Converter orchestrates the Markdown to HTML/PDF pipeline.
// It is safe for concurrent use; PDF printing is serialized on one browser.
type Converter struct {
	cfg    converterConfig
	logger *slog.Logger

	cache         *assets.Cache
	resolver      *assets.Resolver
	htmlConverter pipeline.HTMLConverter
	renderer      *pipeline.Renderer
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithPDFTimeout).
// The browser is only started by the first ToPDF call.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			cacheSize: assets.DefaultCacheSize,
			lang:      pipeline.DefaultLang,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.cache = assets.NewCache(c.cfg.cacheSize, c.logger)
	c.resolver = assets.NewResolver(c.cache, c.cfg.defaultTemplatePath, c.logger)
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter()
	}
	c.renderer = pipeline.NewRenderer(c.htmlConverter, c.cfg.lang)

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.pdfTimeout, c.logger)
	}

	return c
}

// ToHTML converts the Markdown file at mdPath and writes the document to
// outputPath, or next to mdPath with a .html extension when outputPath is
// empty. templatePath may be a file path, a template name looked up next to
// mdPath, or empty for automatic selection. Returns the written path.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ToHTML(ctx context.Context, mdPath, templatePath, outputPath string) (out string, err error) {
	defer recoverInternal(&err)

	if outputPath == "" {
		outputPath = fileutil.ReplaceExt(mdPath, fileutil.ExtHTML)
	}

	start := time.Now()
	doc, err := c.renderFile(ctx, mdPath, templatePath)
	if err != nil {
		return "", err
	}

	// #nosec G306 -- generated documents are meant to be world-readable
	if err := os.WriteFile(outputPath, []byte(doc), outputPerm); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	c.logger.Info("converted",
		slog.String("source", mdPath),
		slog.String("output", outputPath),
		slog.Duration("took", time.Since(start)))
	return outputPath, nil
}

// ToPDF converts the Markdown file at mdPath to PDF through headless Chrome.
// The document is printed from a temporary file in mdPath's directory so
// that relative images and stylesheets resolve.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ToPDF(ctx context.Context, mdPath, templatePath, outputPath string) (out string, err error) {
	defer recoverInternal(&err)

	if outputPath == "" {
		outputPath = fileutil.ReplaceExt(mdPath, fileutil.ExtPDF)
	}

	start := time.Now()
	doc, err := c.renderFile(ctx, mdPath, templatePath)
	if err != nil {
		return "", err
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, doc, filepath.Dir(mdPath))
	if err != nil {
		return "", fmt.Errorf("converting to PDF: %w", err)
	}

	// #nosec G306 -- generated documents are meant to be world-readable
	if err := os.WriteFile(outputPath, pdf, outputPerm); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	c.logger.Info("converted",
		slog.String("source", mdPath),
		slog.String("output", outputPath),
		slog.Duration("took", time.Since(start)))
	return outputPath, nil
}

// Sync regenerates target from source. Only Markdown sources are supported;
// any other source returns ErrUnsupportedDirection.
func (c *Converter) Sync(ctx context.Context, source, target, templatePath string) error {
	if !fileutil.HasExt(source, fileutil.ExtMarkdown) {
		return fmt.Errorf("%w: %s to %s", ErrUnsupportedDirection, filepath.Ext(source), filepath.Ext(target))
	}
	_, err := c.ToHTML(ctx, source, templatePath, target)
	return err
}

// Render converts Markdown text into a complete HTML document without
// touching the filesystem except to read the template. An empty
// templatePath renders with the built-in default template.
func (c *Converter) Render(ctx context.Context, markdown, templatePath string) (doc string, err error) {
	defer recoverInternal(&err)

	tmpl := assets.Default()
	if templatePath != "" {
		tmpl = c.cache.Load(templatePath)
	}

	doc, err = c.renderer.RenderSource(ctx, markdown, tmpl)
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return doc, nil
}

// TemplateChoice describes the template selected for a Markdown file.
type TemplateChoice struct {
	Source  string // how the template was chosen
	Path    string // empty for the built-in default
	Missing bool   // an explicit template was requested but not found
}

// ExplainTemplate reports which template ToHTML would use for mdPath,
// without extracting it.
func (c *Converter) ExplainTemplate(mdPath, templatePath string) TemplateChoice {
	d := c.resolver.Explain(mdPath, templatePath)
	return TemplateChoice{Source: d.Step.String(), Path: d.Path, Missing: d.Missing}
}

// InvalidateTemplate drops the cached extraction of the template at path.
func (c *Converter) InvalidateTemplate(path string) {
	c.resolver.Invalidate(path)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// renderFile reads mdPath and renders it with the resolved template.
func (c *Converter) renderFile(ctx context.Context, mdPath, templatePath string) (string, error) {
	if mdPath == "" {
		return "", ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// #nosec G304 -- mdPath is provided by the caller
	source, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	tmpl := c.resolver.Resolve(mdPath, templatePath)
	doc, err := c.renderer.RenderSource(ctx, string(source), tmpl)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", mdPath, err)
	}
	return doc, nil
}

func recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("internal error: %v", r)
	}
}
