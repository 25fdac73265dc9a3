package md2html

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	// ToPDF prints htmlContent; dir is where relative asset URLs resolve.
	ToPDF(ctx context.Context, htmlContent, dir string) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// PDF page dimensions in millimetres (A4).
const (
	paperWidthMM     = 210
	paperHeightMM    = 297
	marginVerticalMM = 20
	marginSideMM     = 15
	mmPerInch        = 25.4
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration // 0 = bounded by ctx only
}

// newRodRenderer creates a rodRenderer with the given page load timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser. Callers hold r.mu.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.launcher = l
	return nil
}

// Close releases browser resources and kills the browser process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if pid := r.launcher.PID(); pid > 0 {
		// The process group may already be gone after a clean Close.
		_ = process.KillTree(pid)
	}
	r.launcher.Kill()
	r.browser = nil
	r.launcher = nil
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	target := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: target.String()})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	loading := page
	if r.timeout > 0 {
		loading = page.Timeout(r.timeout)
	}
	if err := loading.WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions returns A4 print settings with background graphics.
func buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(mmToInches(paperWidthMM)),
		PaperHeight:     floatPtr(mmToInches(paperHeightMM)),
		MarginTop:       floatPtr(mmToInches(marginVerticalMM)),
		MarginBottom:    floatPtr(mmToInches(marginVerticalMM)),
		MarginLeft:      floatPtr(mmToInches(marginSideMM)),
		MarginRight:     floatPtr(mmToInches(marginSideMM)),
		PrintBackground: true,
	}
}

func mmToInches(mm float64) float64 {
	return mm / mmPerInch
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF by printing a temporary file.
type rodConverter struct {
	renderer pdfRenderer
	logger   *slog.Logger
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration, logger *slog.Logger) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout),
		logger:   logger,
	}
}

// ToPDF writes htmlContent to a temporary file in dir and prints it.
// The temporary file is removed whatever the outcome.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent, dir string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(dir, htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			c.logger.Warn("pdf: failed to remove temporary file",
				slog.String("path", tmpPath),
				slog.String("error", err.Error()))
		}
	}()

	return c.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
