//go:build integration

package md2html

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}

	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestRodConverter_ToPDF_Integration tests PDF generation using go-rod.
// Rod automatically downloads Chromium on first run if not found.
func TestRodConverter_ToPDF_Integration(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	converter := newRodConverter(30*time.Second, logger)
	defer converter.Close()

	t.Run("valid HTML produces PDF", func(t *testing.T) {
		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><h1>Hello, World!</h1><p>This is a test document.</p></body>
</html>`

		data, err := converter.ToPDF(ctx, html, t.TempDir())
		if err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
		assertValidPDF(t, data)
	})

	t.Run("relative stylesheet resolves", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "print.css"), []byte("h1 { color: red; }"), 0o600); err != nil {
			t.Fatal(err)
		}
		html := `<!DOCTYPE html><html><head><link rel="stylesheet" href="print.css"></head><body><h1>Styled</h1></body></html>`

		data, err := converter.ToPDF(ctx, html, dir)
		if err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
		assertValidPDF(t, data)

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("temp HTML left behind: %v", entries)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := converter.ToPDF(cctx, "<html></html>", t.TempDir()); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestConverter_ToPDF_Integration(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(md, []byte("# Title\n\n## Section\n\n> **Example**: sample"), 0o600); err != nil {
		t.Fatal(err)
	}

	conv := NewConverter(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithPDFTimeout(30*time.Second),
	)
	defer conv.Close()

	out, err := conv.ToPDF(context.Background(), md, "", "")
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	assertValidPDF(t, data)
}
