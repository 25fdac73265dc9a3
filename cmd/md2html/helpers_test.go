package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and environment
// ---------------------------------------------------------------------------

type mockConverter struct {
	mu      sync.Mutex
	calls   []string // "html:<input>" or "pdf:<input>" or "sync:<input>"
	outputs []string
	err     error
	missing map[string]bool // templates reported as not found
	choice  md2html.TemplateChoice
	closed  bool
}

func newMockConverter() *mockConverter {
	return &mockConverter{
		missing: map[string]bool{},
		choice:  md2html.TemplateChoice{Source: "built-in default"},
	}
}

func (m *mockConverter) record(kind, input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, kind+":"+input)
	m.outputs = append(m.outputs, output)
}

func (m *mockConverter) write(input, output, ext, content string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if output == "" {
		output = fileutil.ReplaceExt(input, ext)
	}
	return output, os.WriteFile(output, []byte(content), 0o600)
}

func (m *mockConverter) ToHTML(_ context.Context, mdPath, _, outputPath string) (string, error) {
	m.record("html", mdPath, outputPath)
	return m.write(mdPath, outputPath, fileutil.ExtHTML, "<html></html>")
}

func (m *mockConverter) ToPDF(_ context.Context, mdPath, _, outputPath string) (string, error) {
	m.record("pdf", mdPath, outputPath)
	return m.write(mdPath, outputPath, fileutil.ExtPDF, "%PDF-1.4 mock")
}

func (m *mockConverter) Sync(_ context.Context, source, target, _ string) error {
	m.record("sync", source, target)
	_, err := m.write(source, target, fileutil.ExtHTML, "<html></html>")
	return err
}

func (m *mockConverter) ExplainTemplate(_, templatePath string) md2html.TemplateChoice {
	if m.missing[templatePath] {
		return md2html.TemplateChoice{Source: "built-in default", Missing: true}
	}
	return m.choice
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConverter) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// testEnv is an Environment writing to buffers.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	opts   int // options passed to the last NewConverter call
}

func newTestEnv(conv Converter) *testEnv {
	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	fixed := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	te.Environment = &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewConverter: func(opts ...md2html.Option) Converter {
			te.opts = len(opts)
			return conv
		},
	}
	return te
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func setModTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
