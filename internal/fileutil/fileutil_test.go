package fileutil_test

// Notes:
// - The WriteString and Close error branches in WriteTempFile are not tested
//   because triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "valid html", extension: "html"},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: "..\\win", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file lifecycle
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, cleanup, err := fileutil.WriteTempFile(dir, "<p>hello</p>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("temp file dir = %q, want %q", filepath.Dir(path), dir)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("temp file %q should end with .html", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<p>hello</p>" {
		t.Errorf("content = %q", data)
	}

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}
	if fileutil.FileExists(path) {
		t.Error("temp file should be removed after cleanup")
	}
	if err := cleanup(); err != nil {
		t.Errorf("second cleanup() should be a no-op, got %v", err)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile(t.TempDir(), "x", "")
	if !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("error = %v, want ErrExtensionEmpty", err)
	}
}

func TestWriteTempFile_MissingDir(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile(filepath.Join(t.TempDir(), "nope"), "x", "html")
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("error = %v, want creating temp file error", err)
	}
}

// ---------------------------------------------------------------------------
// TestCounterpart - Extension swapping
// ---------------------------------------------------------------------------

func TestCounterpart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "notes/lesson.md", want: "notes/lesson.html"},
		{path: "notes/lesson.html", want: "notes/lesson.md"},
		{path: "README.MD", want: "README.html"},
		{path: "image.png", want: ""},
		{path: "noext", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.Counterpart(tt.path); got != tt.want {
				t.Errorf("Counterpart(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	if got := fileutil.ReplaceExt("/a/b.c/doc.md", ".pdf"); got != "/a/b.c/doc.pdf" {
		t.Errorf("ReplaceExt() = %q", got)
	}
	if got := fileutil.ReplaceExt("plain", ".html"); got != "plain.html" {
		t.Errorf("ReplaceExt() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsStale - Modification time comparison
// ---------------------------------------------------------------------------

func TestIsStale(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		srcTime   time.Time
		dstTime   time.Time
		noDst     bool
		noSrc     bool
		wantStale bool
	}{
		{name: "target missing", srcTime: base, noDst: true, wantStale: true},
		{name: "target older", srcTime: base, dstTime: base.Add(-time.Minute), wantStale: true},
		{name: "target newer", srcTime: base, dstTime: base.Add(time.Minute), wantStale: false},
		{name: "equal times", srcTime: base, dstTime: base, wantStale: false},
		{name: "source missing", noSrc: true, dstTime: base, wantStale: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			src := filepath.Join(dir, "a.md")
			dst := filepath.Join(dir, "a.html")
			if !tt.noSrc {
				writeWithTime(t, src, tt.srcTime)
			}
			if !tt.noDst {
				writeWithTime(t, dst, tt.dstTime)
			}

			if got := fileutil.IsStale(src, dst); got != tt.wantStale {
				t.Errorf("IsStale() = %v, want %v", got, tt.wantStale)
			}
		})
	}
}

func writeWithTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.md")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"lesson":         false,
		"my-template":    false,
		"./custom.html":  true,
		"sub/dir":        true,
		`C:\path\x.html`: true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
