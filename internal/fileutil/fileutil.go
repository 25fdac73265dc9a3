// Package fileutil provides file and path helpers shared by the converter,
// the watcher and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extensions handled by the converter.
const (
	ExtMarkdown = ".md"
	ExtHTML     = ".html"
	ExtPDF      = ".pdf"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile creates a temporary file in dir with the given content and
// extension. An empty dir uses the system temp directory.
// Returns the file path and a cleanup function that removes the file.
func WriteTempFile(dir, content, extension string) (path string, cleanup func() error, err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp(dir, ".md2html-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		_ = cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		_ = cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "lesson" -> false (name)
//   - "./custom.html" -> true (relative path)
//   - "/absolute/page.html" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExt reports whether path ends with ext, ignoring case.
func HasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// ReplaceExt swaps the extension of path for ext.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Counterpart returns the file of the opposite format sharing path's basename:
// .md maps to .html and .html maps to .md. Other extensions yield "".
func Counterpart(path string) string {
	switch {
	case HasExt(path, ExtMarkdown):
		return ReplaceExt(path, ExtHTML)
	case HasExt(path, ExtHTML):
		return ReplaceExt(path, ExtMarkdown)
	default:
		return ""
	}
}

// ModTime returns the modification time of path and whether it exists.
func ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// IsStale reports whether target must be regenerated from source: target is
// missing or strictly older than source. Equal times are not stale.
func IsStale(source, target string) bool {
	srcTime, ok := ModTime(source)
	if !ok {
		return false
	}
	dstTime, ok := ModTime(target)
	if !ok {
		return true
	}
	return dstTime.Before(srcTime)
}
