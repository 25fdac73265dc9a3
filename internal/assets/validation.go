package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateTemplateName checks that a template name is safe to join with a
// directory. Names cannot contain path separators, "..", or null bytes.
func ValidateTemplateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTemplateName)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplateName, name)
	}
	return nil
}

// verifyContainment ensures path resolves inside dir, following symlinks
// when they can be resolved.
func verifyContainment(dir, path string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve directory", ErrPathTraversal)
	}
	if real, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = real
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if real, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = real
	}

	if !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, path, dir)
	}
	return nil
}
