package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2html/internal/watch"
)

// Sentinel errors for CLI validation.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInputNotFound    = errors.New("input not found")
	ErrInvalidExtension = errors.New("unsupported file extension")
	ErrOutputExists     = errors.New("output already exists")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNotDirectory     = watch.ErrNotDirectory
	ErrInvalidFlag      = errors.New("invalid flag value")
	ErrTooManyArgs      = errors.New("too many arguments")
)

// invalidExtensionError reports an input with the wrong extension.
type invalidExtensionError struct {
	path string
	want string // e.g. ".md" or ".md or .html"
}

func (e *invalidExtensionError) Error() string {
	return fmt.Sprintf("%v: %s (want %s)", ErrInvalidExtension, e.path, e.want)
}

func (e *invalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// templateNotFoundError reports an explicit template that does not resolve.
type templateNotFoundError struct {
	name string
}

func (e *templateNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrTemplateNotFound, e.name)
}

func (e *templateNotFoundError) Unwrap() error { return ErrTemplateNotFound }

// configNotFoundError carries the locations tried for a config name.
type configNotFoundError struct {
	err      error
	searched []string
}

func (e *configNotFoundError) Error() string { return e.err.Error() }

func (e *configNotFoundError) Unwrap() error { return e.err }
