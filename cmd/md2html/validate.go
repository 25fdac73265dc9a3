package main

import (
	"fmt"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// requireOneArg returns the single positional argument.
func requireOneArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: %v", ErrTooManyArgs, args[1:])
	}
}

// validateMarkdownInput checks that path is an existing .md file.
func validateMarkdownInput(path string) error {
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if !fileutil.HasExt(path, fileutil.ExtMarkdown) {
		return &invalidExtensionError{path: path, want: fileutil.ExtMarkdown}
	}
	return nil
}

// checkOutput refuses to replace an existing file unless force is set.
func checkOutput(path string, force bool) error {
	if !force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	return nil
}

// checkTemplate fails when an explicit template resolves to nothing.
// The library falls back to the built-in template; the CLI reports it.
func checkTemplate(conv Converter, mdPath, template string) error {
	if template == "" {
		return nil
	}
	if conv.ExplainTemplate(mdPath, template).Missing {
		return &templateNotFoundError{name: template}
	}
	return nil
}
