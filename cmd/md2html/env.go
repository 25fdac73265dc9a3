package main

import (
	"context"
	"io"
	"os"
	"time"

	md2html "github.com/alnah/go-md2html"
)

// Converter is the conversion surface the commands use.
type Converter interface {
	ToHTML(ctx context.Context, mdPath, templatePath, outputPath string) (string, error)
	ToPDF(ctx context.Context, mdPath, templatePath, outputPath string) (string, error)
	Sync(ctx context.Context, source, target, templatePath string) error
	ExplainTemplate(mdPath, templatePath string) md2html.TemplateChoice
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*md2html.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and converter construction.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...md2html.Option) Converter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...md2html.Option) Converter {
			return md2html.NewConverter(opts...)
		},
	}
}
