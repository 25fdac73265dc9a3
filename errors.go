package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for conversion operations.
var (
	ErrEmptyPath            = errors.New("markdown path cannot be empty")
	ErrReadMarkdown         = errors.New("failed to read markdown")
	ErrWriteOutput          = errors.New("failed to write output")
	ErrHTMLConversion       = pipeline.ErrHTMLConversion
	ErrPDFGeneration        = errors.New("PDF generation failed")
	ErrBrowserConnect       = errors.New("failed to connect to browser")
	ErrPageCreate           = errors.New("failed to create browser page")
	ErrPageLoad             = errors.New("failed to load page")
	ErrUnsupportedDirection = errors.New("unsupported conversion direction")
)
