package assets

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplateName indicates the template name contains path
	// separators or traversal characters.
	ErrInvalidTemplateName = errors.New("invalid template name")

	// ErrTemplateRead indicates an I/O error while reading a template file.
	ErrTemplateRead = errors.New("failed to read template")

	// ErrTemplateParse indicates the template file is not parsable HTML.
	ErrTemplateParse = errors.New("failed to parse template")

	// ErrPathTraversal indicates a name resolved outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
