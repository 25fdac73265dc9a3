package assets

import "slices"

// Fallback values used when a template file lacks the element.
const (
	DefaultTitle          = "Generated Document"
	DefaultContainerClass = "container"
)

// Template is the reusable chrome extracted from an HTML file.
// A Template is never modified after extraction; use Clone before editing.
type Template struct {
	Head           string   // inner markup of <head> without <title>
	Title          string   // text of <title>
	Styles         string   // concatenated <style> contents
	ExternalStyles []string // stylesheet hrefs in document order
	BodyClass      string
	ContainerClass string
	Source         string // absolute path, empty for the embedded default
}

// IsDefault reports whether t is the embedded fallback template.
func (t *Template) IsDefault() bool {
	return t.Source == ""
}

// Clone returns a deep copy of t.
func (t *Template) Clone() *Template {
	c := *t
	c.ExternalStyles = slices.Clone(t.ExternalStyles)
	return &c
}
