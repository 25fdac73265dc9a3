package assets

import (
	_ "embed"
)

//go:embed default/head.html
var defaultHead string

//go:embed default/default.css
var defaultStyles string

//go:embed default/toc.css
var tocStyles string

// Default returns the embedded fallback template.
func Default() *Template {
	return &Template{
		Head:           defaultHead,
		Title:          DefaultTitle,
		Styles:         defaultStyles,
		BodyClass:      "",
		ContainerClass: DefaultContainerClass,
	}
}

// TOCStyles returns the stylesheet fragment for the floating table of
// contents. It is appended to every document's styles.
func TOCStyles() string {
	return tocStyles
}
