package assets

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxTemplateSize caps the size of a template file (5MB).
const MaxTemplateSize = 5 << 20

// Extract reads the HTML file at path and returns its Template.
// Unlike Cache.Load it reports read and parse failures.
func Extract(path string) (*Template, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}

	f, err := os.Open(abs) // #nosec G304 -- template path chosen by the user or resolver
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, abs)
		}
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxTemplateSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}
	if len(data) > MaxTemplateSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTemplateRead, abs, MaxTemplateSize)
	}

	tmpl, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	tmpl.Source = abs
	return tmpl, nil
}

// Parse extracts a Template from an HTML document. The returned Template
// has no Source.
func Parse(r io.Reader) (*Template, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	tmpl := &Template{
		Title:          DefaultTitle,
		ContainerClass: DefaultContainerClass,
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		tmpl.Title = title
	}

	var styles []string
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		styles = append(styles, s.Text())
	})
	tmpl.Styles = strings.Join(styles, "\n")

	doc.Find("link[rel][href]").Each(func(_ int, s *goquery.Selection) {
		if !isStylesheet(s.AttrOr("rel", "")) {
			return
		}
		if href := strings.TrimSpace(s.AttrOr("href", "")); href != "" {
			tmpl.ExternalStyles = append(tmpl.ExternalStyles, href)
		}
	})

	tmpl.BodyClass = doc.Find("body").First().AttrOr("class", "")

	if class, ok := doc.Find(".container").First().Attr("class"); ok {
		tmpl.ContainerClass = class
	}

	head := doc.Find("head").First()
	head.Find("title").Remove()
	headHTML, err := head.Html()
	if err != nil {
		return nil, fmt.Errorf("%w: rendering head: %v", ErrTemplateParse, err)
	}
	tmpl.Head = strings.TrimSpace(headHTML)

	return tmpl, nil
}

// isStylesheet reports whether a rel attribute holds the stylesheet token.
func isStylesheet(rel string) bool {
	return slices.Contains(strings.Fields(strings.ToLower(rel)), "stylesheet")
}
