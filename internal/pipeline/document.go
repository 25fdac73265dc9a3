package pipeline

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
)

// DefaultLang is the document language used when front matter has none.
const DefaultLang = "zh-TW"

//go:embed templates/document.html
var documentTemplateSource string

var documentTemplate = template.Must(template.New("document").Parse(documentTemplateSource))

// DocumentData holds the values merged into the document template.
type DocumentData struct {
	Lang           string
	Head           template.HTML
	Title          string
	Stylesheets    []string
	Styles         template.CSS
	BodyClass      string
	ContainerClass string
	Content        template.HTML
}

// AssembleDocument renders a complete HTML document.
func AssembleDocument(data DocumentData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: assembling document: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// sanitizeCSS keeps style text from closing the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// ResolveTitle picks the document title: metadata title, then first h1
// text, then the template title, then the generic fallback.
func ResolveTitle(meta Metadata, content string, tmpl *assets.Template) string {
	if t := strings.TrimSpace(meta[MetaTitle]); t != "" {
		return t
	}
	if t := FirstH1Text(content); t != "" {
		return t
	}
	if tmpl != nil && tmpl.Title != "" {
		return tmpl.Title
	}
	return assets.DefaultTitle
}

// Renderer turns Markdown into complete HTML documents.
type Renderer struct {
	converter HTMLConverter
	lang      string
}

// NewRenderer creates a Renderer. A nil converter uses the goldmark
// configuration; an empty lang uses DefaultLang.
func NewRenderer(converter HTMLConverter, lang string) *Renderer {
	if converter == nil {
		converter = NewGoldmarkConverter()
	}
	if lang == "" {
		lang = DefaultLang
	}
	return &Renderer{converter: converter, lang: lang}
}

// Render converts a Markdown body (front matter already removed) into a
// document using tmpl for its chrome and meta for title and language.
func (r *Renderer) Render(ctx context.Context, body string, tmpl *assets.Template, meta Metadata) (string, error) {
	if tmpl == nil {
		tmpl = assets.Default()
	}

	fragment, err := r.converter.ToHTML(ctx, body)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, toc, _ := BuildTOC(fragment)
	content = InjectTOC(content, toc)

	lang := strings.TrimSpace(meta[MetaLang])
	if lang == "" {
		lang = r.lang
	}

	containerClass := tmpl.ContainerClass
	if containerClass == "" {
		containerClass = assets.DefaultContainerClass
	}

	// #nosec G203 -- head, styles and content come from the user's own template and Markdown
	return AssembleDocument(DocumentData{
		Lang:           lang,
		Head:           template.HTML(tmpl.Head),
		Title:          ResolveTitle(meta, content, tmpl),
		Stylesheets:    tmpl.ExternalStyles,
		Styles:         template.CSS(sanitizeCSS(joinStyles(tmpl.Styles, assets.TOCStyles()))),
		BodyClass:      tmpl.BodyClass,
		ContainerClass: containerClass,
		Content:        template.HTML(content),
	})
}

// RenderSource parses front matter from source and renders the rest.
func (r *Renderer) RenderSource(ctx context.Context, source string, tmpl *assets.Template) (string, error) {
	meta, body := ParseFrontMatter(source)
	return r.Render(ctx, body, tmpl, meta)
}

func joinStyles(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
