package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// calloutMarkers maps a bold marker word to its div class, in match priority.
var calloutMarkers = []struct {
	word  string
	class string
}{
	{"Example", "example"},
	{"Note", "note"},
	{"Grammar", "grammar-point"},
}

// KindCallout is the NodeKind of Callout.
var KindCallout = ast.NewNodeKind("Callout")

// Callout is a blockquote that carried a marker such as **Note**:.
type Callout struct {
	ast.BaseBlock
	Class string
}

// Kind implements ast.Node.Kind.
func (n *Callout) Kind() ast.NodeKind {
	return KindCallout
}

// Dump implements ast.Node.Dump.
func (n *Callout) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Class": n.Class}, nil)
}

// Callouts turns marked blockquotes into <div class="..."> blocks.
type Callouts struct{}

// Extend implements goldmark.Extender.
func (e *Callouts) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&calloutTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&calloutRenderer{}, 100),
	))
}

type calloutTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *calloutTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var quotes []*ast.Blockquote
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if bq, ok := n.(*ast.Blockquote); ok && entering {
			quotes = append(quotes, bq)
		}
		return ast.WalkContinue, nil
	})

	for _, bq := range quotes {
		for _, m := range calloutMarkers {
			strong, after := findMarker(bq, source, m.word)
			if strong == nil {
				continue
			}
			removeMarker(strong, after, source)
			replaceWithCallout(bq, m.class)
			break
		}
	}
}

// findMarker returns the first **word** directly followed by a colon inside
// bq, and the text node holding the colon. Nested blockquotes are skipped;
// they carry their own markers.
func findMarker(bq *ast.Blockquote, source []byte, word string) (*ast.Emphasis, *ast.Text) {
	var strong *ast.Emphasis
	var after *ast.Text

	_ = ast.Walk(bq, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n != bq && n.Kind() == ast.KindBlockquote {
			return ast.WalkSkipChildren, nil
		}
		em, ok := n.(*ast.Emphasis)
		if !ok || em.Level != 2 || em.ChildCount() != 1 {
			return ast.WalkContinue, nil
		}
		inner, ok := em.FirstChild().(*ast.Text)
		if !ok || string(inner.Segment.Value(source)) != word {
			return ast.WalkContinue, nil
		}
		next, ok := em.NextSibling().(*ast.Text)
		if !ok || !bytes.HasPrefix(next.Segment.Value(source), []byte(":")) {
			return ast.WalkContinue, nil
		}
		strong, after = em, next
		return ast.WalkStop, nil
	})

	return strong, after
}

// removeMarker drops the strong node and the colon plus the whitespace that
// follows it.
func removeMarker(strong *ast.Emphasis, after *ast.Text, source []byte) {
	strong.Parent().RemoveChild(strong.Parent(), strong)

	seg := after.Segment.WithStart(after.Segment.Start + 1)
	after.Segment = seg.TrimLeftSpace(source)

	// "**Note**:" at the end of a line leaves an empty text node whose
	// line break would lead the callout body.
	for t := after; t != nil && t.Segment.IsEmpty(); {
		next, _ := t.NextSibling().(*ast.Text)
		t.Parent().RemoveChild(t.Parent(), t)
		if next != nil {
			next.Segment = next.Segment.TrimLeftSpace(source)
		}
		t = next
	}
}

// replaceWithCallout swaps bq for a Callout holding the same blocks, with
// paragraphs demoted to text blocks so no <p> wrapper is rendered.
func replaceWithCallout(bq *ast.Blockquote, class string) {
	callout := &Callout{Class: class}

	var children []ast.Node
	for c := bq.FirstChild(); c != nil; c = c.NextSibling() {
		children = append(children, c)
	}

	for _, c := range children {
		p, ok := c.(*ast.Paragraph)
		if !ok {
			callout.AppendChild(callout, c)
			continue
		}
		tb := ast.NewTextBlock()
		tb.SetLines(p.Lines())
		var inlines []ast.Node
		for ic := p.FirstChild(); ic != nil; ic = ic.NextSibling() {
			inlines = append(inlines, ic)
		}
		for _, ic := range inlines {
			tb.AppendChild(tb, ic)
		}
		bq.RemoveChild(bq, p)
		callout.AppendChild(callout, tb)
	}

	bq.Parent().ReplaceChild(bq.Parent(), bq, callout)
}

type calloutRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *calloutRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCallout, r.renderCallout)
}

func (r *calloutRenderer) renderCallout(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Callout)
	if entering {
		_, _ = w.WriteString(`<div class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.Class)))
		_, _ = w.WriteString(`">`)
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

// Compile-time interface checks.
var (
	_ goldmark.Extender     = (*Callouts)(nil)
	_ parser.ASTTransformer = (*calloutTransformer)(nil)
	_ renderer.NodeRenderer = (*calloutRenderer)(nil)
)
