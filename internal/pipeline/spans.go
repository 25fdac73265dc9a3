package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Span classes for emphasis. Bold text is styled as Japanese, italic text
// as Chinese.
const (
	StrongClass   = "japanese"
	EmphasisClass = "chinese"
)

// LanguageSpans renders strong and emphasis as classed <span> elements.
type LanguageSpans struct{}

// Extend implements goldmark.Extender.
func (e *LanguageSpans) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&spanRenderer{}, 100),
	))
}

type spanRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *spanRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
}

func (r *spanRenderer) renderEmphasis(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</span>")
		return ast.WalkContinue, nil
	}
	class := EmphasisClass
	if node.(*ast.Emphasis).Level == 2 {
		class = StrongClass
	}
	_, _ = w.WriteString(`<span class="` + class + `">`)
	return ast.WalkContinue, nil
}

var (
	_ goldmark.Extender     = (*LanguageSpans)(nil)
	_ renderer.NodeRenderer = (*spanRenderer)(nil)
)
