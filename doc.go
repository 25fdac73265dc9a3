// Package md2html converts Markdown documents to styled HTML, and to PDF
// using headless Chrome.
//
// # Quick Start
//
//	conv := md2html.NewConverter()
//	defer conv.Close()
//
//	out, err := conv.ToHTML(ctx, "notes/lesson.md", "", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", out) // notes/lesson.html
//
// # Templates
//
// Document chrome (head metadata, styles, body and container classes) comes
// from an existing HTML file. The template is chosen per Markdown file:
//
//  1. an explicit template path that exists
//  2. an explicit name, looked up as <name>.html next to the Markdown file
//  3. the application default template (WithDefaultTemplatePath)
//  4. an *.html file in the Markdown directory, preferring names that
//     contain "template"
//  5. the built-in default template
//
// Extracted templates are cached and refreshed when the file changes.
//
// # Rendering Rules
//
//   - blockquotes starting with **Example**:, **Note**: or **Grammar**:
//     become <div class="example">, <div class="note"> or
//     <div class="grammar-point">
//   - bold renders as <span class="japanese">, italic as <span class="chinese">
//   - h2 and h3 headings are listed in a floating table of contents placed
//     after the first h1
//   - front matter title and lang set the document title and language
//
// # Configuration
//
//	conv := md2html.NewConverter(
//	    md2html.WithLogger(logger),
//	    md2html.WithDefaultLang("ja"),
//	    md2html.WithPDFTimeout(time.Minute),
//	)
package md2html
