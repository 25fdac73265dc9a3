// Package pipeline renders Markdown into complete HTML documents.
//
// Stages, in order:
//   - front matter parsing (ParseFrontMatter)
//   - Markdown to HTML fragment via goldmark, with callout blocks, language
//     spans and syntax highlighting (GoldmarkConverter)
//   - heading ids and table of contents (BuildTOC, InjectTOC)
//   - assembly with an extracted template (AssembleDocument)
//
// Renderer chains the stages. PDF output is handled by the root md2html
// package, which prints a rendered document with headless Chrome.
package pipeline
