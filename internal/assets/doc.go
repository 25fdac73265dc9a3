// Package assets extracts document templates from HTML files and decides
// which template a Markdown file is rendered with.
//
// # Components
//
//	Extract   - parses an HTML file into a Template (goquery)
//	Cache     - bounded LRU of extracted templates, refreshed on mtime change
//	Resolver  - picks the template for a Markdown file
//	Default   - the embedded fallback template
//
// # Resolution Order
//
//  1. explicit template path that exists on disk
//  2. explicit template name, looked up as <name>.html next to the Markdown file
//  3. canonical default template co-located with the application
//  4. any *.html in the Markdown directory, preferring names containing
//     "template", ties broken by filename order
//  5. the embedded Default template
//
// Extraction failures never abort a conversion: Cache.Load falls back to the
// Default template and logs a warning.
package assets
