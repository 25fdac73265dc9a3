package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TOC markup identifiers, matched by the TOC stylesheet.
const (
	TOCContainerID  = "table-of-contents"
	TOCPanelID      = "toc-panel"
	HeadingIDPrefix = "heading-"
)

const (
	tocMinLevel = 2
	tocMaxLevel = 3
)

var (
	// headingPattern matches h2-h6. Captures: 1=level, 2=attributes, 3=inner HTML.
	headingPattern = regexp.MustCompile(`(?is)<h([2-6])(\s[^>]*)?>(.*?)</h[2-6]>`)

	// h1Pattern matches the first level-1 heading. Captures: 1=inner HTML.
	h1Pattern = regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>(.*?)</h1>`)

	// idAttrPattern matches an existing id attribute.
	idAttrPattern = regexp.MustCompile(`(?i)\s+id\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)

	plainText = bluemonday.StrictPolicy()
)

// Heading is a heading found while building the table of contents.
type Heading struct {
	Level int
	Text  string // plain text, tags stripped
	ID    string
}

// PlainText strips tags from an HTML fragment and decodes entities.
func PlainText(fragment string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(fragment)))
}

// BuildTOC assigns ids to every h2-h6 heading in fragment, in document order
// starting at heading-0, and appends a back-to-TOC link after each h2.
// It returns the rewritten fragment, the TOC markup (empty when there are
// no h2/h3 headings) and every heading seen.
func BuildTOC(fragment string) (content, toc string, headings []Heading) {
	content = headingPattern.ReplaceAllStringFunc(fragment, func(match string) string {
		m := headingPattern.FindStringSubmatch(match)
		level, _ := strconv.Atoi(m[1])
		id := HeadingIDPrefix + strconv.Itoa(len(headings))
		headings = append(headings, Heading{Level: level, Text: PlainText(m[3]), ID: id})

		attrs := idAttrPattern.ReplaceAllString(m[2], "")
		var b strings.Builder
		b.WriteString("<h" + m[1] + ` id="` + id + `"` + attrs + ">")
		b.WriteString(m[3])
		b.WriteString("</h" + m[1] + ">")
		if level == tocMinLevel {
			b.WriteString(backToTOCLink)
		}
		return b.String()
	})

	var entries []Heading
	for _, h := range headings {
		if h.Level >= tocMinLevel && h.Level <= tocMaxLevel {
			entries = append(entries, h)
		}
	}
	return content, renderTOC(entries), headings
}

// InjectTOC places toc right after the first h1 of content. Without an h1
// the content is returned unchanged.
func InjectTOC(content, toc string) string {
	if toc == "" {
		return content
	}
	loc := h1Pattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + "\n" + toc + content[loc[1]:]
}

// FirstH1Text returns the plain text of the first h1 in content.
func FirstH1Text(content string) string {
	m := h1Pattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return PlainText(m[1])
}

// renderTOC builds nested lists with a level cursor starting at h2: one
// <ul> per level increase and one </ul> per decrease.
func renderTOC(entries []Heading) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="toc-dropdown" id="` + TOCContainerID + `">`)
	b.WriteString(`<button type="button" class="toc-toggle" aria-controls="` + TOCPanelID + `" aria-expanded="false">Contents</button>`)
	b.WriteString(`<nav class="toc-panel" id="` + TOCPanelID + `">`)
	b.WriteString("<ul>")

	current := tocMinLevel
	for _, e := range entries {
		for current < e.Level {
			b.WriteString("<ul>")
			current++
		}
		for current > e.Level {
			b.WriteString("</ul>")
			current--
		}
		b.WriteString(`<li><a href="#` + html.EscapeString(e.ID) + `">`)
		b.WriteString(html.EscapeString(e.Text))
		b.WriteString("</a></li>")
	}
	for current > tocMinLevel {
		b.WriteString("</ul>")
		current--
	}

	b.WriteString("</ul></nav></div>\n")
	b.WriteString(tocScript)
	return b.String()
}

const backToTOCLink = "\n" + `<a class="back-to-toc" href="#` + TOCContainerID + `">&uarr; Contents</a>`

// tocScript toggles the panel on click and closes it on outside clicks.
const tocScript = `<script>
(function () {
  var root = document.getElementById("` + TOCContainerID + `");
  if (!root) { return; }
  var toggle = root.querySelector(".toc-toggle");
  function setOpen(open) {
    root.classList.toggle("open", open);
    toggle.setAttribute("aria-expanded", open ? "true" : "false");
  }
  toggle.addEventListener("click", function (e) {
    e.stopPropagation();
    setOpen(!root.classList.contains("open"));
  });
  root.querySelector(".toc-panel").addEventListener("click", function (e) {
    if (e.target.tagName === "A") { setOpen(false); }
  });
  document.addEventListener("click", function (e) {
    if (!root.contains(e.target)) { setOpen(false); }
  });
})();
</script>
`
