package pipeline

import (
	"regexp"
	"strings"
)

// Metadata holds the key/value pairs of a front matter block.
type Metadata map[string]string

// Keys read by the renderer.
const (
	MetaTitle = "title"
	MetaLang  = "lang"
)

const frontMatterDelimiter = "---"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ParseFrontMatter splits a leading front matter block from content.
//
// The first line must be exactly "---". Lines up to the next line starting
// with "---" are read as "key: value" pairs, split at the first colon. Lines
// without a colon or with an empty key are ignored. Without a closing
// delimiter the whole content is returned as body with empty metadata.
func ParseFrontMatter(content string) (Metadata, string) {
	meta := Metadata{}
	content = NormalizeLineEndings(content)

	lines := strings.SplitAfter(content, "\n")
	if strings.TrimSuffix(lines[0], "\n") != frontMatterDelimiter {
		return meta, content
	}

	for i := 1; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], frontMatterDelimiter) {
			continue
		}
		for _, line := range lines[1:i] {
			key, value, ok := strings.Cut(strings.TrimSuffix(line, "\n"), ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			meta[key] = strings.TrimSpace(value)
		}
		return meta, strings.Join(lines[i+1:], "")
	}

	return meta, content
}
