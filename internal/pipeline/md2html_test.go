package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func convert(t *testing.T, md string) string {
	t.Helper()
	out, err := NewGoldmarkConverter().ToHTML(context.Background(), md)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	return out
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_Callouts - Marked blockquotes
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_Callouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantNot []string
	}{
		{
			name:    "note marker",
			input:   "> **Note**: remember this",
			want:    []string{`<div class="note">remember this</div>`},
			wantNot: []string{"Note", "<blockquote>", "<p>"},
		},
		{
			name:  "example marker",
			input: "> **Example**: 食べる",
			want:  []string{`<div class="example">食べる</div>`},
		},
		{
			name:  "grammar marker",
			input: "> **Grammar**: て-form",
			want:  []string{`<div class="grammar-point">て-form</div>`},
		},
		{
			name:    "example wins over note",
			input:   "> **Note**: first\n> **Example**: second",
			want:    []string{`<div class="example">`, `<span class="japanese">Note</span>: first`},
			wantNot: []string{`<div class="note">`},
		},
		{
			name:  "marker on its own line",
			input: "> **Note**:\n> body text",
			want:  []string{`<div class="note">body text</div>`},
		},
		{
			name:  "marker in second paragraph",
			input: "> intro\n>\n> **Note**: later",
			want:  []string{`<div class="note">intro` + "\n" + `later</div>`},
		},
		{
			name:    "plain blockquote",
			input:   "> just quoting",
			want:    []string{"<blockquote>\n<p>just quoting</p>\n</blockquote>"},
			wantNot: []string{"<div"},
		},
		{
			name:    "marker without colon stays a blockquote",
			input:   "> **Note** without colon",
			want:    []string{"<blockquote>", `<span class="japanese">Note</span> without colon`},
			wantNot: []string{`<div class="note">`},
		},
		{
			name:    "unknown marker stays a blockquote",
			input:   "> **Tip**: not a callout",
			want:    []string{"<blockquote>"},
			wantNot: []string{"<div"},
		},
		{
			name:  "nested blockquote keeps its own marker",
			input: "> outer\n>\n> > **Note**: inner",
			want:  []string{"<blockquote>\n<p>outer</p>", `<div class="note">inner</div>`},
		},
		{
			name:  "inline content kept",
			input: "> **Note**: use *this* and **that**",
			want:  []string{`<div class="note">use <span class="chinese">this</span> and <span class="japanese">that</span></div>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := convert(t, tt.input)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q\ngot: %s", w, out)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q\ngot: %s", w, out)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_Rules - Spans, tables, code
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantNot []string
	}{
		{
			name:    "strong becomes japanese span",
			input:   "**日本語**",
			want:    []string{`<span class="japanese">日本語</span>`},
			wantNot: []string{"<strong>"},
		},
		{
			name:    "emphasis becomes chinese span",
			input:   "*中文*",
			want:    []string{`<span class="chinese">中文</span>`},
			wantNot: []string{"<em>"},
		},
		{
			name:  "table sections",
			input: "| A | B |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<thead>", "<th>A</th>", "<tbody>", "<td>1</td>"},
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			want:  []string{"<del>gone</del>"},
		},
		{
			name:  "bare url linked",
			input: "see https://example.com today",
			want:  []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:    "task list checkbox",
			input:   "- [x] done\n- [ ] todo",
			want:    []string{`type="checkbox"`, "checked", " done", " todo"},
			wantNot: []string{"[x]", "[ ]"},
		},
		{
			name:    "code highlighted with inline styles",
			input:   "```go\nfunc main() {}\n```",
			want:    []string{"<pre", `style="`, "main"},
			wantNot: []string{`class="chroma"`},
		},
		{
			name:    "no automatic heading ids",
			input:   "## Section",
			want:    []string{"<h2>Section</h2>"},
			wantNot: []string{"id="},
		},
		{
			name:    "raw html not passed through",
			input:   "<script>alert(1)</script>",
			wantNot: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := convert(t, tt.input)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q\ngot: %s", w, out)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q\ngot: %s", w, out)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
