package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// runInfo prints details about a .md or .html file, its counterpart and,
// for Markdown, the template conversion would pick. It never writes.
func runInfo(args []string, env *Environment) error {
	flags, positional, err := parseInfoFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	input, err := requireOneArg(positional)
	if err != nil {
		return err
	}
	if !fileutil.FileExists(input) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}
	isMD := fileutil.HasExt(input, fileutil.ExtMarkdown)
	if !isMD && !fileutil.HasExt(input, fileutil.ExtHTML) {
		return &invalidExtensionError{path: input, want: ".md or .html"}
	}

	sess, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	row := func(label, value string) { fmt.Fprintf(tw, "%s:\t%s\n", label, value) }

	kind := "html"
	if isMD {
		kind = "markdown"
	}
	row("File", abs)
	row("Type", kind)
	row("Size", formatSize(stat.Size()))
	row("Modified", sess.formatDate(stat.ModTime()))
	row("Counterpart", describeCounterpart(abs, stat, sess))

	if isMD {
		// #nosec G304 -- the path is the user's own input
		source, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("reading %s: %w", input, err)
		}
		meta, _ := pipeline.ParseFrontMatter(string(source))
		row("Title", orDash(meta[pipeline.MetaTitle]))
		row("Lang", orDash(meta[pipeline.MetaLang]))

		conv := sess.newConverter(0)
		defer conv.Close()
		choice := conv.ExplainTemplate(abs, "")
		template := choice.Source
		if choice.Path != "" {
			template = fmt.Sprintf("%s (%s)", choice.Path, choice.Source)
		}
		row("Template", template)
	}

	return flush(tw)
}

// describeCounterpart says whether the counterpart exists and how its
// modification time compares.
func describeCounterpart(path string, stat os.FileInfo, sess *session) string {
	other := fileutil.Counterpart(path)
	otherTime, ok := fileutil.ModTime(other)
	if !ok {
		return filepath.Base(other) + " (missing)"
	}

	var cmp string
	switch {
	case otherTime.After(stat.ModTime()):
		cmp = "newer"
	case otherTime.Before(stat.ModTime()):
		cmp = "older"
	default:
		cmp = "same time"
	}
	return fmt.Sprintf("%s (%s, %s)", filepath.Base(other), cmp, sess.formatDate(otherTime))
}

// formatSize renders a byte count with a binary unit.
func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func flush(tw *tabwriter.Writer) error {
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
