package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// runConvert converts one Markdown file to HTML, or to PDF with --pdf.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	input, err := requireOneArg(positional)
	if err != nil {
		return err
	}
	if err := validateMarkdownInput(input); err != nil {
		return err
	}

	sess, err := newSession(flags.common, env)
	if err != nil {
		return err
	}
	timeout, err := sess.resolveTimeout(flags.timeout)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		ext := fileutil.ExtHTML
		if flags.pdf {
			ext = fileutil.ExtPDF
		}
		output = fileutil.ReplaceExt(input, ext)
	}
	if err := checkOutput(output, flags.force); err != nil {
		return err
	}

	conv := sess.newConverter(timeout)
	defer conv.Close()

	if err := checkTemplate(conv, input, flags.template); err != nil {
		return err
	}

	start := env.Now()
	var written string
	if flags.pdf {
		written, err = conv.ToPDF(ctx, input, flags.template, output)
	} else {
		written, err = conv.ToHTML(ctx, input, flags.template, output)
	}
	if err != nil {
		return fmt.Errorf("converting %s: %w", input, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s -> %s\n", input, written)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "  took %s\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}
