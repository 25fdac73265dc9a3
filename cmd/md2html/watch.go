package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/watch"
)

// runWatch converts a Markdown file and reconverts it on every change
// until ctx is done.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
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

	output := flags.output
	if output == "" {
		output = fileutil.ReplaceExt(input, fileutil.ExtHTML)
	}
	if err := checkOutput(output, flags.force); err != nil {
		return err
	}

	conv := sess.newConverter(sess.cfg.PDF.Timeout)
	defer conv.Close()

	if err := checkTemplate(conv, input, flags.template); err != nil {
		return err
	}

	w := watch.New(conv, watch.WithLogger(sess.logger), watch.WithDelay(sess.cfg.Watch.Delay))
	defer w.StopAll()

	opts := watch.MarkdownOptions{TemplatePath: flags.template, OutputPath: output}
	if err := w.WatchMarkdown(ctx, input, opts); err != nil {
		return fmt.Errorf("converting %s: %w", input, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s -> %s\n", input, output)
		fmt.Fprintln(env.Stdout, "Watching for changes (press Ctrl+C to stop)")
	}

	<-ctx.Done()
	return nil
}

// runWatchDir keeps the Markdown/HTML pairs of a directory in sync until
// ctx is done.
func runWatchDir(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchDirFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	dir, err := requireOneArg(positional)
	if err != nil {
		return err
	}
	if !fileutil.DirExists(dir) {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	sess, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	conv := sess.newConverter(sess.cfg.PDF.Timeout)
	defer conv.Close()

	w := watch.New(conv, watch.WithLogger(sess.logger), watch.WithDelay(sess.cfg.Watch.Delay))
	defer w.StopAll()

	opts := watch.DirectoryOptions{ConvertExisting: flags.convertExisting, Force: flags.force}
	if err := w.WatchDirectory(ctx, dir, opts); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (press Ctrl+C to stop)\n", dir)
	}

	<-ctx.Done()
	return nil
}
