package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	template string
	force    bool
	pdf      bool
	timeout  string
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	common   commonFlags
	output   string
	template string
	force    bool
}

// watchDirFlags holds flags for the watch-dir command.
type watchDirFlags struct {
	common          commonFlags
	convertExisting bool
	force           bool
}

// listFlags holds flags for the list command.
type listFlags struct {
	common  commonFlags
	missing bool
}

// infoFlags holds flags for the info command.
type infoFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: pretty, json, text")
}

// addTemplateFlags adds the output and template flags shared by convert and watch.
func addTemplateFlags(fs *flag.FlagSet, output, template *string, force *bool) {
	fs.StringVarP(output, "output", "o", "", "output file (default: next to input)")
	fs.StringVarP(template, "template", "t", "", "template name or HTML file path")
	fs.BoolVarP(force, "force", "f", false, "overwrite an existing output")
}

// newFlagSet creates a FlagSet that prints usage to w on -h.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", w, printConvertUsage)

	addTemplateFlags(fs, &f.output, &f.template, &f.force)
	fs.BoolVar(&f.pdf, "pdf", false, "write PDF through headless Chrome instead of HTML")
	fs.StringVar(&f.timeout, "timeout", "", "PDF page load timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, w io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	fs := newFlagSet("watch", w, printWatchUsage)

	addTemplateFlags(fs, &f.output, &f.template, &f.force)
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchDirFlags parses watch-dir command flags and returns positional args.
func parseWatchDirFlags(args []string, w io.Writer) (*watchDirFlags, []string, error) {
	f := &watchDirFlags{}
	fs := newFlagSet("watch-dir", w, printWatchDirUsage)

	fs.BoolVar(&f.convertExisting, "convert-existing", false, "convert stale pairs at startup and new files")
	fs.BoolVarP(&f.force, "force", "f", false, "convert even when the counterpart is newer")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseListFlags parses list command flags and returns positional args.
func parseListFlags(args []string, w io.Writer) (*listFlags, []string, error) {
	f := &listFlags{}
	fs := newFlagSet("list", w, printListUsage)

	fs.BoolVar(&f.missing, "missing", false, "only show files without a counterpart")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInfoFlags parses info command flags and returns positional args.
func parseInfoFlags(args []string, w io.Writer) (*infoFlags, []string, error) {
	f := &infoFlags{}
	fs := newFlagSet("info", w, printInfoUsage)

	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
