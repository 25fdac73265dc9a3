package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a Markdown file to HTML or PDF")
	fmt.Fprintln(w, "  watch      Reconvert a Markdown file whenever it changes")
	fmt.Fprintln(w, "  watch-dir  Keep Markdown/HTML pairs in a directory in sync")
	fmt.Fprintln(w, "  list       Show Markdown/HTML pairing status")
	fmt.Fprintln(w, "  info       Show file details and the template it uses")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "      --log-format <s>      Log format: pretty, json, text")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file to HTML, or to PDF with --pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html or .pdf)")
	fmt.Fprintln(w, "  -t, --template <s>        Template name (<name>.html next to input) or path")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing output")
	fmt.Fprintln(w, "      --pdf                 Print to PDF through headless Chrome")
	fmt.Fprintln(w, "      --timeout <d>         PDF page load timeout (e.g., 30s, 2m)")
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template selection without --template:")
	fmt.Fprintln(w, "  1. templates/default.html next to the executable (or template.default in config)")
	fmt.Fprintln(w, "  2. an *.html file in the input directory, preferring names with \"template\"")
	fmt.Fprintln(w, "  3. the built-in template")
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html watch <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file to HTML, then again after every change.")
	fmt.Fprintln(w, "Runs until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html)")
	fmt.Fprintln(w, "  -t, --template <s>        Template name or path")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing output")
	printCommonUsage(w)
}

// printWatchDirUsage prints usage for the watch-dir command.
func printWatchDirUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html watch-dir <directory> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch a directory tree and regenerate the HTML of each changed Markdown")
	fmt.Fprintln(w, "file. An output newer than its source is left alone unless --force.")
	fmt.Fprintln(w, "HTML to Markdown is not supported. Runs until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --convert-existing    Convert stale files at startup and new files")
	fmt.Fprintln(w, "  -f, --force               Convert even when the output is newer")
	printCommonUsage(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html list <directory> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show every Markdown/HTML pair below a directory and whether it is stale.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --missing             Only show files without a counterpart")
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dates use display.dateFormat from the config file.")
	fmt.Fprintln(w, "  Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "  Presets (case-insensitive): iso, datetime, european, us, long")
	fmt.Fprintln(w, "  Use [text] to escape literals: [at] HH:mm")
}

// printInfoUsage prints usage for the info command.
func printInfoUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html info <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show size, dates and counterpart of a .md or .html file. For Markdown")
	fmt.Fprintln(w, "files, also show front matter and the template conversion would use.")
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "watch-dir":
		printWatchDirUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "info":
		printInfoUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
