package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Pair statuses shown by list.
const (
	statusUpToDate    = "up to date"
	statusStale       = "stale"
	statusMissingHTML = "missing html"
	statusMissingMD   = "missing md"
)

// pair is a Markdown file and its HTML counterpart sharing a basename.
type pair struct {
	base     string // path without extension, relative to the listed dir
	mdTime   time.Time
	htmlTime time.Time
	hasMD    bool
	hasHTML  bool
}

// status classifies the pair. A pair is stale when the Markdown file is
// strictly newer than its HTML.
func (p *pair) status() string {
	switch {
	case !p.hasHTML:
		return statusMissingHTML
	case !p.hasMD:
		return statusMissingMD
	case p.mdTime.After(p.htmlTime):
		return statusStale
	default:
		return statusUpToDate
	}
}

// newer names the side modified last, or "-" when only one side exists.
func (p *pair) newer() string {
	switch {
	case !p.hasMD || !p.hasHTML:
		return "-"
	case p.mdTime.After(p.htmlTime):
		return "md"
	case p.htmlTime.After(p.mdTime):
		return "html"
	default:
		return "same"
	}
}

func (p *pair) modTime() time.Time {
	if p.hasMD {
		return p.mdTime
	}
	return p.htmlTime
}

// runList prints the pairing status of every .md/.html file below a directory.
func runList(args []string, env *Environment) error {
	flags, positional, err := parseListFlags(args, env.Stderr)
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

	pairs, err := collectPairs(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tNEWER\tMODIFIED\tFILE")

	var stale, missing, shown int
	for _, p := range pairs {
		status := p.status()
		switch status {
		case statusStale:
			stale++
		case statusMissingHTML, statusMissingMD:
			missing++
		}
		if flags.missing && status != statusMissingHTML && status != statusMissingMD {
			continue
		}
		shown++
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, p.newer(), sess.formatDate(p.modTime()), displayName(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\n%d pair(s), %d stale, %d missing a counterpart\n", len(pairs), stale, missing)
	}
	sess.logger.Debug("list: done", slog.String("dir", dir), slog.Int("shown", shown))
	return nil
}

// displayName shows the files of a pair that exist.
func displayName(p *pair) string {
	var names []string
	if p.hasMD {
		names = append(names, p.base+fileutil.ExtMarkdown)
	}
	if p.hasHTML {
		names = append(names, p.base+fileutil.ExtHTML)
	}
	return strings.Join(names, " <-> ")
}

// collectPairs walks dir, skipping hidden entries, and groups .md and .html
// files by basename. Pairs are sorted by path.
func collectPairs(dir string) ([]*pair, error) {
	byBase := make(map[string]*pair)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		isMD := fileutil.HasExt(path, fileutil.ExtMarkdown)
		if !isMD && !fileutil.HasExt(path, fileutil.ExtHTML) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(rel, filepath.Ext(rel))

		p, ok := byBase[base]
		if !ok {
			p = &pair{base: base}
			byBase[base] = p
		}
		if isMD {
			p.hasMD, p.mdTime = true, info.ModTime()
		} else {
			p.hasHTML, p.htmlTime = true, info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]*pair, 0, len(byBase))
	for _, p := range byBase {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b *pair) int { return strings.Compare(a.base, b.base) })
	return pairs, nil
}
