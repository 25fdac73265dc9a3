package main

// Notes:
// - runMain: we test dispatch and exit codes. Conversions use a mock
//   converter; TestConvert_EndToEnd in convert_test.go uses the real one.
// - Browser-backed PDF output is not exercised here (integration tests in
//   the root package cover it).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md":    "# Doc",
		"notes.txt": "plain",
	})

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"md2html"}, ExitGeneral, "", "Usage: md2html"},
		{"unknown command", []string{"md2html", "publish"}, ExitGeneral, "", "Unknown command: publish"},
		{"version", []string{"md2html", "version"}, ExitSuccess, "md2html dev", ""},
		{"help", []string{"md2html", "help"}, ExitSuccess, "Commands:", ""},
		{"help convert", []string{"md2html", "help", "convert"}, ExitSuccess, "--pdf", ""},
		{"help watch-dir", []string{"md2html", "help", "watch-dir"}, ExitSuccess, "--convert-existing", ""},
		{"convert -h", []string{"md2html", "convert", "-h"}, ExitSuccess, "", "Usage: md2html convert"},
		{"convert no input", []string{"md2html", "convert"}, ExitGeneral, "", "no input specified"},
		{"convert missing input", []string{"md2html", "convert", filepath.Join(dir, "nope.md")}, ExitGeneral, "", "input not found"},
		{"convert wrong extension", []string{"md2html", "convert", filepath.Join(dir, "notes.txt")}, ExitGeneral, "", "hint: expected a .md file"},
		{"convert bad flag", []string{"md2html", "convert", "--bogus"}, ExitGeneral, "", "unknown flag"},
		{"convert success", []string{"md2html", "convert", filepath.Join(dir, "doc.md")}, ExitSuccess, "doc.html", ""},
		{"watch-dir not a directory", []string{"md2html", "watch-dir", filepath.Join(dir, "doc.md")}, ExitGeneral, "", "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(newMockConverter())
			code := runMain(context.Background(), tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_OutputExistsHint(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md":   "# Doc",
		"doc.html": "<html></html>",
	})
	env := newTestEnv(newMockConverter())

	code := runMain(context.Background(), []string{"md2html", "convert", filepath.Join(dir, "doc.md")}, env.Environment)
	if code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(env.stderr.String(), "hint: use --force to overwrite") {
		t.Errorf("stderr = %q, want overwrite hint", env.stderr)
	}
}
