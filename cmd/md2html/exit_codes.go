package main

import (
	"errors"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/hints"
)

// Exit codes for md2html CLI.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // Any error: bad input, bad flags, conversion failure
)

// exitCodeFor returns the appropriate exit code for an error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneral
}

// formatError renders err with an actionable hint when one applies.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func formatError(err error) string {
	msg := err.Error()

	switch {
	case errors.Is(err, ErrOutputExists):
		msg += hints.ForOutputExists()
	case errors.Is(err, md2html.ErrBrowserConnect):
		msg += hints.ForBrowserConnect()
	case errors.Is(err, md2html.ErrPageLoad):
		msg += hints.ForTimeout()
	}

	var iee *invalidExtensionError
	if errors.As(err, &iee) {
		msg += hints.ForInvalidExtension(iee.want)
	}
	var tnf *templateNotFoundError
	if errors.As(err, &tnf) {
		msg += hints.ForTemplateNotFound(tnf.name)
	}
	var cnf *configNotFoundError
	if errors.As(err, &cnf) {
		msg += hints.ForConfigNotFound(cnf.searched)
	}
	return msg
}
