// Package process terminates the headless browser together with the
// renderer processes it spawned.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that would target the caller's own
// process group.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree kills pid and its children. It refuses pid <= 0.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killProcessGroup(pid)
}
