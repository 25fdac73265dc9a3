//go:build !windows

package process

import "syscall"

// killProcessGroup sends SIGKILL to the process group (negative PID).
func killProcessGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
