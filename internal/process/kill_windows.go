//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killProcessGroup uses taskkill: /F forces, /T walks the child tree.
func killProcessGroup(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
