//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree uses taskkill: /T walks the child tree, /F forces termination.
func killTree(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- numeric pid
}
