//go:build !windows

package process

import "syscall"

// killTree signals the process group. The browser is started as a group
// leader, so its helpers share its pid as group id.
func killTree(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
