// Package process terminates the headless browser together with the
// renderer and GPU helpers it spawns.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID rejects pids that would address the caller's own group.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid and its descendants.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := killTree(pid); err != nil {
		return fmt.Errorf("killing process tree %d: %w", pid, err)
	}
	return nil
}
