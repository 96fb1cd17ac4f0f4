package process

import (
	"errors"
	"testing"
)

func TestKillTree_InvalidPID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -4242} {
		if err := KillTree(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillTree(%d) error = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestKillTree_NoSuchProcess(t *testing.T) {
	t.Parallel()

	err := KillTree(999999999)
	if err == nil {
		t.Fatal("KillTree() on a missing process should fail")
	}
	if errors.Is(err, ErrInvalidPID) {
		t.Errorf("KillTree() error = %v, want a kill failure", err)
	}
}
