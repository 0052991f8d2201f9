//go:build windows

package process

import (
	"os"
	"os/exec"
	"time"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

// KillOptions configures process termination behavior.
type KillOptions struct {
	// GracePeriod is how long to wait before forcing termination.
	// Default: 200ms. Ignored when Force is set.
	GracePeriod time.Duration
	Force       bool
}

// KillProcessGroup terminates only the leader process on Windows, which has no
// Unix-style process groups.
func KillProcessGroup(leaderPID int, opts KillOptions) error {
	if leaderPID <= 0 {
		return nil
	}
	if opts.GracePeriod == 0 {
		opts.GracePeriod = 200 * time.Millisecond
	}

	proc, err := os.FindProcess(leaderPID)
	if err != nil {
		return err
	}

	if !opts.Force {
		if err := proc.Signal(os.Interrupt); err != nil {
			logging.Debug("best-effort interrupt for pid %d failed: %v", leaderPID, err)
		}
		time.Sleep(opts.GracePeriod)
	}
	return proc.Kill()
}

// Interrupt is best-effort on Windows.
func Interrupt(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(os.Interrupt)
}

// SetProcessGroup is a no-op on Windows.
func SetProcessGroup(cmd *exec.Cmd) {
	_ = cmd
}
